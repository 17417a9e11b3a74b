package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/chatshare"
	"github.com/fwojciec/chatshare/share"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Shares        *share.Service
	Exports       chatshare.ExportWriter
	Conversations chatshare.ConversationService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load defaults from a YAML file" placeholder:"FILE"`
	DB      string          `name:"db" env:"CHATSHARE_DB" help:"Archive database path (default ~/.chatshare/chatshare.db)"`
	Verbose bool            `short:"v" help:"Log debug details to stderr"`

	Fetch  FetchCmd  `cmd:"" help:"Fetch share links and export their conversations"`
	Parse  ParseCmd  `cmd:"" help:"Extract a conversation from a saved share page"`
	List   ListCmd   `cmd:"" help:"List archived conversations"`
	Show   ShowCmd   `cmd:"" help:"Print an archived conversation"`
	Delete DeleteCmd `cmd:"" help:"Delete an archived conversation"`
}

// ExportFlags are shared by commands that produce exports.
type ExportFlags struct {
	Format    string `short:"f" enum:"csv,json,xml,md,html,pdf" default:"csv" help:"Export format (${enum})"`
	Output    string `short:"o" env:"CHATSHARE_OUTPUT" default:"exports" help:"Directory for exported files"`
	Extractor string `enum:"trafilatura,readability,none" default:"trafilatura" help:"Title extractor (${enum})"`
	Archive   bool   `short:"a" help:"Also store the conversation in the archive database"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URLs []string `arg:"" name:"url" help:"Share links to fetch"`

	ExportFlags `embed:""`

	Browser     bool          `short:"b" help:"Load pages in a headless browser instead of plain HTTP"`
	NoFallback  bool          `help:"Do not retry with the browser when plain HTTP yields no messages"`
	Timeout     time.Duration `short:"t" env:"CHATSHARE_TIMEOUT" default:"30s" help:"Page load timeout"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	RateLimit   float64       `default:"1" help:"Requests per second per domain"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File      string `arg:"" type:"existingfile" help:"Saved share page"`
	SourceURL string `name:"source-url" help:"Share link the page was saved from (defaults to the file path)"`

	ExportFlags `embed:""`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	ShareID string `name:"share-id" help:"Only list versions of this share"`
	Limit   int    `short:"n" default:"50" help:"Maximum number of conversations"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Conversation ID"`
	Format string `short:"f" enum:"csv,json,xml,md,html,pdf" default:"md" help:"Output format (${enum})"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Conversation ID"`
	Force bool   `help:"Confirm deletion"`
}
