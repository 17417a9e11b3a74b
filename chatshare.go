// Package chatshare recovers conversation turns from public
// conversation-share pages and exports them as CSV, JSON, XML, markdown,
// HTML or PDF.
//
// The extraction engine is pure: it takes page markup and returns an
// ordered, deduplicated list of turns. It tries a DOM strategy over
// structured message nodes first and falls back to scanning the embedded
// stream payload when the markup exposes no message nodes.
//
// This package contains domain types, interfaces and the shared extraction
// helpers, following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, htmltomarkdown/, sqlite/, rod/).
package chatshare
