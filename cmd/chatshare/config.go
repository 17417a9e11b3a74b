package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	yaml "gopkg.in/yaml.v3"
)

// YAMLConfig is a kong.ConfigurationLoader reading flag defaults from YAML.
// Keys are flag names; a nested mapping keyed by command name holds that
// command's flags:
//
//	format: json
//	fetch:
//	  concurrency: 8
//	  no-fallback: true
//
// Command sections take precedence over top-level keys.
func YAMLConfig(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse yaml config: %w", err)
	}

	var f kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		if cmd := commandName(parent); cmd != "" {
			if section, ok := values[cmd].(map[string]any); ok {
				if v, ok := lookup(section, flag.Name); ok {
					return v, nil
				}
			}
		}
		if v, ok := lookup(values, flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}
	return f, nil
}

func commandName(p *kong.Path) string {
	if p == nil || p.Command == nil {
		return ""
	}
	return p.Command.Name
}

// lookup finds name in m, also under its snake_case spelling, and renders
// the value the way it would be typed on the command line.
func lookup(m map[string]any, name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		v, ok = m[strings.ReplaceAll(name, "-", "_")]
	}
	if !ok {
		return "", false
	}
	switch v := v.(type) {
	case map[string]any:
		return "", false
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ","), true
	default:
		return fmt.Sprint(v), true
	}
}
