package chatshare

// DropEmpty returns the turns that carry text or markdown.
func DropEmpty(turns []Turn) []Turn {
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if !t.IsEmpty() {
			out = append(out, t)
		}
	}
	return out
}

// DedupeGlobal removes every turn whose role, text and markdown already
// appeared earlier in the sequence, adjacent or not. Some share pages render
// a hidden copy of each message node.
func DedupeGlobal(turns []Turn) []Turn {
	type key struct {
		role     Role
		text     string
		markdown string
	}

	seen := make(map[key]struct{}, len(turns))
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		k := key{role: t.Role, text: t.Text, markdown: t.Markdown}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

// DedupeAdjacent removes turns whose role and text equal those of the
// previous surviving turn. Repeats further apart are kept.
func DedupeAdjacent(turns []Turn) []Turn {
	out := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if n := len(out); n > 0 && out[n-1].Role == t.Role && out[n-1].Text == t.Text {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Renumber returns a copy of turns numbered 1..N in order.
func Renumber(turns []Turn) []Turn {
	out := make([]Turn, len(turns))
	for i, t := range turns {
		t.Number = i + 1
		out[i] = t
	}
	return out
}
