package inference

import "strings"

// event is a parsed protocol line, kept deliberately minimal: the
// inference passes only ever need the tag, the positional fields, and
// whether a given annotation key was present.
type event struct {
	tag    string
	fields []string
}

func parseEvents(lines []string) []event {
	out := make([]event, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		parts := strings.Split(line[1:], "|")
		if len(parts) == 0 {
			continue
		}
		out = append(out, event{tag: parts[0], fields: parts[1:]})
	}
	return out
}

func (ev event) annotation(key string) (string, bool) {
	prefix := "[" + key + "]"
	for _, f := range ev.fields {
		if f == prefix {
			return "", true
		}
		if strings.HasPrefix(f, prefix+" ") {
			return strings.TrimSpace(strings.TrimPrefix(f, prefix)), true
		}
	}
	return "", false
}

// sideIdent splits "p2a: Zoroark" into (side tag, display name).
func sideIdent(ident string) (string, string) {
	if len(ident) < 2 {
		return "", ident
	}
	tag := ident[:2]
	name := ident
	if idx := strings.Index(ident, ": "); idx >= 0 {
		name = ident[idx+2:]
	}
	return tag, name
}
