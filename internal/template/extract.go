package template

// ExtractText collects the translatable ${...} spans from a text template.
// Literal &{...} spans are skipped: they never reach a catalog on their own,
// only as recorded literals inside a translatable span.
func ExtractText(content string) []Translation {
	var out []Translation
	seen := map[string]bool{}
	for _, loc := range Marker.FindAllStringSubmatchIndex(content, -1) {
		if content[loc[0]] != '$' {
			continue
		}
		inner := content[loc[2]:loc[3]]
		tr := New(inner, nil, nil)
		if seen[tr.Key] {
			continue
		}
		seen[tr.Key] = true
		out = append(out, tr)
	}
	return out
}

// RenderText substitutes every marker in a text template. Literal spans are
// unwrapped in place; translatable spans are resolved through lookup, which
// receives the span's catalog key and original text.
func RenderText(content string, lookup func(key, original string) (string, error)) (string, error) {
	var b []byte
	last := 0
	for _, loc := range Marker.FindAllStringSubmatchIndex(content, -1) {
		b = append(b, content[last:loc[0]]...)
		inner := content[loc[2]:loc[3]]
		if content[loc[0]] == '&' {
			b = append(b, inner...)
		} else {
			replacement, err := lookup(KeyFor(inner, nil), inner)
			if err != nil {
				return "", err
			}
			b = append(b, replacement...)
		}
		last = loc[1]
	}
	b = append(b, content[last:]...)
	return string(b), nil
}
