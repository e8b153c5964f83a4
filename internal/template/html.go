package template

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// ExtractHTML collects translatable spans from an HTML template: every
// element named tag contributes its text content. Class attributes become
// part of the catalog key, and comment nodes preceding the element (only
// whitespace or wrapper tags in between) are kept as translator comments.
func ExtractHTML(content []byte, tag string) ([]Translation, error) {
	z := html.NewTokenizer(bytes.NewReader(content))

	var out []Translation
	seen := map[string]bool{}
	var pendingComments []string

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// Tokenizer reports io.EOF as an error token; anything else is a
			// malformed document, which the tokenizer recovers from itself.
			return out, nil
		case html.CommentToken:
			pendingComments = append(pendingComments, strings.TrimSpace(z.Token().Data))
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				pendingComments = nil
			}
		case html.StartTagToken:
			tok := z.Token()
			if tok.Data != tag {
				// Wrapper tags between the comment and the span are fine;
				// translator comments usually sit above the whole line.
				continue
			}
			original, _ := consumeElement(z, tag)
			tr := New(original, classesOf(tok), pendingComments)
			pendingComments = nil
			if seen[tr.Key] {
				continue
			}
			seen[tr.Key] = true
			out = append(out, tr)
		}
	}
}

// RewriteHTML replaces every translation element with the text produced by
// lookup, leaving all other bytes of the document untouched. lookup receives
// the element's catalog key and original text content.
func RewriteHTML(content []byte, tag string, lookup func(key, original string) (string, error)) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(content))

	var buf bytes.Buffer
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return buf.Bytes(), nil
		}

		raw := append([]byte(nil), z.Raw()...)
		if tt != html.StartTagToken {
			buf.Write(raw)
			continue
		}

		tok := z.Token()
		if tok.Data != tag {
			buf.Write(raw)
			continue
		}

		original, _ := consumeElement(z, tag)
		replacement, err := lookup(KeyFor(original, classesOf(tok)), original)
		if err != nil {
			return nil, err
		}
		buf.WriteString(replacement)
	}
}

// consumeElement reads tokens until the matching end tag, returning the
// trimmed text content. Nested elements contribute their text only.
func consumeElement(z *html.Tokenizer, tag string) (string, bool) {
	var text strings.Builder
	depth := 1
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(text.String()), false
		case html.TextToken:
			text.Write(z.Text())
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				depth++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == tag {
				depth--
				if depth == 0 {
					return strings.TrimSpace(text.String()), true
				}
			}
		}
	}
}

func classesOf(tok html.Token) []string {
	for _, attr := range tok.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}
