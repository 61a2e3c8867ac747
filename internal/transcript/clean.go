package transcript

import (
	"strings"

	"golang.org/x/net/html"
)

// cleanCaption turns raw caption XML content into plain text. The XML layer
// is unescaped first, which exposes inline markup such as <font> or <s>;
// the HTML tokenizer then drops those tags and decodes remaining entities.
func cleanCaption(raw string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(html.UnescapeString(raw)))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.Write(z.Text())
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
