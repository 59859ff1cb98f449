package templates

import (
	"html/template"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// cssURLEscaper percent-encodes the characters that could end a CSS url() token.
var cssURLEscaper = strings.NewReplacer(
	"(", "%28",
	")", "%29",
	`"`, "%22",
	"'", "%27",
	`\`, "%5C",
	" ", "%20",
	"\t", "%09",
	"\n", "%0A",
	"\r", "%0D",
)

// SafeBackgroundURL returns the trimmed rawURL, or "" when the URL is malformed
// or uses a scheme other than http or https.
func SafeBackgroundURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "" && scheme != "http" && scheme != "https" {
		return ""
	}
	return rawURL
}

// SanitizeBackgroundURL returns rawURL ready to sit inside url(...), or "" when
// SafeBackgroundURL rejects it.
func SanitizeBackgroundURL(rawURL string) string {
	return cssURLEscaper.Replace(SafeBackgroundURL(rawURL))
}

var allowedInlineTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.Strong: true,
	atom.Em:     true,
	atom.B:      true,
	atom.I:      true,
	atom.A:      true,
	atom.Br:     true,
	atom.Code:   true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.S:      true,
	atom.Mark:   true,
	atom.Kbd:    true,
	atom.Span:   true,
}

// dropped along with everything inside them
var strippedTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Template: true,
	atom.Noscript: true,
	atom.Textarea: true,
	atom.Select:   true,
}

var headingContext = &html.Node{Type: html.ElementNode, Data: "h1", DataAtom: atom.H1}

// SanitizeHeading keeps the inline formatting a rich text heading may carry and
// drops everything else. Unknown elements are unwrapped, keeping their text.
func SanitizeHeading(raw string) template.HTML {
	if raw == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), headingContext)
	if err != nil {
		return template.HTML(html.EscapeString(raw))
	}

	var b strings.Builder
	for _, n := range nodes {
		writeSanitized(&b, n)
	}
	return template.HTML(b.String())
}

func writeSanitized(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
	case html.ElementNode:
		if strippedTags[n.DataAtom] {
			return
		}
		if !allowedInlineTags[n.DataAtom] {
			writeChildren(b, n)
			return
		}
		b.WriteByte('<')
		b.WriteString(n.Data)
		if n.DataAtom == atom.A {
			writeLinkAttrs(b, n)
		}
		b.WriteByte('>')
		if n.DataAtom == atom.Br {
			return
		}
		writeChildren(b, n)
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteByte('>')
	case html.DocumentNode:
		writeChildren(b, n)
	}
}

func writeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeSanitized(b, c)
	}
}

func writeLinkAttrs(b *strings.Builder, n *html.Node) {
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		switch attr.Key {
		case "href":
			if !safeLink(attr.Val) {
				continue
			}
		case "title", "target":
		default:
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Val))
		b.WriteByte('"')
		if attr.Key == "target" {
			b.WriteString(` rel="noopener noreferrer"`)
		}
	}
}

func safeLink(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto", "tel":
		return true
	}
	return false
}

// headingText reports whether sanitized heading markup has anything to show.
func headingText(h template.HTML) bool {
	return strings.TrimSpace(string(h)) != ""
}
