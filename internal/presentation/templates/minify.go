package templates

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// Minifier compacts published hero markup. No CSS minifier is registered, so
// inline styles pass through byte for byte and match the editor markup.
type Minifier struct {
	m *minify.M
}

func NewMinifier() *Minifier {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepQuotes:       true,
		KeepEndTags:      true,
		KeepDocumentTags: true,
	})
	return &Minifier{m: m}
}

func (mf *Minifier) HTML(markup string) (string, error) {
	return mf.m.String("text/html", markup)
}
