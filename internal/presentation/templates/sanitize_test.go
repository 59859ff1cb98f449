package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeBackgroundURL(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("https://cdn.example.com/a.png", SanitizeBackgroundURL("https://cdn.example.com/a.png"))
	assert.Equal("/media/hero/a.webp", SanitizeBackgroundURL(" /media/hero/a.webp "))
	assert.Equal("http://x/a%20%28b%29.png", SanitizeBackgroundURL("http://x/a (b).png"))
	assert.Equal("http://x/a%22%29;x.png", SanitizeBackgroundURL(`http://x/a");x.png`))
	assert.Equal("", SanitizeBackgroundURL("javascript:alert(1)"))
	assert.Equal("", SanitizeBackgroundURL("data:image/png;base64,AAAA"))
	assert.Equal("", SanitizeBackgroundURL(""))

	assert.Equal("http://x/a (b).png", SafeBackgroundURL(" http://x/a (b).png "))
	assert.Equal("", SafeBackgroundURL("javascript:alert(1)"))
}

func TestSanitizeHeading(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "Hello & welcome", "Hello &amp; welcome"},
		{"inline formatting", "<strong>Big</strong> <em>news</em><br>", "<strong>Big</strong> <em>news</em><br>"},
		{"script dropped", "Hi<script>alert(1)</script>", "Hi"},
		{"unknown unwrapped", `<div onclick="x()">Hi</div>`, "Hi"},
		{"attributes stripped", `<span style="color:red" class="x">Hi</span>`, "<span>Hi</span>"},
		{"safe link", `<a href="https://x.test" onclick="y()">go</a>`, `<a href="https://x.test">go</a>`},
		{"unsafe link", `<a href="javascript:y()">go</a>`, `<a>go</a>`},
		{"link target", `<a href="/x" target="_blank">go</a>`, `<a href="/x" target="_blank" rel="noopener noreferrer">go</a>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(SanitizeHeading(tc.in)))
		})
	}
}

func TestHeadingText(t *testing.T) {
	assert.False(t, headingText(SanitizeHeading("<script>x</script>")))
	assert.False(t, headingText(SanitizeHeading("")))
	assert.True(t, headingText(SanitizeHeading("<em>x</em>")))
}
