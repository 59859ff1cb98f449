// Package templates provides email template components
package templates

import (
	"bytes"
	"html/template"
	"log"
	"net/url"
	"strings"
	"time"
)

type ButtonProps struct {
	Text            string
	URL             string
	BackgroundColor string
	TextColor       string
}

// PublishEmailProps describes a published block.
type PublishEmailProps struct {
	BlockID     string
	Variant     string
	Heading     string
	ImageURL    string
	ViewURL     string
	PublishedAt time.Time
}

var (
	buttonTemplate = template.Must(template.New("emailButton").Parse(
		`<table role="presentation" border="0" cellpadding="0" cellspacing="0" style="width: auto; padding-bottom: 16px;"><tr>` +
			`<td style="border-radius: 4px; text-align: center; background-color: {{.BackgroundColor}};" bgcolor="{{.BackgroundColor}}">` +
			`<a href="{{.URL}}" target="_blank" style="border-radius: 4px; display: inline-block; font-weight: bold; padding: 12px 24px; text-decoration: none; color: {{.TextColor}};">{{.Text}}</a>` +
			`</td></tr></table>`))

	paragraphTemplate = template.Must(template.New("emailParagraph").Parse(
		`<p style="font-family: Helvetica, sans-serif; font-size: 16px; margin: 0; margin-bottom: 16px;">{{.}}</p>`))

	previewTemplate = template.Must(template.New("emailPreview").Parse(
		`<img src="{{.}}" alt="" width="552" style="display: block; max-width: 100%; border-radius: 8px; margin-bottom: 16px;">`))
)

// GetButton renders a call to action. Unsafe URLs fall back to "#".
func GetButton(props ButtonProps) string {
	backgroundColor := sanitizeColor(props.BackgroundColor, "#0867ec")
	textColor := sanitizeColor(props.TextColor, "#ffffff")

	sanitizedURL := sanitizeEmailURL(props.URL)
	if sanitizedURL == "" {
		log.Printf("Invalid or unsafe URL in email button: %s", props.URL)
		sanitizedURL = "#"
	}

	var buf bytes.Buffer
	if err := buttonTemplate.Execute(&buf, ButtonProps{
		Text:            props.Text,
		URL:             sanitizedURL,
		BackgroundColor: backgroundColor,
		TextColor:       textColor,
	}); err != nil {
		log.Printf("Error executing email button template: %v", err)
		return `<div style="color: red;">Button template error</div>`
	}
	return buf.String()
}

// GetParagraph renders escaped paragraph text.
func GetParagraph(text string) string {
	var buf bytes.Buffer
	if err := paragraphTemplate.Execute(&buf, text); err != nil {
		log.Printf("Error executing email paragraph template: %v", err)
		return `<div style="color: red;">Paragraph template error</div>`
	}
	return buf.String()
}

// GetPublishEmailContent builds the body of a publish notification.
func GetPublishEmailContent(props PublishEmailProps) string {
	var b strings.Builder

	heading := props.Heading
	if heading == "" {
		heading = "(no heading)"
	}
	b.WriteString(GetParagraph("A hero block was just published."))
	b.WriteString(GetParagraph("Heading: " + heading))
	b.WriteString(GetParagraph("Block " + props.BlockID + " (" + props.Variant + ") at " +
		props.PublishedAt.UTC().Format(time.RFC1123)))

	if img := sanitizeEmailURL(props.ImageURL); img != "" {
		var buf bytes.Buffer
		if err := previewTemplate.Execute(&buf, img); err == nil {
			b.WriteString(buf.String())
		}
	}
	if props.ViewURL != "" {
		b.WriteString(GetButton(ButtonProps{Text: "View block", URL: props.ViewURL}))
	}
	return b.String()
}

// sanitizeEmailURL accepts absolute http(s) URLs only.
func sanitizeEmailURL(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.String()
	}
	return ""
}

func sanitizeColor(color, fallback string) string {
	if len(color) != 7 || color[0] != '#' {
		return fallback
	}
	for _, r := range color[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return fallback
		}
	}
	return color
}
