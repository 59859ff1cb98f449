package services

import (
	"strings"

	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/email"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/email/templates"
)

// EmailPublishNotifier mails a fixed recipient about every publish.
type EmailPublishNotifier struct {
	mailer  email.Service
	to      string
	baseURL string
}

func NewEmailPublishNotifier(mailer email.Service, to, baseURL string) *EmailPublishNotifier {
	return &EmailPublishNotifier{
		mailer:  mailer,
		to:      to,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (n *EmailPublishNotifier) NotifyPublished(block *hero.Block) error {
	props := templates.PublishEmailProps{
		BlockID: block.ID,
		Variant: block.Variant,
		Heading: block.Attributes.Text,
		ViewURL: n.baseURL + "/blocks/" + block.ID,
	}
	if block.Published != nil {
		props.PublishedAt = *block.Published
	}
	if hero.HasImage(block.Attributes) {
		props.ImageURL = n.absolute(*block.Attributes.URL)
	}
	return n.mailer.SendPublishNotification(n.to, props)
}

func (n *EmailPublishNotifier) absolute(u string) string {
	if strings.HasPrefix(u, "/") {
		return n.baseURL + u
	}
	return u
}
