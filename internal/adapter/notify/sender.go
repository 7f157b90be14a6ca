package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/keighl/postmark"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/polkiloo/rype/internal/config"
)

// ErrNoRecipient is returned for messages without an address.
var ErrNoRecipient = errors.New("message has no recipient")

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender constructs LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	s.logger.InfoContext(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

// PostmarkSender delivers messages through the Postmark API.
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

// NewPostmarkSender constructs a sender authenticated with a server token.
func NewPostmarkSender(serverToken, from string) *PostmarkSender {
	return &PostmarkSender{client: postmark.NewClient(serverToken, ""), from: from}
}

func (s *PostmarkSender) Send(_ context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	_, err := s.client.SendEmail(postmark.Email{
		From:     s.from,
		To:       msg.To,
		Subject:  msg.Subject,
		HtmlBody: msg.HTML,
		TextBody: msg.Text,
		Tag:      "order",
	})
	if err != nil {
		return fmt.Errorf("postmark send: %w", err)
	}
	return nil
}

const sendGridEndpoint = "/v3/mail/send"

// SendGridSender delivers messages through the SendGrid v3 mail API.
type SendGridSender struct {
	apiKey string
	host   string
	from   *mail.Email
}

// NewSendGridSender constructs a sender for apiKey. An empty host selects
// the public SendGrid API.
func NewSendGridSender(apiKey, host, from string) *SendGridSender {
	return &SendGridSender{apiKey: apiKey, host: host, from: mail.NewEmail("Rype", from)}
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	email := mail.NewSingleEmail(s.from, msg.Subject, mail.NewEmail("", msg.To), msg.Text, msg.HTML)

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(email)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// NewSender picks the delivery channel from configuration: Postmark first,
// then SendGrid, and a log-only sender when neither is configured.
func NewSender(cfg *config.Config, logger *slog.Logger) Sender {
	logger = logger.With("component", "notify")
	switch {
	case cfg.PostmarkToken != "":
		return NewPostmarkSender(cfg.PostmarkToken, cfg.EmailSender)
	case cfg.SendGridKey != "":
		return NewSendGridSender(cfg.SendGridKey, "", cfg.EmailSender)
	default:
		logger.Info("no e-mail provider configured, e-mails are logged only")
		return NewLogSender(logger)
	}
}
