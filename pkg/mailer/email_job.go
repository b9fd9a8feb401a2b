package mailer

import (
	"context"
	"errors"

	"github.com/oksasatya/go-hris/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data) or Subject/Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// ErrBadJob marks a job that can never be delivered and should not be retried.
var ErrBadJob = errors.New("undeliverable email job")

// Deliver renders job when it names a template and hands the result to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return errors.Join(ErrBadJob, errors.New("missing recipient"))
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return errors.Join(ErrBadJob, err)
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
