package queue

import (
	"context"
	"time"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/entity"
	"github.com/oksasatya/go-hris/pkg/mailer"
	"github.com/oksasatya/go-hris/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns account events into mailer.EmailJob messages for the email worker.
type EmailNotifier struct {
	pub      Publisher
	appName  string
	loginURL string
	timeout  time.Duration
}

func NewEmailNotifier(pub Publisher, appName, loginURL string) *EmailNotifier {
	return &EmailNotifier{pub: pub, appName: appName, loginURL: loginURL, timeout: 3 * time.Second}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.PublicUser) error {
	job := mailer.EmailJob{
		To:       u.Email,
		Template: templates.Welcome,
		Data: templates.ToMap(templates.EmailData{
			Name:     u.Name,
			Email:    u.Email,
			AppName:  n.appName,
			LoginURL: n.loginURL,
		}),
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.pub.PublishJSON(ctx, job)
}

var _ application.Notifier = (*EmailNotifier)(nil)
