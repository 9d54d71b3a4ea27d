package identity

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/wneessen/go-mail"
)

// SMTPConfig holds delivery options for the SMTP mailer
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers messages through an SMTP relay
type SMTPMailer struct {
	config SMTPConfig
	logger Logger
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: defLogger{},
	}
}

func (s *SMTPMailer) WithLogger(logger Logger) *SMTPMailer {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *SMTPMailer) Send(ctx context.Context, msg MailMessage) error {
	m := mail.NewMsg()
	if err := m.From(s.config.From); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "invalid sender address")
	}
	if err := m.To(msg.To); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "invalid recipient address")
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(s.config.Host,
		mail.WithPort(s.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.config.Username),
		mail.WithPassword(s.config.Password),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create mail client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("SMTPMailer delivery error", "to", msg.To, "error", err)
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to deliver message")
	}

	return nil
}

// LogMailer prints messages to stdout instead of delivering them. Meant for
// local development where no relay is available.
type LogMailer struct{}

var _ Mailer = LogMailer{}

func (LogMailer) Send(_ context.Context, msg MailMessage) error {
	fmt.Println("====== SENDING EMAIL NOTIFICATION =======")
	fmt.Printf("to: %s\n", msg.To)
	fmt.Printf("subject: %s\n", msg.Subject)
	fmt.Println(msg.Text)
	return nil
}
