// Package mail implements the welcome-mail notifier over SMTP.
//
// Delivery is disabled by default (see SMTP_ENABLED); the Noop notifier keeps
// the signup flow observably mail-free until a deployment opts in.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/tuneup/accounts-api/internal/core/ports"
)

const welcomeSubject = "Welcome to TuneUp!"

const welcomeBody = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Welcome to TuneUp</title>
    <style>
        body, html { margin: 0; padding: 0; font-family: 'Poppins', sans-serif; background: linear-gradient(135deg, #1DB954 0%%, #191414 100%%); color: #ffffff; }
        .email-container { max-width: 600px; margin: 20px auto; background: rgba(255, 255, 255, 0.1); border-radius: 15px; padding: 30px; text-align: center; }
        .header-title { font-size: 36px; font-weight: 700; color: #ffffff; }
        .welcome-message { font-size: 24px; font-weight: 600; color: #1ED760; }
        .cta-button { display: inline-block; padding: 15px 30px; background: #1ED760; color: #191414; text-decoration: none; border-radius: 50px; font-weight: 700; }
        .cta-button:hover { background: #1DB954; }
        .email-footer { margin-top: 20px; font-size: 12px; color: #ccc; }
    </style>
</head>
<body>
    <div class="email-container">
        <h1 class="header-title">Welcome to TuneUp, %s! &#127925;</h1>
        <p class="welcome-message">Your Musical Universe Awaits!</p>
        <p>Get ready to dive into a world where music meets magic. TuneUp is more than a platform&mdash;it's your personal soundtrack.</p>
        <a href="#" class="cta-button">Unleash Your Playlist</a>
        <div class="email-footer">&copy; 2025 TuneUp. All rights reserved.</div>
    </div>
</body>
</html>`

// Config captures SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends the welcome mail for a registered account. The account
// is looked up by email so the greeting can address the username.
type SMTPNotifier struct {
	cfg  Config
	repo ports.UserRepository
}

func NewSMTPNotifier(cfg Config, repo ports.UserRepository) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, repo: repo}
}

func (n *SMTPNotifier) SendWelcome(ctx context.Context, email string) error {
	user, err := n.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("welcome mail recipient: %w", err)
	}

	msg := gomail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("welcome mail from: %w", err)
	}
	if err := msg.To(email); err != nil {
		return fmt.Errorf("welcome mail to: %w", err)
	}
	msg.Subject(welcomeSubject)
	msg.SetBodyString(gomail.TypeTextHTML, fmt.Sprintf(welcomeBody, user.Username))

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

// NoopNotifier discards welcome mail. Wired when SMTP delivery is disabled.
type NoopNotifier struct{}

func (NoopNotifier) SendWelcome(context.Context, string) error { return nil }
