package mailingservices

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
}

func (m *Mailgun) Init() {
	domain := os.Getenv("MG_DOMAIN")
	apiKey := os.Getenv("MG_PUBLIC_API_KEY")
	m.Client = mailgun.NewMailgun(domain, apiKey)
}

// SendResetPassword emails the password reset link to the user.
func (m *Mailgun) SendResetPassword(recipient, resetLink string) (string, error) {
	sender := os.Getenv("EMAIL_FROM")
	subject := "Reset your LostConnect password"
	body := fmt.Sprintf("Hello,\n\nA password reset was requested for your account. Open the link below to choose a new password. The link expires in 20 minutes.\n\n%s\n\nIf you did not request this, you can ignore this email.", resetLink)

	message := m.Client.NewMessage(sender, subject, body, recipient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return id, nil
}
