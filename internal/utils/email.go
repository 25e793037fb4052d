package utils

import (
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"vendorhub_back_end/internal/config"
)

// Mailer : envoi d'emails transactionnels via SMTP
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendPasswordResetEmail envoie le lien de réinitialisation. Le token part
// dans le lien, jamais dans les logs.
func (m *Mailer) SendPasswordResetEmail(to, name, token string) error {
	if m.cfg.SMTPHost == "" {
		log.Println("⚠️ SMTP non configuré — email de réinitialisation non envoyé")
		return nil
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.FrontendURL, token)

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.MailFrom); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Réinitialisation de votre mot de passe VendorHub")
	msg.SetBodyString(mail.TypeTextHTML, passwordResetHTML(name, resetLink))

	client, err := mail.NewClient(m.cfg.SMTPHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.cfg.SMTPUsername),
		mail.WithPassword(m.cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de réinitialisation à", to)
	return client.DialAndSend(msg)
}

func passwordResetHTML(name, resetLink string) string {
	if name == "" {
		name = "vendeur"
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
	<title>Réinitialisation de mot de passe</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Réinitialisation de votre mot de passe</h2>
		<p>Bonjour <b>%s</b>,</p>
		<p>Vous avez demandé à réinitialiser votre mot de passe VendorHub.</p>

		<p style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">
				Réinitialiser mon mot de passe
			</a>
		</p>

		<p style="color: #666; font-size: 13px;">Ce lien est valable 1 heure. Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>
	</div>
</body>
</html>`, name, resetLink)
}
