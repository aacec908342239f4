package utils

import (
	"fmt"
	"log"
	"os"

	"caphe_back_end/internal/models"
	"caphe_back_end/internal/orderflow"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un mail HTML via le SMTP configuré dans .env
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@caphe.app"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateResetPasswordHTML génère le mail de réinitialisation
func GenerateResetPasswordHTML(resetLink string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Réinitialisation de votre mot de passe</h2>
	<p>Vous avez demandé la réinitialisation de votre mot de passe Caphê.</p>
	<p><a href="%s">Cliquez ici pour choisir un nouveau mot de passe</a></p>
	<p>Ce lien expire dans 30 minutes. Si vous n'êtes pas à l'origine de cette
	demande, ignorez ce message.</p>
</body>
</html>`, resetLink)
}

// GenerateOrderConfirmationHTML génère le récapitulatif de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s x%d</td>
				<td>%d₫</td>
			</tr>`, item.Name, item.Quantity, item.LineTotal)
	}

	voucherHTML := ""
	if order.VoucherAmount > 0 {
		voucherHTML = fmt.Sprintf(`<tr><td>Voucher %s</td><td>-%d₫</td></tr>`,
			order.VoucherCode, order.VoucherAmount)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<h2>Merci pour votre commande ☕</h2>
	<p>Commande <b>%s</b> — statut : %s</p>
	<table border="0" cellpadding="6">
		%s
		%s
		<tr><td><b>Total</b></td><td><b>%d₫</b></td></tr>
	</table>
	<p>Paiement : %s<br>Livraison : %s, %s</p>
</body>
</html>`,
		order.ID.String(), orderflow.StatusName(order.Status),
		itemsHTML, voucherHTML, order.Total,
		order.PaymentMethod, order.Address.Street, order.Address.City)
}
