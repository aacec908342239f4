package utils

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// GenerateOrderQR génère le QR de suivi d'une commande en base64, prêt à
// mettre dans un <img src="..."> côté mobile. Le staff le scanne au
// comptoir pour retrouver la commande.
func GenerateOrderQR(orderID string) (string, error) {
	content := fmt.Sprintf("caphe://order/%s", orderID)

	png, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
