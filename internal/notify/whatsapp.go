package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link for the given phone. Country code and
// phone may contain spaces, dashes, or a leading +; only digits survive.
// An empty message produces a bare chat link.
func WhatsAppLink(countryCode, phone, message string) string {
	digits := digitsOnly(countryCode) + digitsOnly(phone)
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// StatusMessage returns the message template for an order in the given
// status. Unknown statuses fall back to a generic update.
func StatusMessage(status, customerName, orderNumber, shopName string) string {
	switch status {
	case "READY_FOR_PICKUP":
		return fmt.Sprintf("Hola %s, tu orden %s ya está lista para retiro en %s.", customerName, orderNumber, shopName)
	case "DELIVERED":
		return fmt.Sprintf("Hola %s, gracias por retirar tu orden %s. Recuerda que cuenta con garantía.", customerName, orderNumber)
	case "UNSOLVED":
		return fmt.Sprintf("Hola %s, lamentablemente no fue posible reparar el equipo de la orden %s. Puedes pasar a retirarlo en %s.", customerName, orderNumber, shopName)
	case "REJECTED":
		return fmt.Sprintf("Hola %s, el presupuesto de la orden %s fue rechazado. El equipo está disponible para retiro en %s.", customerName, orderNumber, shopName)
	default:
		return fmt.Sprintf("Hola %s, tenemos novedades de tu orden %s. Contáctanos para más detalles.", customerName, orderNumber)
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
