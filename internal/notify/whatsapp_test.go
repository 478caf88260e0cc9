package notify

import (
	"strings"
	"testing"
)

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name        string
		countryCode string
		phone       string
		message     string
		want        string
	}{
		{
			name:        "plain digits",
			countryCode: "56",
			phone:       "987654321",
			message:     "",
			want:        "https://wa.me/56987654321",
		},
		{
			name:        "strips formatting",
			countryCode: "+56",
			phone:       "9 8765-4321",
			message:     "",
			want:        "https://wa.me/56987654321",
		},
		{
			name:        "message is escaped",
			countryCode: "56",
			phone:       "987654321",
			message:     "Hola María & Juan",
			want:        "https://wa.me/56987654321?text=Hola+Mar%C3%ADa+%26+Juan",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WhatsAppLink(tc.countryCode, tc.phone, tc.message)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusMessage(t *testing.T) {
	msg := StatusMessage("READY_FOR_PICKUP", "María", "ORD-2026-0042", "Servicio Técnico Central")
	for _, want := range []string{"María", "ORD-2026-0042", "Servicio Técnico Central", "lista para retiro"} {
		if !strings.Contains(msg, want) {
			t.Errorf("ready message missing %q: %s", want, msg)
		}
	}

	msg = StatusMessage("UNSOLVED", "Juan", "ORD-2026-0001", "Taller")
	if !strings.Contains(msg, "no fue posible reparar") {
		t.Errorf("unsolved message wrong: %s", msg)
	}

	// Unknown statuses still produce something sendable.
	msg = StatusMessage("IN_PROGRESS", "Ana", "ORD-2026-0002", "Taller")
	if !strings.Contains(msg, "ORD-2026-0002") {
		t.Errorf("fallback message missing order number: %s", msg)
	}
}

func TestMailerNotConfigured(t *testing.T) {
	m := NewMailer("localhost", 587, "", "", "no-reply@taller.local")
	err := m.Send(EmailRequest{To: "client@example.com", Subject: "x", Body: "y"})
	if err != ErrMailNotConfigured {
		t.Fatalf("expected ErrMailNotConfigured, got: %v", err)
	}
}
