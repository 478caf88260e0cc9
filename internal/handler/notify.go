package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taller-pos/api/internal/notify"
	"github.com/taller-pos/api/internal/pdf"
)

// MailSender sends outbound mail. Satisfied by *notify.Mailer.
type MailSender interface {
	Send(req notify.EmailRequest) error
}

// NotifyHandler pushes order updates to the customer over email and builds
// WhatsApp deep links the front desk can tap to start a chat.
type NotifyHandler struct {
	store  DocumentStore
	mailer MailSender
}

// NewNotifyHandler creates a new NotifyHandler.
func NewNotifyHandler(store DocumentStore, mailer MailSender) *NotifyHandler {
	return &NotifyHandler{store: store, mailer: mailer}
}

// RegisterRoutes registers notification endpoints on the given Chi router.
// Expected to be mounted at /branches/{bid}/orders/{id}/notifications
func (h *NotifyHandler) RegisterRoutes(r chi.Router) {
	r.Post("/email", h.SendEmail)
	r.Get("/whatsapp-link", h.WhatsAppLink)
}

type emailSentResponse struct {
	SentTo string `json:"sent_to"`
}

type whatsappLinkResponse struct {
	Link    string `json:"link"`
	Message string `json:"message"`
}

// SendEmail mails the current work order document to the customer.
func (h *NotifyHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	doc := DocumentHandler{store: h.store}
	b, ok := doc.loadBundle(w, r)
	if !ok {
		return
	}

	var commitment *time.Time
	if b.order.CommitmentDate.Valid {
		t := b.order.CommitmentDate.Time
		commitment = &t
	}

	receiptNumber := ""
	if b.order.ReceiptNumber.Valid {
		receiptNumber = b.order.ReceiptNumber.String
	}

	buf, err := pdf.BuildWorkOrder(pdf.WorkOrderData{
		Shop:            branchShopInfo(b.branch),
		OrderNumber:     b.order.OrderNumber,
		Status:          string(b.order.Status),
		Priority:        string(b.order.Priority),
		CreatedAt:       b.order.CreatedAt,
		GeneratedAt:     time.Now(),
		CustomerName:    b.customer.Name,
		CustomerPhone:   b.customer.CountryCode + " " + b.customer.Phone,
		CustomerEmail:   b.customer.Email,
		Devices:         orderDevices(b.order),
		Checklist:       orderChecklist(b.order),
		Services:        orderServiceLines(b.services),
		ReplacementCost: numericToString(b.order.ReplacementCost),
		LaborCost:       numericToString(b.order.LaborCost),
		TotalCost:       numericToString(b.order.TotalCost),
		ReceiptNumber:   receiptNumber,
		CommitmentDate:  commitment,
		WarrantyDays:    b.order.WarrantyDays,
	})
	if err != nil {
		log.Printf("ERROR: build work order pdf for email: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	body := fmt.Sprintf(
		"Hola %s,\n\nAdjuntamos la orden de trabajo %s de %s.\n\nEstado actual: %s\n\nGracias por su preferencia.",
		b.customer.Name, b.order.OrderNumber, b.branch.Name, b.order.Status,
	)

	err = h.mailer.Send(notify.EmailRequest{
		To:             b.customer.Email,
		Subject:        fmt.Sprintf("Orden de trabajo %s", b.order.OrderNumber),
		Body:           body,
		Attachment:     buf,
		AttachmentName: b.order.OrderNumber + ".pdf",
	})
	if err != nil {
		if errors.Is(err, notify.ErrMailNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "mail is not configured"})
			return
		}
		log.Printf("ERROR: send order email: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to send email"})
		return
	}

	writeJSON(w, http.StatusOK, emailSentResponse{SentTo: b.customer.Email})
}

// WhatsAppLink returns a wa.me link preloaded with a status message for the
// order's customer. The frontend opens it in a new tab; no message is sent
// by the server.
func (h *NotifyHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	doc := DocumentHandler{store: h.store}
	b, ok := doc.loadBundle(w, r)
	if !ok {
		return
	}

	message := notify.StatusMessage(string(b.order.Status), b.customer.Name, b.order.OrderNumber, b.branch.Name)
	link := notify.WhatsAppLink(b.customer.CountryCode, b.customer.Phone, message)

	writeJSON(w, http.StatusOK, whatsappLinkResponse{
		Link:    link,
		Message: message,
	})
}
