package mail

import (
	"log"

	"github.com/xavierca1/launch-webhooks/internal/infra/integration/whatsapp"
)

type WhatsAppSender struct {
	client     *whatsapp.Client
	templateID string
}

func NewWhatsAppSender(client *whatsapp.Client, templateID string) *WhatsAppSender {
	return &WhatsAppSender{
		client:     client,
		templateID: templateID,
	}
}

// SendSaleConfirmation é melhor-esforço: mensagem de WhatsApp nunca derruba o
// processamento da venda.
func (s *WhatsAppSender) SendSaleConfirmation(phone, name, productName string) error {
	if phone == "" || productName == "" {
		log.Printf("⚠️ WhatsApp: Dados incompletos para envio (phone: %s, product: %s)", phone, productName)
		return nil
	}

	input := whatsapp.SendMessageInput{
		PhoneNumber:  phone,
		TemplateName: s.templateID,
		Parameters:   []string{name, productName},
	}

	if err := s.client.SendMessage(input); err != nil {
		log.Printf("⚠️ WhatsApp: Falha ao enviar para %s: %v", phone, err)
		return nil
	}

	return nil
}
