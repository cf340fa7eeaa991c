package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/http/middleware"
)

type ConfirmationEmailSender interface {
	SendSaleConfirmation(to, name, productName string, amountCents int64) error
}

type ConfirmationWhatsAppSender interface {
	SendSaleConfirmation(phone, name, productName string) error
}

// Worker consome q.sale-events e dispara as confirmações de compra.
type Worker struct {
	Channel  *amqp.Channel
	Email    ConfirmationEmailSender
	WhatsApp ConfirmationWhatsAppSender
}

func NewWorker(ch *amqp.Channel, email ConfirmationEmailSender, whatsapp ConfirmationWhatsAppSender) *Worker {
	return &Worker{
		Channel:  ch,
		Email:    email,
		WhatsApp: whatsapp,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload SaleEventPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] Evento de venda %s (status=%s)", payload.SaleID, payload.Status)

			if err := w.ProcessSaleEvent(payload); err != nil {
				log.Printf("❌ [WORKER] Erro ao processar venda %s: %s", payload.SaleID, err)
				middleware.RecordIntegrationError("notifications")
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

// ProcessSaleEvent: só compra paga gera mensagem. Os demais status apenas
// saem da fila.
func (w *Worker) ProcessSaleEvent(payload SaleEventPayload) error {
	if payload.Status != entity.SaleStatusPaid {
		log.Printf("⏭️ [WORKER] Venda %s com status %s, nada a notificar", payload.SaleID, payload.Status)
		return nil
	}

	if w.Email != nil && payload.Email != "" {
		if err := w.Email.SendSaleConfirmation(payload.Email, payload.Name, payload.ProductName, payload.AmountCents); err != nil {
			return err
		}
	}

	if w.WhatsApp != nil && payload.Phone != "" {
		// Falha de WhatsApp não volta pra fila: o sender já loga e engole.
		w.WhatsApp.SendSaleConfirmation(payload.Phone, payload.Name, payload.ProductName)
	}

	log.Printf("✅ [WORKER] Confirmações enviadas para venda %s", payload.SaleID)
	return nil
}
