package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SaleEventPayload é o evento publicado a cada venda gravada. O worker de
// notificações decide o que fazer com base no status.
type SaleEventPayload struct {
	SaleID      string `json:"sale_id"`
	LeadID      string `json:"lead_id,omitempty"`
	LaunchID    string `json:"launch_id"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	Email       string `json:"email"`
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ProductName string `json:"product_name"`
	AmountCents int64  `json:"amount_cents"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSaleEvent(ctx context.Context, payload SaleEventPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
