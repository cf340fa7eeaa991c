package usecase

import (
	"strings"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

// StatusNormalizer traduz o vocabulário de status de cada plataforma para o
// enum canônico de quatro estados. Plataforma nova = entrada nova no mapa,
// nada de branch novo.
type StatusNormalizer map[string]map[string]string

// hubla e monetizze compartilham o mesmo vocabulário.
var hublaVocabulary = map[string]string{
	"paid":      entity.SaleStatusPaid,
	"approved":  entity.SaleStatusPaid,
	"refunded":  entity.SaleStatusRefunded,
	"abandoned": entity.SaleStatusAbandonedCheckout,
}

func DefaultStatusNormalizer() StatusNormalizer {
	return StatusNormalizer{
		"hotmart": {
			"approved":        entity.SaleStatusPaid,
			"complete":        entity.SaleStatusPaid,
			"waiting_payment": entity.SaleStatusWaitingPayment,
			"pending":         entity.SaleStatusWaitingPayment,
			"refunded":        entity.SaleStatusRefunded,
			"cancelled":       entity.SaleStatusRefunded,
		},
		"hubla":     hublaVocabulary,
		"monetizze": hublaVocabulary,
	}
}

var canonicalStatuses = map[string]bool{
	entity.SaleStatusWaitingPayment:    true,
	entity.SaleStatusPaid:              true,
	entity.SaleStatusRefunded:          true,
	entity.SaleStatusAbandonedCheckout: true,
}

// Normalize é total: qualquer par (plataforma, status) cai em um dos quatro
// estados. Desconhecido vira waiting_payment: nunca descartamos a venda e
// nunca marcamos como paga sem reconhecer o termo.
func (n StatusNormalizer) Normalize(platform, rawStatus string) string {
	p := strings.ToLower(strings.TrimSpace(platform))
	s := strings.ToLower(strings.TrimSpace(rawStatus))

	if vocabulary, ok := n[p]; ok {
		if canonical, ok := vocabulary[s]; ok {
			return canonical
		}
		return entity.SaleStatusWaitingPayment
	}

	// Plataforma fora do mapa: aceita o status se já vier no vocabulário
	// canônico, senão cai no default seguro.
	if canonicalStatuses[s] {
		return s
	}
	return entity.SaleStatusWaitingPayment
}
