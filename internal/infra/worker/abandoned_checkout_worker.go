package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// AbandonedCheckoutWorker marca como abandoned_checkout as vendas paradas em
// waiting_payment além da janela. Hotmart nunca manda callback de abandono;
// sem essa varredura o carrinho fica pendente para sempre no dashboard.
type AbandonedCheckoutWorker struct {
	db           *sql.DB
	staleWindow  time.Duration
	tickInterval time.Duration
}

func NewAbandonedCheckoutWorker(db *sql.DB) *AbandonedCheckoutWorker {
	return &AbandonedCheckoutWorker{
		db:           db,
		staleWindow:  24 * time.Hour,
		tickInterval: 10 * time.Minute,
	}
}

// staleCutoff: vendas em waiting_payment criadas antes desse instante são
// consideradas abandonadas.
func (w *AbandonedCheckoutWorker) staleCutoff(now time.Time) time.Time {
	return now.Add(-w.staleWindow)
}

func (w *AbandonedCheckoutWorker) Start(ctx context.Context) {
	log.Printf("🕒 Abandoned Checkout Worker iniciado (janela de %s)", w.staleWindow)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweepStale(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Abandoned Checkout Worker encerrado")
			return
		case <-ticker.C:
			w.sweepStale(ctx)
		}
	}
}

func (w *AbandonedCheckoutWorker) sweepStale(ctx context.Context) {
	query := `
		UPDATE sales
		SET
			status = 'abandoned_checkout',
			updated_at = NOW()
		WHERE
			status = 'waiting_payment'
			AND created_at < $1
		RETURNING id, launch_id, platform, created_at
	`

	rows, err := w.db.QueryContext(ctx, query, w.staleCutoff(time.Now()))
	if err != nil {
		log.Printf("❌ Erro ao varrer vendas paradas: %v", err)
		return
	}
	defer rows.Close()

	staleCount := 0
	for rows.Next() {
		var saleID, launchID, platform string
		var createdAt time.Time

		if err := rows.Scan(&saleID, &launchID, &platform, &createdAt); err != nil {
			log.Printf("⚠️ Erro ao escanear venda parada: %v", err)
			continue
		}

		elapsed := time.Since(createdAt)
		log.Printf("⏱️ Checkout abandonado: sale=%s launch=%s platform=%s elapsed=%s",
			saleID, launchID, platform, elapsed.Round(time.Minute))
		staleCount++
	}

	if staleCount > 0 {
		log.Printf("✅ %d venda(s) marcadas como abandoned_checkout", staleCount)
	}
}
