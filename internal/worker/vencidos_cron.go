package worker

// vencidos_cron.go
// Background goroutine that periodically marks pending installments whose
// scheduled date has passed as "vencido", so agents can chase them from the
// overdue list.

import (
	"context"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	vencidosTickInterval = 1 * time.Hour
	vencidosBatchSize    = 100
)

// StartVencidosCron launches a goroutine that ticks hourly and sweeps
// overdue pagos. It runs one sweep immediately on startup and respects the
// context for graceful shutdown.
func StartVencidosCron(ctx context.Context, pagoRepo repository.PagoRepository) {
	go func() {
		ticker := time.NewTicker(vencidosTickInterval)
		defer ticker.Stop()

		log.Info().Msg("vencidos_cron: started")
		sweepVencidos(ctx, pagoRepo)

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("vencidos_cron: shutting down")
				return
			case <-ticker.C:
				sweepVencidos(ctx, pagoRepo)
			}
		}
	}()
}

func sweepVencidos(ctx context.Context, pagoRepo repository.PagoRepository) {
	for {
		pagos, err := pagoRepo.ListVencidos(ctx, time.Now(), vencidosBatchSize)
		if err != nil {
			log.Error().Err(err).Msg("vencidos_cron: failed to query overdue pagos")
			return
		}
		if len(pagos) == 0 {
			return
		}

		marked := 0
		for i := range pagos {
			if err := pagoRepo.MarcarVencido(ctx, pagos[i].ID); err != nil {
				log.Error().Err(err).Str("pago_id", pagos[i].ID.String()).Msg("vencidos_cron: failed to mark pago")
				continue
			}
			marked++
		}
		log.Info().Int("marked", marked).Msg("vencidos_cron: overdue pagos updated")

		// No progress means the same rows would come back on the next
		// iteration — give up until the next tick
		if marked == 0 || len(pagos) < vencidosBatchSize {
			return
		}
	}
}
