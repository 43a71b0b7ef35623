package worker

// recibo_email_worker.go
// Processes receipt delivery jobs from QueueReciboEmail: sends the rendered
// PDF receipt to the customer via SMTP.

import (
	"context"
	"encoding/json"

	"github.com/lgalindop/emociones-viajes-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReciboEmailPayload is the job envelope sent to QueueReciboEmail.
type ReciboEmailPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// ReciboEmailWorker sends PDF receipts to customer emails via SMTP.
type ReciboEmailWorker struct {
	mailer *infra.Mailer
	rdb    *redis.Client
}

func NewReciboEmailWorker(mailer *infra.Mailer, rdb *redis.Client) *ReciboEmailWorker {
	return &ReciboEmailWorker{mailer: mailer, rdb: rdb}
}

// Process sends an email with the PDF receipt as attachment. Send failures
// land in the DLQ for manual inspection.
func (w *ReciboEmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("recibo_email_worker: empty to_email — skipping")
		return
	}

	if err := w.mailer.SendRecibo(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("recibo_email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueReciboEmail, "recibo_email", raw, err.Error(), 1)
		return
	}
	log.Info().Str("to", payload.ToEmail).Msg("recibo_email_worker: recibo sent successfully")
}
