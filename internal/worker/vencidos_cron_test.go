package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lgalindop/emociones-viajes-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type vencidosRepoStub struct {
	pagos     []*model.Pago
	listCalls int
	// markErr makes every MarcarVencido call fail
	markErr error
}

func newVencidosRepoStub(overdue int) *vencidosRepoStub {
	s := &vencidosRepoStub{}
	ayer := time.Now().AddDate(0, 0, -3)
	for i := 0; i < overdue; i++ {
		s.pagos = append(s.pagos, &model.Pago{
			ID:              uuid.New(),
			VentaID:         uuid.New(),
			NumeroPago:      i + 1,
			Monto:           decimal.NewFromInt(100),
			FechaProgramada: ayer,
			Estado:          "pendiente",
		})
	}
	return s
}

func (s *vencidosRepoStub) DB() *gorm.DB                              { return nil }
func (s *vencidosRepoStub) CreateBulkTx(*gorm.DB, []model.Pago) error { return nil }
func (s *vencidosRepoStub) UpdateTx(*gorm.DB, *model.Pago) error      { return nil }

func (s *vencidosRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	for _, p := range s.pagos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.New("record not found")
}

func (s *vencidosRepoStub) ListByVenta(_ context.Context, ventaID uuid.UUID) ([]model.Pago, error) {
	return nil, nil
}

func (s *vencidosRepoStub) ListVencidos(_ context.Context, hoy time.Time, limit int) ([]model.Pago, error) {
	s.listCalls++
	var result []model.Pago
	for _, p := range s.pagos {
		if p.Estado == "pendiente" && p.FechaProgramada.Before(hoy) {
			result = append(result, *p)
		}
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (s *vencidosRepoStub) MarcarVencido(_ context.Context, id uuid.UUID) error {
	if s.markErr != nil {
		return s.markErr
	}
	for _, p := range s.pagos {
		if p.ID == id && p.Estado == "pendiente" {
			p.Estado = "vencido"
		}
	}
	return nil
}

func TestSweepVencidos_MarcaTodosLosLotes(t *testing.T) {
	repo := newVencidosRepoStub(vencidosBatchSize + 50)

	sweepVencidos(context.Background(), repo)

	vencidos := 0
	for _, p := range repo.pagos {
		if p.Estado == "vencido" {
			vencidos++
		}
	}
	assert.Equal(t, vencidosBatchSize+50, vencidos)
	assert.Equal(t, 2, repo.listCalls)
}

func TestSweepVencidos_SinProgresoTermina(t *testing.T) {
	// A full batch where every update fails would re-list the same rows
	// forever without the progress check
	repo := newVencidosRepoStub(vencidosBatchSize)
	repo.markErr = errors.New("deadlock detected")

	done := make(chan struct{})
	go func() {
		sweepVencidos(context.Background(), repo)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweepVencidos did not terminate")
	}
	assert.Equal(t, 1, repo.listCalls)
}
