package scheduler

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/robfig/cron/v3"
)

// ExpiredSweeper зачищает просроченное состояние пайплайна оплаты
type ExpiredSweeper interface {
	SweepExpired(ctx context.Context) int
}

// Sweeper периодический фон: каждые несколько минут отзывает просроченные
// invoice и выбрасывает осиротевшие метаданные заказов
type Sweeper struct {
	cron     *cron.Cron
	checkout ExpiredSweeper
	log      *slog.Logger
}

// NewSweeper создаёт периодическую зачистку состояния оплат
func NewSweeper(checkout ExpiredSweeper, log *slog.Logger) *Sweeper {
	return &Sweeper{
		cron:     cron.New(),
		checkout: checkout,
		log:      log,
	}
}

// Start регистрирует расписание и запускает cron
func (s *Sweeper) Start(ctx context.Context, spec string) error {
	if spec == "" {
		spec = "@every 5m"
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.checkout.SweepExpired(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register sweep job: %w", err)
	}

	s.cron.Start()
	s.log.Info("checkout sweeper started", "spec", spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop останавливает cron, дождавшись текущего прогона
func (s *Sweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("checkout sweeper stopped")
}
