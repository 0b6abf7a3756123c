package scheduler

import (
	"context"
	"sync"
	"time"

	"log/slog"

	schedulerPort "github.com/Hikinamuri/wb-sellers-backend/internal/ports/scheduler"
)

// DateScheduler планировщик одноразовых задач на конкретное время.
// Реализует интерфейс scheduler.IJobScheduler: повторная регистрация
// по тому же job_id заменяет задачу, а не дублирует её.
// Расписание живёт в памяти процесса, на старте восстанавливается
// из БД по pending-товарам.
type DateScheduler struct {
	log *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDateScheduler создаёт планировщик одноразовых задач
func NewDateScheduler(log *slog.Logger) *DateScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &DateScheduler{
		log:    log,
		timers: make(map[string]*time.Timer),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule ставит задачу на время runAt. Прошедшее время означает запуск
// сразу. Прежняя задача с тем же job_id снимается
func (s *DateScheduler) Schedule(jobID string, runAt time.Time, fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[jobID]; ok {
		prev.Stop()
		s.log.Debug("job replaced", "job_id", jobID)
	}

	delay := time.Until(runAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[jobID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, jobID)
		s.mu.Unlock()

		if s.ctx.Err() != nil {
			return
		}

		s.log.Info("job fired", "job_id", jobID, "scheduled_for", runAt)
		fn(s.ctx)
	})

	s.log.Info("job scheduled",
		"job_id", jobID,
		"run_at", runAt,
		"delay", delay)
}

// Cancel снимает задачу; true если задача существовала
func (s *DateScheduler) Cancel(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[jobID]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, jobID)
	s.log.Info("job cancelled", "job_id", jobID)
	return true
}

// Pending количество запланированных задач
func (s *DateScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop снимает все задачи и запрещает запуск уже взведённых
func (s *DateScheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	for jobID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, jobID)
	}
	s.log.Info("date scheduler stopped")
}

var _ schedulerPort.IJobScheduler = (*DateScheduler)(nil)
