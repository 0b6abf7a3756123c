package scheduler

import (
	"context"
	"time"
)

// IJobScheduler планировщик одноразовых задач на конкретное время.
// Регистрация идемпотентна по job_id: повторный Schedule с тем же id
// заменяет задачу, а не дублирует её.
type IJobScheduler interface {
	Schedule(jobID string, runAt time.Time, fn func(ctx context.Context))
	Cancel(jobID string) bool
}
