package scheduler

import (
	"context"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDateScheduler_FiresPastJobImmediately(t *testing.T) {
	s := NewDateScheduler(testLogger())
	defer s.Stop()

	fired := make(chan struct{})
	s.Schedule("job1", time.Now().Add(-time.Minute), func(ctx context.Context) {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("просроченная задача должна запуститься сразу")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, 10*time.Millisecond)
}

func TestDateScheduler_ReplacesJobWithSameID(t *testing.T) {
	s := NewDateScheduler(testLogger())
	defer s.Stop()

	firstFired := make(chan struct{})
	s.Schedule("job1", time.Now().Add(time.Hour), func(ctx context.Context) {
		close(firstFired)
	})

	secondFired := make(chan struct{})
	s.Schedule("job1", time.Now().Add(20*time.Millisecond), func(ctx context.Context) {
		close(secondFired)
	})

	assert.Equal(t, 1, s.Pending())

	select {
	case <-secondFired:
	case <-time.After(2 * time.Second):
		t.Fatal("замещающая задача не запустилась")
	}

	select {
	case <-firstFired:
		t.Fatal("вытесненная задача не должна запускаться")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDateScheduler_Cancel(t *testing.T) {
	s := NewDateScheduler(testLogger())
	defer s.Stop()

	fired := make(chan struct{})
	s.Schedule("job1", time.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		close(fired)
	})

	assert.True(t, s.Cancel("job1"))
	assert.False(t, s.Cancel("job1"), "повторная отмена возвращает false")
	assert.Equal(t, 0, s.Pending())

	select {
	case <-fired:
		t.Fatal("отменённая задача не должна запускаться")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDateScheduler_StopPreventsPendingJobs(t *testing.T) {
	s := NewDateScheduler(testLogger())

	fired := make(chan struct{})
	s.Schedule("job1", time.Now().Add(30*time.Millisecond), func(ctx context.Context) {
		close(fired)
	})

	s.Stop()

	select {
	case <-fired:
		t.Fatal("после Stop задачи не должны запускаться")
	case <-time.After(150 * time.Millisecond):
	}
	assert.Equal(t, 0, s.Pending())
}
