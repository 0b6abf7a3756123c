package publisher

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hikinamuri/wb-sellers-backend/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	svc       *Service
	repo      *fakeProductRepo
	scheduler *fakeScheduler
	tg        *fakeChannelClient
	alerter   *fakeAlerter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := newFakeProductRepo()
	scheduler := newFakeScheduler()
	tg := &fakeChannelClient{}
	alerter := &fakeAlerter{}

	svc := New(
		repo,
		scheduler,
		tg,
		nil, // без S3: посты ссылаются на исходные картинки
		alerter,
		nil,
		Config{Channel: "@test_channel"},
		testLogger(),
	)

	return &testEnv{svc: svc, repo: repo, scheduler: scheduler, tg: tg, alerter: alerter}
}

func testMeta() *domain.OrderMeta {
	return &domain.OrderMeta{
		UserID:      "12345",
		URL:         "https://www.wildberries.ru/catalog/149751046/detail.aspx",
		Name:        "Кроссовки",
		Description: "Лёгкие кроссовки",
		Price:       2500,
		ScheduledAt: time.Now().Add(time.Hour),
	}
}

func TestScheduleProduct_CreatesPendingAndRegistersJob(t *testing.T) {
	env := newTestEnv(t)

	productID, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, productID)

	assert.Equal(t, domain.ProductStatusPending, env.repo.statusOf(productID))
	assert.Equal(t, 1, env.scheduler.Pending())
}

func TestScheduleProduct_RepoFailure(t *testing.T) {
	env := newTestEnv(t)
	env.repo.createErr = errors.New("db down")

	_, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.Error(t, err)
	assert.Zero(t, env.scheduler.Pending(), "job не регистрируется без записи в БД")
}

func TestRestorePending_ReschedulesAll(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)
	posted, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)
	require.NoError(t, env.repo.UpdateStatus(context.Background(), posted, domain.ProductStatusPosted))

	// имитация рестарта: расписание потеряно
	env.scheduler.jobs = make(map[string]time.Time)

	require.NoError(t, env.svc.RestorePending(context.Background()))
	assert.Equal(t, 1, env.scheduler.Pending(), "восстанавливаются только pending-товары")
}

func TestPublishProduct_PostsPhotoAndMarksPosted(t *testing.T) {
	env := newTestEnv(t)

	meta := testMeta()
	meta.ImageURL = "https://cdn.example.com/images/big/1.webp"
	productID, err := env.svc.ScheduleProduct(context.Background(), meta)
	require.NoError(t, err)

	require.NoError(t, env.svc.PublishProduct(context.Background(), productID))

	require.Len(t, env.tg.photos, 1)
	assert.Contains(t, env.tg.photos[0], "Кроссовки")
	assert.Contains(t, env.tg.photos[0], "2500")
	assert.Equal(t, domain.ProductStatusPosted, env.repo.statusOf(productID))
}

func TestPublishProduct_NoImageFallsBackToText(t *testing.T) {
	env := newTestEnv(t)

	productID, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)

	require.NoError(t, env.svc.PublishProduct(context.Background(), productID))

	assert.Empty(t, env.tg.photos)
	require.Len(t, env.tg.messages, 1)
	assert.Contains(t, env.tg.messages[0], "Смотреть на Wildberries")
}

func TestPublishProduct_SkipsNonPending(t *testing.T) {
	env := newTestEnv(t)

	productID, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)
	require.NoError(t, env.repo.UpdateStatus(context.Background(), productID, domain.ProductStatusPosted))

	require.NoError(t, env.svc.PublishProduct(context.Background(), productID))
	assert.Empty(t, env.tg.messages)
	assert.Empty(t, env.tg.photos)
}

func TestPublishProduct_ChannelFailureMarksFailedAndAlerts(t *testing.T) {
	env := newTestEnv(t)
	env.tg.sendErr = errors.New("channel unavailable")

	productID, err := env.svc.ScheduleProduct(context.Background(), testMeta())
	require.NoError(t, err)

	require.Error(t, env.svc.PublishProduct(context.Background(), productID))
	assert.Equal(t, domain.ProductStatusFailed, env.repo.statusOf(productID))
	assert.Equal(t, 1, env.alerter.alertCount())
}

func TestPublishProduct_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.PublishProduct(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
