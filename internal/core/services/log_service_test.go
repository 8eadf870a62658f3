package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
	"github.com/comitanigiacomo/kanso-journal/internal/core/services"
)

func TestHabitLogService_Record(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	hid := "habit-abc"
	today := domain.DateOf(time.Now().UTC()).String()

	setup := func() (*services.HabitLogService, *MockLogRepo, *MockHabitRepo, *recordingQueue) {
		logRepo := new(MockLogRepo)
		habitRepo := new(MockHabitRepo)
		queue := &recordingQueue{}
		return services.NewHabitLogService(logRepo, habitRepo, queue), logRepo, habitRepo, queue
	}

	t.Run("Success: Creates a new log AND enqueues the worker", func(t *testing.T) {
		svc, logRepo, habitRepo, queue := setup()

		habitRepo.On("GetByID", ctx, hid).Return(&domain.Habit{ID: hid, UserID: uid}, nil)
		logRepo.On("GetByHabitAndDate", ctx, hid, domain.Date(today)).Return(nil, domain.ErrLogNotFound)
		logRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.HabitLog) bool {
			return l.HabitID == hid && l.Completed && l.CompletedAt != nil
		})).Return(nil)

		created, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: today, Completed: true})

		require.NoError(t, err)
		assert.Equal(t, domain.Date(today), created.Date)
		assert.Equal(t, []string{hid}, queue.IDs())
		logRepo.AssertExpectations(t)
	})

	t.Run("Upsert: Flips an existing day", func(t *testing.T) {
		svc, logRepo, habitRepo, queue := setup()
		existing := &domain.HabitLog{ID: "log-1", HabitID: hid, UserID: uid, Date: domain.Date(today), Completed: false, Version: 1}

		habitRepo.On("GetByID", ctx, hid).Return(&domain.Habit{ID: hid, UserID: uid}, nil)
		logRepo.On("GetByHabitAndDate", ctx, hid, domain.Date(today)).Return(existing, nil)
		logRepo.On("Update", ctx, existing).Return(nil)

		updated, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: today, Completed: true})

		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.NotNil(t, updated.CompletedAt)
		assert.Equal(t, []string{hid}, queue.IDs())
		logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Idempotent: Same state writes nothing", func(t *testing.T) {
		svc, logRepo, habitRepo, queue := setup()
		existing := &domain.HabitLog{ID: "log-1", HabitID: hid, UserID: uid, Date: domain.Date(today), Completed: true, Version: 1}

		habitRepo.On("GetByID", ctx, hid).Return(&domain.Habit{ID: hid, UserID: uid}, nil)
		logRepo.On("GetByHabitAndDate", ctx, hid, domain.Date(today)).Return(existing, nil)

		_, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: today, Completed: true})

		require.NoError(t, err)
		assert.Empty(t, queue.IDs())
		logRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Security: Should fail if Habit belongs to another user (IDOR)", func(t *testing.T) {
		svc, logRepo, habitRepo, _ := setup()
		habitRepo.On("GetByID", ctx, hid).Return(&domain.Habit{ID: hid, UserID: "victim"}, nil)

		_, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: "attacker", Date: today, Completed: true})

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		logRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Archived habit rejects logs", func(t *testing.T) {
		svc, _, habitRepo, _ := setup()
		archivedAt := time.Now()
		habitRepo.On("GetByID", ctx, hid).Return(&domain.Habit{ID: hid, UserID: uid, ArchivedAt: &archivedAt}, nil)

		_, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: today, Completed: true})

		assert.ErrorIs(t, err, domain.ErrHabitArchived)
	})

	t.Run("Fail: Malformed and future dates", func(t *testing.T) {
		svc, _, habitRepo, _ := setup()

		_, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: "19/10/2026"})
		assert.True(t, domain.IsValidation(err))

		future := domain.DateOf(time.Now().UTC().AddDate(0, 0, 5)).String()
		_, err = svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: future})
		assert.True(t, domain.IsValidation(err))

		habitRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Should fail if Habit does not exist", func(t *testing.T) {
		svc, _, habitRepo, _ := setup()
		habitRepo.On("GetByID", ctx, hid).Return(nil, domain.ErrHabitNotFound)

		_, err := svc.Record(ctx, services.RecordLogInput{HabitID: hid, UserID: uid, Date: today})
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

func TestHabitLogService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"
	logID := "log-xyz"

	t.Run("Success: Should update valid log", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		habitRepo := new(MockHabitRepo)
		queue := &recordingQueue{}
		svc := services.NewHabitLogService(logRepo, habitRepo, queue)

		existing := &domain.HabitLog{ID: logID, HabitID: "habit-1", UserID: uid, Date: "2026-10-18", Version: 1}
		logRepo.On("GetByID", ctx, logID).Return(existing, nil)
		habitRepo.On("GetByID", ctx, "habit-1").Return(&domain.Habit{ID: "habit-1", UserID: uid}, nil)
		logRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.HabitLog) bool {
			return l.Completed && l.CompletedAt != nil
		})).Return(nil)

		updated, err := svc.Update(ctx, services.UpdateLogInput{ID: logID, UserID: uid, Completed: true, Version: 1})

		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, []string{"habit-1"}, queue.IDs())
	})

	t.Run("Fail: Version mismatch", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		svc := services.NewHabitLogService(logRepo, new(MockHabitRepo), nil)

		logRepo.On("GetByID", ctx, logID).Return(&domain.HabitLog{ID: logID, UserID: uid, Version: 3}, nil)

		_, err := svc.Update(ctx, services.UpdateLogInput{ID: logID, UserID: uid, Version: 2})
		assert.ErrorIs(t, err, domain.ErrLogConflict)
	})

	t.Run("Security: Cannot touch another user's log", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		svc := services.NewHabitLogService(logRepo, new(MockHabitRepo), nil)
		logRepo.On("GetByID", ctx, logID).Return(&domain.HabitLog{ID: logID, UserID: "victim"}, nil)

		_, err := svc.Update(ctx, services.UpdateLogInput{ID: logID, UserID: uid})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		assert.ErrorIs(t, svc.Delete(ctx, logID, uid), domain.ErrUnauthorized)
		logRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Success: Delete enqueues the habit", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		queue := &recordingQueue{}
		svc := services.NewHabitLogService(logRepo, new(MockHabitRepo), queue)

		logRepo.On("GetByID", ctx, logID).Return(&domain.HabitLog{ID: logID, HabitID: "habit-9", UserID: uid}, nil)
		logRepo.On("Delete", ctx, logID, uid).Return(nil)

		require.NoError(t, svc.Delete(ctx, logID, uid))
		assert.Equal(t, []string{"habit-9"}, queue.IDs())
	})

	t.Run("Fail: Repository error does not enqueue", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		queue := &recordingQueue{}
		svc := services.NewHabitLogService(logRepo, new(MockHabitRepo), queue)

		logRepo.On("GetByID", ctx, logID).Return(&domain.HabitLog{ID: logID, HabitID: "habit-9", UserID: uid}, nil)
		logRepo.On("Delete", ctx, logID, uid).Return(errors.New("db down"))

		assert.Error(t, svc.Delete(ctx, logID, uid))
		assert.Empty(t, queue.IDs())
	})
}

func TestHabitLogService_ListAndDelta(t *testing.T) {
	ctx := context.Background()
	uid := "user-123"

	t.Run("Lists an owned habit's range", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		habitRepo := new(MockHabitRepo)
		svc := services.NewHabitLogService(logRepo, habitRepo, nil)

		logs := []domain.HabitLog{{HabitID: "h", Date: "2026-10-01"}}
		habitRepo.On("GetByID", ctx, "h").Return(&domain.Habit{ID: "h", UserID: uid}, nil)
		logRepo.On("ListByHabitID", ctx, "h", domain.Date("2026-10-01"), domain.Date("2026-10-31")).Return(logs, nil)

		got, err := svc.ListByHabitID(ctx, "h", uid, "2026-10-01", "2026-10-31")
		require.NoError(t, err)
		assert.Equal(t, logs, got)
	})

	t.Run("Rejects inverted range before any lookup", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		svc := services.NewHabitLogService(new(MockLogRepo), habitRepo, nil)

		_, err := svc.ListByHabitID(ctx, "h", uid, "2026-10-31", "2026-10-01")
		assert.True(t, domain.IsValidation(err))
		habitRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Delta passes through", func(t *testing.T) {
		logRepo := new(MockLogRepo)
		svc := services.NewHabitLogService(logRepo, new(MockHabitRepo), nil)
		since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		logRepo.On("GetChanges", ctx, uid, since).Return([]*domain.HabitLog{{ID: "l1"}}, nil)

		delta, err := svc.GetDelta(ctx, uid, since)
		require.NoError(t, err)
		assert.Len(t, delta, 1)
	})
}
