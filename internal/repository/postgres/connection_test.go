package postgres

import (
	"context"
	"testing"
	"time"

	"crewvar-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestConnectionRepository_CreatePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewConnectionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		req := &domain.ConnectionRequest{RequesterID: 5, ReceiverID: 2, Message: "hi"}

		// Pair key is normalized, lo < hi regardless of direction.
		mock.ExpectQuery("INSERT INTO connection_requests").
			WithArgs(int32(5), int32(2), int32(2), int32(5), domain.ConnectionStatusPending, "hi").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

		err := repo.CreatePending(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), req.ID)
		assert.Equal(t, domain.ConnectionStatusPending, req.Status)
	})

	t.Run("ActivePairExists", func(t *testing.T) {
		req := &domain.ConnectionRequest{RequesterID: 1, ReceiverID: 2}

		// ON CONFLICT DO NOTHING yields no RETURNING row when the partial
		// unique index already holds an active request for the pair.
		mock.ExpectQuery("INSERT INTO connection_requests").
			WithArgs(int32(1), int32(2), int32(1), int32(2), domain.ConnectionStatusPending, "").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := repo.CreatePending(ctx, req)
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_UpdateStatusFromPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewConnectionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE connection_requests SET status").
			WithArgs(int32(10), domain.ConnectionStatusAccepted).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusFromPending(ctx, 10, domain.ConnectionStatusAccepted)
		assert.NoError(t, err)
	})

	t.Run("NoLongerPending", func(t *testing.T) {
		mock.ExpectExec("UPDATE connection_requests SET status").
			WithArgs(int32(10), domain.ConnectionStatusDeclined).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatusFromPending(ctx, 10, domain.ConnectionStatusDeclined)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_GetActiveByPair(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewConnectionRepository(db)
	ctx := context.Background()

	cols := []string{"id", "requester_id", "receiver_id", "status", "message", "created_on", "responded_on"}

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM connection_requests").
			WithArgs(int32(1), int32(2)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(10, 1, 2, "PENDING", "hi", time.Now(), nil))

		req, err := repo.GetActiveByPair(ctx, 2, 1)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), req.ID)
		assert.Equal(t, domain.ConnectionStatusPending, req.Status)
	})

	t.Run("DeclinedReadsAsNotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM connection_requests").
			WithArgs(int32(1), int32(2)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetActiveByPair(ctx, 1, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_DeletePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewConnectionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM connection_requests").
			WithArgs(int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeletePending(ctx, 10))
	})

	t.Run("AlreadyAnswered", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM connection_requests").
			WithArgs(int32(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeletePending(ctx, 10), domain.ErrInvalidStateTransition)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectionRepository_IsBlockedEitherWay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewConnectionRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(1), int32(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	blocked, err := repo.IsBlockedEitherWay(ctx, 1, 2)
	assert.NoError(t, err)
	assert.True(t, blocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}
