package postgres

import (
	"context"
	"database/sql"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"
)

type deviceTokenRepository struct {
	db *sql.DB
}

func NewDeviceTokenRepository(db *sql.DB) repository.DeviceTokenRepository {
	return &deviceTokenRepository{db: db}
}

func (r *deviceTokenRepository) Upsert(ctx context.Context, t *domain.DeviceToken) error {
	query := `INSERT INTO device_tokens (user_id, token, platform, created_on)
	          VALUES ($1, $2, $3, NOW())
	          ON CONFLICT (token) DO UPDATE SET user_id = $1, platform = $3
	          RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.UserID, t.Token, t.Platform).Scan(&t.ID)
}

func (r *deviceTokenRepository) ListByUser(ctx context.Context, userID int32) ([]domain.DeviceToken, error) {
	query := `SELECT id, user_id, token, platform, created_on FROM device_tokens WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.DeviceToken
	for rows.Next() {
		var t domain.DeviceToken
		var createdOn time.Time
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &createdOn); err != nil {
			return nil, err
		}
		t.CreatedOn = createdOn.Format("2006-01-02")
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *deviceTokenRepository) Delete(ctx context.Context, userID int32, token string) error {
	query := `DELETE FROM device_tokens WHERE user_id = $1 AND token = $2`
	_, err := r.db.ExecContext(ctx, query, userID, token)
	return err
}
