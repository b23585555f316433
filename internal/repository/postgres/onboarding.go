package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/onboarding"
	"crewvar-backend/internal/repository"
)

type onboardingRepository struct {
	db *sql.DB
}

func NewOnboardingRepository(db *sql.DB) repository.OnboardingRepository {
	return &onboardingRepository{db: db}
}

const onboardingColumns = `user_id, is_email_verified, has_profile_photo, has_display_name,
	has_department, has_role, has_ship_assignment, has_completed_onboarding,
	onboarding_progress, last_onboarding_update`

func scanOnboarding(row interface{ Scan(...any) error }) (*domain.OnboardingStatus, error) {
	s := &domain.OnboardingStatus{}
	err := row.Scan(&s.UserID, &s.IsEmailVerified, &s.HasProfilePhoto, &s.HasDisplayName,
		&s.HasDepartment, &s.HasRole, &s.HasShipAssignment, &s.HasCompletedOnboarding,
		&s.OnboardingProgress, &s.LastOnboardingUpdate)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *onboardingRepository) Get(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_status WHERE user_id = $1`
	s, err := scanOnboarding(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

// Apply merges the patch under a row lock so concurrent flag updates cannot
// clobber each other, then rewrites the progress cache from the merged flags.
func (r *onboardingRepository) Apply(ctx context.Context, userID int32, patch domain.OnboardingPatch) (*domain.OnboardingStatus, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lazily create the record on first touch.
	insert := `INSERT INTO onboarding_status (user_id, last_onboarding_update)
	           VALUES ($1, NOW()) ON CONFLICT (user_id) DO NOTHING`
	if _, err := tx.ExecContext(ctx, insert, userID); err != nil {
		return nil, err
	}

	sel := `SELECT ` + onboardingColumns + ` FROM onboarding_status WHERE user_id = $1 FOR UPDATE`
	s, err := scanOnboarding(tx.QueryRowContext(ctx, sel, userID))
	if err != nil {
		return nil, err
	}

	mergeFlag(&s.IsEmailVerified, patch.IsEmailVerified)
	mergeFlag(&s.HasProfilePhoto, patch.HasProfilePhoto)
	mergeFlag(&s.HasDisplayName, patch.HasDisplayName)
	mergeFlag(&s.HasDepartment, patch.HasDepartment)
	mergeFlag(&s.HasRole, patch.HasRole)
	mergeFlag(&s.HasShipAssignment, patch.HasShipAssignment)
	s.OnboardingProgress = onboarding.Progress(s)

	update := `UPDATE onboarding_status SET is_email_verified=$2, has_profile_photo=$3,
	           has_display_name=$4, has_department=$5, has_role=$6, has_ship_assignment=$7,
	           onboarding_progress=$8, last_onboarding_update=NOW()
	           WHERE user_id=$1 RETURNING last_onboarding_update`
	err = tx.QueryRowContext(ctx, update, userID, s.IsEmailVerified, s.HasProfilePhoto,
		s.HasDisplayName, s.HasDepartment, s.HasRole, s.HasShipAssignment,
		s.OnboardingProgress).Scan(&s.LastOnboardingUpdate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit onboarding update: %w", err)
	}
	return s, nil
}

// MarkComplete is the operator fast-track escape hatch: it forces the
// explicit flag and a progress of 100 even when requirement flags are false.
func (r *onboardingRepository) MarkComplete(ctx context.Context, userID int32) (*domain.OnboardingStatus, error) {
	query := `INSERT INTO onboarding_status (user_id, has_completed_onboarding, onboarding_progress, last_onboarding_update)
	          VALUES ($1, TRUE, 100, NOW())
	          ON CONFLICT (user_id) DO UPDATE SET
	            has_completed_onboarding = TRUE,
	            onboarding_progress = 100,
	            last_onboarding_update = NOW()
	          RETURNING ` + onboardingColumns
	return scanOnboarding(r.db.QueryRowContext(ctx, query, userID))
}

func (r *onboardingRepository) ListIncompleteBefore(ctx context.Context, cutoffDays int32) ([]domain.OnboardingStatus, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_status
	          WHERE NOT has_completed_onboarding
	            AND last_onboarding_update < NOW() - make_interval(days => $1)`
	rows, err := r.db.QueryContext(ctx, query, cutoffDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OnboardingStatus
	for rows.Next() {
		s, err := scanOnboarding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func mergeFlag(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
