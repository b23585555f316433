package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"
)

type shipRepository struct {
	db *sql.DB
}

func NewShipRepository(db *sql.DB) repository.ShipRepository {
	return &shipRepository{db: db}
}

const shipColumns = `id, name, cruise_line, COALESCE(current_port, ''), updated_on`

func scanShip(row interface{ Scan(...any) error }) (*domain.Ship, error) {
	s := &domain.Ship{}
	var updatedOn time.Time
	if err := row.Scan(&s.ID, &s.Name, &s.CruiseLine, &s.CurrentPort, &updatedOn); err != nil {
		return nil, err
	}
	s.UpdatedOn = updatedOn.Format("2006-01-02")
	return s, nil
}

func (r *shipRepository) Create(ctx context.Context, s *domain.Ship) error {
	query := `INSERT INTO ships (name, cruise_line, current_port, updated_on)
	          VALUES ($1, $2, $3, NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.Name, s.CruiseLine, s.CurrentPort).Scan(&s.ID)
}

func (r *shipRepository) GetByID(ctx context.Context, id int32) (*domain.Ship, error) {
	query := `SELECT ` + shipColumns + ` FROM ships WHERE id = $1`
	s, err := scanShip(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *shipRepository) List(ctx context.Context) ([]domain.Ship, error) {
	query := `SELECT ` + shipColumns + ` FROM ships ORDER BY name`
	return r.collect(ctx, query)
}

func (r *shipRepository) ListByPort(ctx context.Context, port string) ([]domain.Ship, error) {
	query := `SELECT ` + shipColumns + ` FROM ships WHERE current_port = $1 ORDER BY name`
	return r.collect(ctx, query, port)
}

func (r *shipRepository) Update(ctx context.Context, s *domain.Ship) error {
	query := `UPDATE ships SET name=$1, cruise_line=$2, current_port=$3, updated_on=NOW() WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.CruiseLine, s.CurrentPort, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *shipRepository) collect(ctx context.Context, query string, args ...any) ([]domain.Ship, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ships []domain.Ship
	for rows.Next() {
		s, err := scanShip(rows)
		if err != nil {
			return nil, err
		}
		ships = append(ships, *s)
	}
	return ships, rows.Err()
}
