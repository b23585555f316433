package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"crewvar-backend/internal/domain"
	"crewvar-backend/internal/repository"

	"github.com/lib/pq"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, COALESCE(display_name, ''), COALESCE(avatar_url, ''),
	COALESCE(department, ''), COALESCE(role, ''), COALESCE(subcategory, ''), ship_id,
	COALESCE(bio, ''), COALESCE(phone, ''), COALESCE(contact_email, ''),
	COALESCE(instagram, ''), COALESCE(snapchat, ''), COALESCE(website, ''),
	is_admin, created_on, updated_on`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn, updatedOn time.Time
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.AvatarURL,
		&u.Department, &u.Role, &u.Subcategory, &u.ShipID,
		&u.Bio, &u.Phone, &u.ContactEmail,
		&u.Instagram, &u.Snapchat, &u.Website,
		&u.IsAdmin, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, display_name, created_on, updated_on)
	          VALUES ($1, $2, $3, NOW(), NOW()) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.DisplayName).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return u, err
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, display_name=$2, avatar_url=$3, department=$4, role=$5,
	          subcategory=$6, ship_id=$7, bio=$8, phone=$9, contact_email=$10, instagram=$11,
	          snapchat=$12, website=$13, updated_on=NOW() WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query, u.Email, u.DisplayName, u.AvatarURL, u.Department,
		u.Role, u.Subcategory, u.ShipID, u.Bio, u.Phone, u.ContactEmail, u.Instagram,
		u.Snapchat, u.Website, u.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByShip(ctx context.Context, shipID int32) ([]domain.User, error) {
	return r.ListByShips(ctx, []int32{shipID})
}

func (r *userRepository) ListByShips(ctx context.Context, shipIDs []int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ship_id = ANY($1) ORDER BY display_name`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(shipIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *userRepository) Search(ctx context.Context, q string, limit int32) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
	          WHERE display_name ILIKE $1 OR email ILIKE $1 ORDER BY display_name LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, "%"+q+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) GetPhotos(ctx context.Context, userID int32) ([]string, error) {
	query := `SELECT url FROM user_photos WHERE user_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

func (r *userRepository) AddPhoto(ctx context.Context, userID int32, url string) error {
	query := `INSERT INTO user_photos (user_id, url, created_on) VALUES ($1, $2, NOW())
	          ON CONFLICT (user_id, url) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, userID, url)
	return err
}

func (r *userRepository) DeletePhoto(ctx context.Context, userID int32, url string) error {
	query := `DELETE FROM user_photos WHERE user_id = $1 AND url = $2`
	_, err := r.db.ExecContext(ctx, query, userID, url)
	return err
}
