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

// connectionRepository persists connection requests keyed by the normalized
// pair (pair_lo < pair_hi). A partial unique index on (pair_lo, pair_hi)
// WHERE status IN ('PENDING','ACCEPTED') is the serialization point for
// concurrent duplicate sends.
type connectionRepository struct {
	db *sql.DB
}

func NewConnectionRepository(db *sql.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

const connectionColumns = `id, requester_id, receiver_id, status, COALESCE(message, ''), created_on, responded_on`

func scanConnection(row interface{ Scan(...any) error }) (*domain.ConnectionRequest, error) {
	c := &domain.ConnectionRequest{}
	var createdOn time.Time
	var respondedOn sql.NullTime
	err := row.Scan(&c.ID, &c.RequesterID, &c.ReceiverID, &c.Status, &c.Message, &createdOn, &respondedOn)
	if err != nil {
		return nil, err
	}
	c.CreatedOn = createdOn.Format("2006-01-02")
	if respondedOn.Valid {
		d := respondedOn.Time.Format("2006-01-02")
		c.RespondedOn = &d
	}
	return c, nil
}

func (r *connectionRepository) CreatePending(ctx context.Context, req *domain.ConnectionRequest) error {
	lo, hi := domain.PairKey(req.RequesterID, req.ReceiverID)
	query := `INSERT INTO connection_requests (requester_id, receiver_id, pair_lo, pair_hi, status, message, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, NOW())
	          ON CONFLICT (pair_lo, pair_hi) WHERE status IN ('PENDING', 'ACCEPTED') DO NOTHING
	          RETURNING id`
	req.Status = domain.ConnectionStatusPending
	err := r.db.QueryRowContext(ctx, query, req.RequesterID, req.ReceiverID, lo, hi,
		req.Status, req.Message).Scan(&req.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// The unique index swallowed the insert: an active request already
		// exists for this pair, possibly created a moment ago by a
		// concurrent call.
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *connectionRepository) GetByID(ctx context.Context, id int32) (*domain.ConnectionRequest, error) {
	query := `SELECT ` + connectionColumns + ` FROM connection_requests WHERE id = $1`
	c, err := scanConnection(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *connectionRepository) GetActiveByPair(ctx context.Context, userA, userB int32) (*domain.ConnectionRequest, error) {
	lo, hi := domain.PairKey(userA, userB)
	query := `SELECT ` + connectionColumns + ` FROM connection_requests
	          WHERE pair_lo = $1 AND pair_hi = $2 AND status IN ('PENDING', 'ACCEPTED')`
	c, err := scanConnection(r.db.QueryRowContext(ctx, query, lo, hi))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func (r *connectionRepository) UpdateStatusFromPending(ctx context.Context, id int32, status domain.ConnectionStatus) error {
	query := `UPDATE connection_requests SET status = $2, responded_on = NOW()
	          WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either already responded (retry) or never pending; the guard makes
		// the transition a no-op instead of overwriting a terminal state.
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *connectionRepository) DeletePending(ctx context.Context, id int32) error {
	query := `DELETE FROM connection_requests WHERE id = $1 AND status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrInvalidStateTransition
	}
	return nil
}

func (r *connectionRepository) ListByUser(ctx context.Context, userID int32, status string) ([]domain.ConnectionRequest, error) {
	query := `SELECT ` + connectionColumns + ` FROM connection_requests
	          WHERE (requester_id = $1 OR receiver_id = $1) AND ($2 = '' OR status = $2)
	          ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []domain.ConnectionRequest
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *c)
	}
	return reqs, rows.Err()
}

func (r *connectionRepository) ListStatesForViewer(ctx context.Context, viewerID int32, userIDs []int32) (map[int32]domain.ConnectionState, error) {
	states := make(map[int32]domain.ConnectionState, len(userIDs))
	for _, id := range userIDs {
		states[id] = domain.ConnectionStateNone
	}

	// Declined rows are deliberately excluded; to a viewer they are
	// indistinguishable from no request at all.
	query := `SELECT requester_id, receiver_id, status FROM connection_requests
	          WHERE ((requester_id = $1 AND receiver_id = ANY($2))
	             OR (receiver_id = $1 AND requester_id = ANY($2)))
	            AND status IN ('PENDING', 'ACCEPTED')`
	rows, err := r.db.QueryContext(ctx, query, viewerID, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var requesterID, receiverID int32
		var status domain.ConnectionStatus
		if err := rows.Scan(&requesterID, &receiverID, &status); err != nil {
			return nil, err
		}
		other := requesterID
		if other == viewerID {
			other = receiverID
		}
		states[other] = domain.ConnectionState(status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Block rows override whatever the request table says.
	blockQuery := `SELECT blocker_id, blocked_id FROM connection_blocks
	               WHERE (blocker_id = $1 AND blocked_id = ANY($2))
	                  OR (blocked_id = $1 AND blocker_id = ANY($2))`
	blockRows, err := r.db.QueryContext(ctx, blockQuery, viewerID, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer blockRows.Close()
	for blockRows.Next() {
		var blockerID, blockedID int32
		if err := blockRows.Scan(&blockerID, &blockedID); err != nil {
			return nil, err
		}
		other := blockerID
		if other == viewerID {
			other = blockedID
		}
		states[other] = domain.ConnectionStateBlocked
	}
	return states, blockRows.Err()
}

func (r *connectionRepository) PurgeDeclinedBefore(ctx context.Context, days int32) (int64, error) {
	query := `DELETE FROM connection_requests
	          WHERE status = 'DECLINED' AND responded_on < NOW() - make_interval(days => $1)`
	res, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *connectionRepository) CreateBlock(ctx context.Context, blockerID, blockedID int32) error {
	query := `INSERT INTO connection_blocks (blocker_id, blocked_id, created_on)
	          VALUES ($1, $2, NOW()) ON CONFLICT (blocker_id, blocked_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	return err
}

func (r *connectionRepository) DeleteBlock(ctx context.Context, blockerID, blockedID int32) error {
	query := `DELETE FROM connection_blocks WHERE blocker_id = $1 AND blocked_id = $2`
	res, err := r.db.ExecContext(ctx, query, blockerID, blockedID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *connectionRepository) IsBlockedEitherWay(ctx context.Context, userA, userB int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM connection_blocks
	            WHERE (blocker_id = $1 AND blocked_id = $2)
	               OR (blocker_id = $2 AND blocked_id = $1))`
	var blocked bool
	err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(&blocked)
	return blocked, err
}

func (r *connectionRepository) ListBlockedIDs(ctx context.Context, userID int32) ([]int32, error) {
	query := `SELECT CASE WHEN blocker_id = $1 THEN blocked_id ELSE blocker_id END
	          FROM connection_blocks WHERE blocker_id = $1 OR blocked_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
