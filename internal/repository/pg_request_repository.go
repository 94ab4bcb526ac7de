package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rechargbatt/backend/internal/model"
)

// listLimit caps admin list queries; the dashboard renders at most this
// many rows.
const listLimit = 200

// PgRequestRepository is the PostgreSQL implementation of
// RequestRepository.
type PgRequestRepository struct {
	pool *pgxpool.Pool
}

// NewPgRequestRepository creates a PgRequestRepository backed by the
// given pool.
func NewPgRequestRepository(pool *pgxpool.Pool) *PgRequestRepository {
	return &PgRequestRepository{pool: pool}
}

// Ensure PgRequestRepository implements RequestRepository at compile time.
var _ RequestRepository = (*PgRequestRepository)(nil)

// Insert writes a new requests row and populates req.ID, req.CreatedAt
// and req.Status from the database RETURNING clause.
func (r *PgRequestRepository) Insert(ctx context.Context, req *model.Request) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO requests (request_type, full_name, phone, quartier, message, info, price, note)
		 VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, NULLIF($8, ''))
		 RETURNING id, created_at, status`,
		req.RequestType, req.FullName, req.Phone, req.Quartier, req.Message,
		req.Info, req.Price, req.Note,
	).Scan(&req.ID, &req.CreatedAt, &req.Status)
}

// searchColumns are the text columns matched by the dashboard search box.
var searchColumns = []string{
	"phone",
	"COALESCE(full_name, '')",
	"COALESCE(quartier, '')",
	"COALESCE(message, '')",
	"COALESCE(note, '')",
	"request_type",
}

// List returns requests filtered by type/status equality and an optional
// case-insensitive substring search ORed across the text columns, newest
// first.
func (r *PgRequestRepository) List(ctx context.Context, opts model.RequestListOptions) ([]*model.Request, error) {
	var conditions []string
	var args []any

	if t := strings.TrimSpace(opts.Type); t != "" && t != "all" {
		args = append(args, t)
		conditions = append(conditions, "request_type = $"+strconv.Itoa(len(args)))
	}
	if s := strings.TrimSpace(opts.Status); s != "" && s != "all" {
		args = append(args, s)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if q := strings.TrimSpace(opts.Search); q != "" {
		args = append(args, "%"+q+"%")
		arg := "$" + strconv.Itoa(len(args))
		ors := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			ors[i] = col + " ILIKE " + arg
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, created_at, request_type, COALESCE(full_name, ''), phone,
	                 COALESCE(quartier, ''), COALESCE(message, ''), info, price, status,
	                 COALESCE(note, '')
	          FROM requests ` + where + `
	          ORDER BY created_at DESC
	          LIMIT ` + strconv.Itoa(listLimit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.Request
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.CreatedAt, &req.RequestType, &req.FullName,
			&req.Phone, &req.Quartier, &req.Message, &req.Info, &req.Price,
			&req.Status, &req.Note); err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

// UpdateStatus changes the status of one request.
func (r *PgRequestRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE requests SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
