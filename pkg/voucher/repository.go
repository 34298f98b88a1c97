package voucher

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrVoucherNotFound = errors.New("voucher not found")

type Repository interface {
	Get(ctx context.Context, sessionId string, key string) (Voucher, error)
	// CreateIfAbsent stores v unless a voucher with the same key exists, and returns the stored voucher.
	CreateIfAbsent(ctx context.Context, sessionId string, v Voucher) (Voucher, error)
	// Store inserts or replaces the voucher.
	Store(ctx context.Context, sessionId string, v Voucher) (Voucher, error)
	List(ctx context.Context, sessionId string) ([]Voucher, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `voucher_key, confirmation_number, url, note, image_ref, mode, updated_at`

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	var mode string
	err := row.Scan(&v.Key, &v.ConfirmationNumber, &v.URL, &v.Note, &v.ImageRef, &mode, &v.UpdatedAt)
	v.Mode = Mode(mode)
	return v, err
}

func (r *RepositoryImpl) Get(ctx context.Context, sessionId string, key string) (Voucher, error) {
	query := `SELECT ` + selectColumns + ` FROM voucher WHERE session_id = $1 AND voucher_key = $2`
	v, err := scanVoucher(r.db.QueryRow(ctx, query, sessionId, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, ErrVoucherNotFound
		}
		err := fmt.Errorf("could not query voucher: %w", err)
		log.Error(err)
		return Voucher{}, err
	}
	return v, nil
}

func (r *RepositoryImpl) CreateIfAbsent(ctx context.Context, sessionId string, v Voucher) (Voucher, error) {
	query := `INSERT INTO voucher (session_id, voucher_key, confirmation_number, url, note, image_ref, mode, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (session_id, voucher_key) DO NOTHING`
	_, err := r.db.Exec(ctx, query, sessionId, v.Key, v.ConfirmationNumber, v.URL, v.Note, v.ImageRef, string(v.Mode), v.UpdatedAt)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Voucher{}, err
	}
	return r.Get(ctx, sessionId, v.Key)
}

func (r *RepositoryImpl) Store(ctx context.Context, sessionId string, v Voucher) (Voucher, error) {
	query := `INSERT INTO voucher (session_id, voucher_key, confirmation_number, url, note, image_ref, mode, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (session_id, voucher_key) DO UPDATE SET
					confirmation_number = EXCLUDED.confirmation_number,
					url = EXCLUDED.url,
					note = EXCLUDED.note,
					image_ref = EXCLUDED.image_ref,
					mode = EXCLUDED.mode,
					updated_at = EXCLUDED.updated_at
				RETURNING ` + selectColumns
	stored, err := scanVoucher(r.db.QueryRow(ctx, query, sessionId, v.Key, v.ConfirmationNumber, v.URL, v.Note, v.ImageRef, string(v.Mode), v.UpdatedAt))
	if err != nil {
		err := fmt.Errorf("could not store voucher: %w", err)
		log.Error(err)
		return Voucher{}, err
	}
	return stored, nil
}

func (r *RepositoryImpl) List(ctx context.Context, sessionId string) ([]Voucher, error) {
	query := `SELECT ` + selectColumns + ` FROM voucher WHERE session_id = $1 ORDER BY voucher_key`
	rows, err := r.db.Query(ctx, query, sessionId)
	if err != nil {
		err := fmt.Errorf("could not query vouchers: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	vouchers := make([]Voucher, 0)
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return vouchers, nil
}
