package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/domain"
)

// SQLiteBlockRepo implements BlockRepo.
type SQLiteBlockRepo struct {
	db db.DBTX
}

func NewSQLiteBlockRepo(conn db.DBTX) *SQLiteBlockRepo {
	return &SQLiteBlockRepo{db: conn}
}

func (r *SQLiteBlockRepo) Add(ctx context.Context, b *domain.Block) error {
	doc, err := marshalDoc("block", b)
	if err != nil {
		return err
	}
	query := `INSERT INTO blocks (id, name, source, number_of_weeks, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		b.ID,
		b.Name,
		string(sourceOrDefault(b.Source)),
		b.WeekCount(),
		doc,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting block: %w", err)
	}
	return nil
}

func (r *SQLiteBlockRepo) Update(ctx context.Context, b *domain.Block) error {
	doc, err := marshalDoc("block", b)
	if err != nil {
		return err
	}
	query := `UPDATE blocks SET name = ?, source = ?, number_of_weeks = ?, doc = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		b.Name,
		string(sourceOrDefault(b.Source)),
		b.WeekCount(),
		doc,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating block: %w", err)
	}
	return requireRow(res, "block")
}

func (r *SQLiteBlockRepo) Get(ctx context.Context, id string) (*domain.Block, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM blocks WHERE id = ?`, id)
	return scanBlock(row)
}

func (r *SQLiteBlockRepo) List(ctx context.Context) ([]*domain.Block, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM blocks ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*domain.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (r *SQLiteBlockRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blocks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting block: %w", err)
	}
	return requireRow(res, "block")
}

func scanBlock(row scanner) (*domain.Block, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("block: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning block: %w", err)
	}
	var b domain.Block
	if err := unmarshalDoc("block", doc, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func sourceOrDefault(s domain.BlockSource) domain.BlockSource {
	if s == "" {
		return domain.SourceUser
	}
	return s
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
