package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo.
type SQLiteSessionRepo struct {
	db db.DBTX
	// uow is nil for a repo already bound to a transaction.
	uow db.UnitOfWork
}

func NewSQLiteSessionRepo(conn *sql.DB) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn, uow: db.NewSQLiteUnitOfWork(conn)}
}

// NewTxSessionRepo binds a repo to an open transaction.
func NewTxSessionRepo(tx db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: tx}
}

const sessionColumns = `doc`

func (r *SQLiteSessionRepo) SessionsForBlock(ctx context.Context, blockID string) ([]domain.WorkoutSession, error) {
	return r.query(ctx, `SELECT `+sessionColumns+` FROM workout_sessions WHERE block_id = ? ORDER BY week_index, rowid`, blockID)
}

func (r *SQLiteSessionRepo) All(ctx context.Context) ([]domain.WorkoutSession, error) {
	return r.query(ctx, `SELECT `+sessionColumns+` FROM workout_sessions ORDER BY block_id, week_index, rowid`)
}

func (r *SQLiteSessionRepo) query(ctx context.Context, query string, args ...any) ([]domain.WorkoutSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.WorkoutSession
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		var s domain.WorkoutSession
		if err := unmarshalDoc("session", doc, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *SQLiteSessionRepo) Add(ctx context.Context, s *domain.WorkoutSession) error {
	doc, err := marshalDoc("session", s)
	if err != nil {
		return err
	}
	query := `INSERT INTO workout_sessions (id, block_id, week_index, day_template_id, status, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.BlockID,
		s.WeekIndex,
		s.DayTemplateID,
		string(statusOrDefault(s.Status)),
		doc,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session for week %d: %w", s.WeekIndex, err)
	}
	return nil
}

func (r *SQLiteSessionRepo) DeleteSessionsForBlock(ctx context.Context, blockID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM workout_sessions WHERE block_id = ?`, blockID); err != nil {
		return fmt.Errorf("deleting sessions: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ReplaceSessions(ctx context.Context, blockID string, sessions []domain.WorkoutSession) error {
	if r.uow == nil {
		return r.replace(ctx, blockID, sessions)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewTxSessionRepo(tx).replace(ctx, blockID, sessions)
	})
}

func (r *SQLiteSessionRepo) replace(ctx context.Context, blockID string, sessions []domain.WorkoutSession) error {
	if err := r.DeleteSessionsForBlock(ctx, blockID); err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].BlockID != blockID {
			return fmt.Errorf("session %s belongs to block %q, not %q", sessions[i].ID, sessions[i].BlockID, blockID)
		}
		if err := r.Add(ctx, &sessions[i]); err != nil {
			return err
		}
	}
	return nil
}

func statusOrDefault(s domain.SessionStatus) domain.SessionStatus {
	if s == "" {
		return domain.SessionNotStarted
	}
	return s
}
