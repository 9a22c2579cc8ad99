package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ironplan/internal/db"
	"github.com/alexanderramin/ironplan/internal/domain"
)

// SQLiteExerciseLibrary implements ExerciseLibrary.
type SQLiteExerciseLibrary struct {
	db db.DBTX
}

func NewSQLiteExerciseLibrary(conn db.DBTX) *SQLiteExerciseLibrary {
	return &SQLiteExerciseLibrary{db: conn}
}

func (r *SQLiteExerciseLibrary) All(ctx context.Context) ([]domain.ExerciseDefinition, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM exercise_definitions ORDER BY name_key, id`)
	if err != nil {
		return nil, fmt.Errorf("listing exercise definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.ExerciseDefinition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

func (r *SQLiteExerciseLibrary) Add(ctx context.Context, def *domain.ExerciseDefinition) error {
	doc, err := marshalDoc("exercise definition", def)
	if err != nil {
		return err
	}
	typ := def.Type
	if typ == "" {
		typ = domain.ExerciseStrength
	}
	query := `INSERT INTO exercise_definitions (id, name, name_key, type, doc, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, def.ID, def.Name, db.NameKey(def.Name), string(typ), doc, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("inserting exercise definition: %w", err)
	}
	return nil
}

// FindByName matches the normalized name, case and spacing insensitive.
func (r *SQLiteExerciseLibrary) FindByName(ctx context.Context, name string) (*domain.ExerciseDefinition, error) {
	row := r.db.QueryRowContext(ctx, `SELECT doc FROM exercise_definitions WHERE name_key = ? ORDER BY id LIMIT 1`, db.NameKey(name))
	return scanDefinition(row)
}

func scanDefinition(row scanner) (*domain.ExerciseDefinition, error) {
	var doc string
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("exercise definition: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning exercise definition: %w", err)
	}
	var def domain.ExerciseDefinition
	if err := unmarshalDoc("exercise definition", doc, &def); err != nil {
		return nil, err
	}
	return &def, nil
}
