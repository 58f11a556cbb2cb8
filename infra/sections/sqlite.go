// Package sections provides persistent saved-section stores.
package sections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/sectionplanner/core/model"
	coresections "github.com/kilianp07/sectionplanner/core/sections"
)

// SQLiteStore persists saved sections in a SQLite database. Display order is
// kept in the position column; new sections take a position below the
// current minimum so they list first.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	schema := `CREATE TABLE IF NOT EXISTS saved_sections (
        id TEXT PRIMARY KEY,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        lecture_units REAL NOT NULL,
        lecture_days TEXT NOT NULL,
        lab_units REAL NOT NULL,
        lab_days TEXT NOT NULL,
        start_time TEXT NOT NULL,
        lab_start_time TEXT NOT NULL,
        term_id TEXT NOT NULL,
        session_id TEXT NOT NULL,
        updated_at INTEGER NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

const selectColumns = `SELECT id, name, lecture_units, lecture_days, lab_units, lab_days,
        start_time, lab_start_time, term_id, session_id, updated_at FROM saved_sections`

type scanner interface {
	Scan(dest ...any) error
}

func scanSection(sc scanner) (model.SavedSection, error) {
	var (
		s                 model.SavedSection
		lectureDays, labs string
		updated           int64
	)
	if err := sc.Scan(&s.ID, &s.Name, &s.LectureUnits, &lectureDays, &s.LabUnits, &labs,
		&s.StartTime, &s.LabStartTime, &s.SelectedTermID, &s.SelectedSessionID, &updated); err != nil {
		return model.SavedSection{}, err
	}
	var err error
	if s.LectureDays, err = model.ParseWeekdays(lectureDays); err != nil {
		return model.SavedSection{}, fmt.Errorf("section %s: %w", s.ID, err)
	}
	if s.LabDays, err = model.ParseWeekdays(labs); err != nil {
		return model.SavedSection{}, fmt.Errorf("section %s: %w", s.ID, err)
	}
	s.Timestamp = time.UnixMilli(updated).UTC()
	return s, nil
}

// List returns all sections in display order.
func (s *SQLiteStore) List(ctx context.Context) ([]model.SavedSection, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	res := []model.SavedSection{}
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns one section.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.SavedSection, error) {
	sec, err := scanSection(s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.SavedSection{}, fmt.Errorf("%w: %s", coresections.ErrSectionNotFound, id)
	}
	return sec, err
}

// Put updates a section in place or inserts it first.
func (s *SQLiteStore) Put(ctx context.Context, sec model.SavedSection) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO saved_sections (id, position, name, lecture_units,
            lecture_days, lab_units, lab_days, start_time, lab_start_time, term_id, session_id, updated_at)
        VALUES (?, (SELECT COALESCE(MIN(position), 0) - 1 FROM saved_sections), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            lecture_units = excluded.lecture_units,
            lecture_days = excluded.lecture_days,
            lab_units = excluded.lab_units,
            lab_days = excluded.lab_days,
            start_time = excluded.start_time,
            lab_start_time = excluded.lab_start_time,
            term_id = excluded.term_id,
            session_id = excluded.session_id,
            updated_at = excluded.updated_at`,
		sec.ID, sec.Name, sec.LectureUnits, model.JoinDays(sec.LectureDays, ","), sec.LabUnits,
		model.JoinDays(sec.LabDays, ","), sec.StartTime, sec.LabStartTime, sec.SelectedTermID,
		sec.SelectedSessionID, sec.Timestamp.UnixMilli())
	return err
}

// Delete removes one section.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_sections WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", coresections.ErrSectionNotFound, id)
	}
	return nil
}

// Reorder rewrites every position inside one transaction.
func (s *SQLiteStore) Reorder(ctx context.Context, ids []string) error {
	current, err := s.List(ctx)
	if err != nil {
		return err
	}
	if _, err := coresections.Permute(current, ids); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `UPDATE saved_sections SET position = ? WHERE id = ?`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Clear removes every section.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved_sections`)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
