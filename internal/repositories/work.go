package repositories

import (
	"database/sql"
	"fmt"

	"github.com/mshakhov/discstore/internal/models"
)

// WorkRepository handles [models.MusicalWork] persistence.
//
// Works have no standalone delete: they live and die with their disc.
type WorkRepository struct {
	db *sql.DB
}

// NewWorkRepository creates a new [WorkRepository] with the given database connection
func NewWorkRepository(db *sql.DB) *WorkRepository {
	return &WorkRepository{db: db}
}

// Create inserts a new work and sets its generated id. A nonexistent disc id
// fails the foreign key and is reported as [shared.ErrConstraint].
func (r *WorkRepository) Create(work *models.MusicalWork) error {
	if err := work.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO musical_works (title, author, performer, compact_id) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, work.Title, work.Author, work.Performer, work.CompactID)
	if err != nil {
		return wrapExecError(err, "insert work")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read work id: %w", err)
	}
	work.ID = id

	return nil
}

// ListByDisc retrieves all works pressed on one disc, ordered by id.
func (r *WorkRepository) ListByDisc(compactID int64) ([]models.MusicalWork, error) {
	query := `
		SELECT work_id, title, author, performer, compact_id
		FROM musical_works
		WHERE compact_id = ?
		ORDER BY work_id ASC
	`

	rows, err := r.db.Query(query, compactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query works: %w", err)
	}
	defer rows.Close()

	var works []models.MusicalWork
	for rows.Next() {
		var work models.MusicalWork
		if err := rows.Scan(&work.ID, &work.Title, &work.Author, &work.Performer, &work.CompactID); err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, work)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return works, nil
}
