package repositories

import (
	"database/sql"
	"fmt"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

// DiscRepository handles [models.CompactDisc] persistence.
type DiscRepository struct {
	db *sql.DB
}

// NewDiscRepository creates a new [DiscRepository] with the given database connection
func NewDiscRepository(db *sql.DB) *DiscRepository {
	return &DiscRepository{db: db}
}

// Create inserts a new disc and sets its generated id.
func (r *DiscRepository) Create(disc *models.CompactDisc) error {
	if err := disc.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO compact_discs (production_date, company, price) VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, disc.ProductionDate, disc.Company, disc.Price)
	if err != nil {
		return wrapExecError(err, "insert disc")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read disc id: %w", err)
	}
	disc.ID = id

	return nil
}

// Get retrieves a disc by id.
func (r *DiscRepository) Get(id int64) (*models.CompactDisc, error) {
	query := `
		SELECT compact_id, production_date, company, price
		FROM compact_discs
		WHERE compact_id = ?
	`

	var disc models.CompactDisc
	err := r.db.QueryRow(query, id).Scan(&disc.ID, &disc.ProductionDate, &disc.Company, &disc.Price)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: disc %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query disc: %w", err)
	}

	return &disc, nil
}

// List retrieves the whole catalog ordered by id.
func (r *DiscRepository) List() ([]models.CompactDisc, error) {
	query := `
		SELECT compact_id, production_date, company, price
		FROM compact_discs
		ORDER BY compact_id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query discs: %w", err)
	}
	defer rows.Close()

	var discs []models.CompactDisc
	for rows.Next() {
		var disc models.CompactDisc
		if err := rows.Scan(&disc.ID, &disc.ProductionDate, &disc.Company, &disc.Price); err != nil {
			return nil, fmt.Errorf("failed to scan disc: %w", err)
		}
		discs = append(discs, disc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return discs, nil
}

// Update replaces the company and price of one disc. A missing id is reported
// as [shared.ErrNotFound] rather than silently ignored.
func (r *DiscRepository) Update(id int64, company string, price float64) error {
	if company == "" {
		return fmt.Errorf("%w: company is required", shared.ErrInvalidInput)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", shared.ErrConstraint)
	}

	result, err := r.db.Exec("UPDATE compact_discs SET company = ?, price = ? WHERE compact_id = ?", company, price, id)
	if err != nil {
		return wrapExecError(err, "update disc")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: disc %d", shared.ErrNotFound, id)
	}

	return nil
}

// Delete removes one disc. Its musical works cascade away with it; the delete
// is rejected with [shared.ErrConstraint] while any ledger operation still
// references the disc.
func (r *DiscRepository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM compact_discs WHERE compact_id = ?", id)
	if err != nil {
		return wrapExecError(err, "delete disc")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: disc %d", shared.ErrNotFound, id)
	}

	return nil
}
