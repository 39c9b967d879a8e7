package repositories

import (
	"database/sql"
	"fmt"

	"github.com/mshakhov/discstore/internal/models"
)

// OperationRepository handles the append-only ledger of receipts and sales.
//
// Ledger rows are the sole source of truth for stock levels: there is no
// stored counter, net stock is always derived by aggregation. Rows are never
// updated or deleted.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new [OperationRepository] with the given database connection
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// Record appends one ledger entry and sets its generated id. An empty date
// defaults to today.
//
// The insert fails with [shared.ErrConstraint] when the quantity is not
// positive, the disc does not exist, or a sale would drive net stock
// negative. The stock guard runs inside the insert statement (a BEFORE INSERT
// trigger), so there is no check-then-insert window.
func (r *OperationRepository) Record(operation *models.Operation) error {
	if operation.Date == "" {
		operation.Date = models.Today()
	}
	if err := operation.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO operations (operation_date, operation_type, compact_id, quantity) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, operation.Date, string(operation.Type), operation.CompactID, operation.Quantity)
	if err != nil {
		return wrapExecError(err, "record operation")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read operation id: %w", err)
	}
	operation.ID = id

	return nil
}

// NetStock derives the current stock of one disc from the full ledger:
// total receipts minus total sales. A disc without operations has zero stock.
func (r *OperationRepository) NetStock(compactID int64) (int, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN operation_type = 'receipt' THEN quantity END), 0)
			- COALESCE(SUM(CASE WHEN operation_type = 'sale' THEN quantity END), 0)
		FROM operations
		WHERE compact_id = ?
	`

	var net int
	if err := r.db.QueryRow(query, compactID).Scan(&net); err != nil {
		return 0, fmt.Errorf("failed to compute net stock: %w", err)
	}

	return net, nil
}

// ListByDisc retrieves the ledger entries of one disc in insertion order.
func (r *OperationRepository) ListByDisc(compactID int64) ([]models.Operation, error) {
	query := `
		SELECT operation_id, operation_date, operation_type, compact_id, quantity
		FROM operations
		WHERE compact_id = ?
		ORDER BY operation_id ASC
	`

	rows, err := r.db.Query(query, compactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var operations []models.Operation
	for rows.Next() {
		var (
			operation models.Operation
			opType    string
		)
		if err := rows.Scan(&operation.ID, &operation.Date, &opType, &operation.CompactID, &operation.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		operation.Type = models.OperationType(opType)
		operations = append(operations, operation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return operations, nil
}
