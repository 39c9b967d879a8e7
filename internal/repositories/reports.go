package repositories

import (
	"database/sql"
	"fmt"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

// ReportRepository derives reports from the ledger and the catalog.
//
// Every method except PeriodStatistics is read-only. Reports that can
// legitimately match nothing return [shared.ErrNoData] so callers can tell an
// empty result from a query failure.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new [ReportRepository] with the given database connection
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// InventorySnapshot computes the stock position of every disc, ordered by
// remaining copies descending. Discs without any ledger history appear with
// zero counts.
func (r *ReportRepository) InventorySnapshot() ([]models.InventoryRow, error) {
	query := `
		SELECT
			cd.compact_id,
			cd.company,
			cd.production_date,
			cd.price,
			COALESCE(received.total, 0) AS total_received,
			COALESCE(sold.total, 0) AS total_sold,
			COALESCE(received.total, 0) - COALESCE(sold.total, 0) AS remaining,
			(COALESCE(received.total, 0) - COALESCE(sold.total, 0)) * cd.price AS stock_value
		FROM compact_discs cd
		LEFT JOIN (
			SELECT compact_id, SUM(quantity) AS total
			FROM operations
			WHERE operation_type = 'receipt'
			GROUP BY compact_id
		) received ON cd.compact_id = received.compact_id
		LEFT JOIN (
			SELECT compact_id, SUM(quantity) AS total
			FROM operations
			WHERE operation_type = 'sale'
			GROUP BY compact_id
		) sold ON cd.compact_id = sold.compact_id
		ORDER BY remaining DESC, cd.compact_id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var inventory []models.InventoryRow
	for rows.Next() {
		var row models.InventoryRow
		err := rows.Scan(&row.CompactID, &row.Company, &row.ProductionDate, &row.Price,
			&row.Received, &row.Sold, &row.Remaining, &row.StockValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		inventory = append(inventory, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return inventory, nil
}

// SalesInPeriod totals the quantity and value sold for one disc within an
// inclusive date range. Zero matching sales yield [shared.ErrNoData].
func (r *ReportRepository) SalesInPeriod(compactID int64, startDate, endDate string) (*models.PeriodSales, error) {
	startDate, endDate, err := validateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			cd.compact_id,
			cd.company,
			cd.production_date,
			cd.price,
			SUM(op.quantity) AS quantity_sold,
			SUM(op.quantity * cd.price) AS total_value
		FROM operations op
		JOIN compact_discs cd ON op.compact_id = cd.compact_id
		WHERE op.operation_type = 'sale'
			AND op.compact_id = ?
			AND op.operation_date BETWEEN ? AND ?
		GROUP BY cd.compact_id
	`

	var sales models.PeriodSales
	err = r.db.QueryRow(query, compactID, startDate, endDate).Scan(&sales.CompactID, &sales.Company,
		&sales.ProductionDate, &sales.Price, &sales.QuantitySold, &sales.TotalValue)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no sales for disc %d between %s and %s", shared.ErrNoData, compactID, startDate, endDate)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query period sales: %w", err)
	}

	return &sales, nil
}

// MostPopularDisc finds the disc with the highest all-time sold quantity and
// lists the works pressed on it. Equal totals resolve to the lowest disc id.
// [shared.ErrNoData] is returned when no sales exist at all.
func (r *ReportRepository) MostPopularDisc() (*models.DiscPopularity, error) {
	query := `
		SELECT compact_id, SUM(quantity) AS total_sold
		FROM operations
		WHERE operation_type = 'sale'
		GROUP BY compact_id
		ORDER BY total_sold DESC, compact_id ASC
		LIMIT 1
	`

	var popularity models.DiscPopularity
	err := r.db.QueryRow(query).Scan(&popularity.CompactID, &popularity.TotalSold)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no disc sales recorded", shared.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query most popular disc: %w", err)
	}

	worksQuery := `
		SELECT work_id, title, author, performer, compact_id
		FROM musical_works
		WHERE compact_id = ?
		ORDER BY work_id ASC
	`

	rows, err := r.db.Query(worksQuery, popularity.CompactID)
	if err != nil {
		return nil, fmt.Errorf("failed to query works: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var work models.MusicalWork
		if err := rows.Scan(&work.ID, &work.Title, &work.Author, &work.Performer, &work.CompactID); err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		popularity.Works = append(popularity.Works, work)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &popularity, nil
}

// MostPopularPerformer finds the performer with the highest total sold
// quantity across all discs carrying their works, and returns one detail row
// per work of that performer. Equal totals resolve to the lexicographically
// first performer. [shared.ErrNoData] is returned when no sales exist.
func (r *ReportRepository) MostPopularPerformer() ([]models.PerformerSales, error) {
	query := `
		WITH performer_sales AS (
			SELECT mw.performer, SUM(op.quantity) AS total_sold
			FROM operations op
			JOIN musical_works mw ON op.compact_id = mw.compact_id
			WHERE op.operation_type = 'sale'
			GROUP BY mw.performer
			ORDER BY total_sold DESC, mw.performer ASC
			LIMIT 1
		)
		SELECT ps.performer, ps.total_sold, mw.title, mw.author, cd.company
		FROM performer_sales ps
		JOIN musical_works mw ON ps.performer = mw.performer
		JOIN compact_discs cd ON mw.compact_id = cd.compact_id
		ORDER BY mw.work_id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query most popular performer: %w", err)
	}
	defer rows.Close()

	var sales []models.PerformerSales
	for rows.Next() {
		var row models.PerformerSales
		if err := rows.Scan(&row.Performer, &row.TotalSold, &row.Title, &row.Author, &row.Company); err != nil {
			return nil, fmt.Errorf("failed to scan performer row: %w", err)
		}
		sales = append(sales, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(sales) == 0 {
		return nil, fmt.Errorf("%w: no performer sales recorded", shared.ErrNoData)
	}

	return sales, nil
}

// SalesByAuthor aggregates sold quantity, distinct work count and revenue per
// author, ordered by sold quantity descending. [shared.ErrNoData] is returned
// when no sales exist.
func (r *ReportRepository) SalesByAuthor() ([]models.AuthorSales, error) {
	query := `
		SELECT
			mw.author,
			SUM(op.quantity) AS total_sold,
			COUNT(DISTINCT mw.work_id) AS works_count,
			SUM(op.quantity * cd.price) AS total_revenue
		FROM operations op
		JOIN musical_works mw ON op.compact_id = mw.compact_id
		JOIN compact_discs cd ON op.compact_id = cd.compact_id
		WHERE op.operation_type = 'sale'
		GROUP BY mw.author
		ORDER BY total_sold DESC, mw.author ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query author sales: %w", err)
	}
	defer rows.Close()

	var sales []models.AuthorSales
	for rows.Next() {
		var row models.AuthorSales
		if err := rows.Scan(&row.Author, &row.TotalSold, &row.WorksCount, &row.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		sales = append(sales, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if len(sales) == 0 {
		return nil, fmt.Errorf("%w: no author sales recorded", shared.ErrNoData)
	}

	return sales, nil
}

// PeriodStatistics recomputes received and sold quantities per disc for an
// inclusive date range, replaces the report cache rows for that exact range,
// and returns the fresh rows joined with the disc company, ordered by disc
// id. The rebuild runs in one transaction, so repeating the call with the
// same range is idempotent and the cache holds exactly one row per disc.
func (r *ReportRepository) PeriodStatistics(startDate, endDate string) ([]models.PeriodReportRow, error) {
	startDate, endDate, err := validateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM report_results WHERE start_date = ? AND end_date = ?", startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to clear report cache: %w", err)
	}

	insertQuery := `
		INSERT INTO report_results (start_date, end_date, compact_id, received_quantity, sold_quantity)
		SELECT
			?, ?, cd.compact_id,
			COALESCE((SELECT SUM(quantity) FROM operations
				WHERE compact_id = cd.compact_id
				AND operation_type = 'receipt'
				AND operation_date BETWEEN ? AND ?), 0),
			COALESCE((SELECT SUM(quantity) FROM operations
				WHERE compact_id = cd.compact_id
				AND operation_type = 'sale'
				AND operation_date BETWEEN ? AND ?), 0)
		FROM compact_discs cd
	`

	if _, err := tx.Exec(insertQuery, startDate, endDate, startDate, endDate, startDate, endDate); err != nil {
		return nil, fmt.Errorf("failed to rebuild report cache: %w", err)
	}

	reportQuery := `
		SELECT
			rr.start_date,
			rr.end_date,
			cd.compact_id,
			cd.company,
			rr.received_quantity,
			rr.sold_quantity,
			rr.received_quantity - rr.sold_quantity AS remaining
		FROM report_results rr
		JOIN compact_discs cd ON rr.compact_id = cd.compact_id
		WHERE rr.start_date = ? AND rr.end_date = ?
		ORDER BY cd.compact_id ASC
	`

	rows, err := tx.Query(reportQuery, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	defer rows.Close()

	var report []models.PeriodReportRow
	for rows.Next() {
		var row models.PeriodReportRow
		err := rows.Scan(&row.StartDate, &row.EndDate, &row.CompactID, &row.Company,
			&row.Received, &row.Sold, &row.Remaining)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit report: %w", err)
	}

	return report, nil
}

// validateRange canonicalizes both dates of an inclusive range.
func validateRange(startDate, endDate string) (string, string, error) {
	start, err := models.ParseDate(startDate)
	if err != nil {
		return "", "", err
	}
	end, err := models.ParseDate(endDate)
	if err != nil {
		return "", "", err
	}
	if end < start {
		return "", "", fmt.Errorf("%w: end date %s precedes start date %s", shared.ErrInvalidInput, end, start)
	}
	return start, end, nil
}
