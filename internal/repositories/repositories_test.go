package repositories

import (
	"database/sql"
	"testing"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// mustCreateDisc inserts a catalog disc or fails the test.
func mustCreateDisc(t *testing.T, db *sql.DB, company string, price float64) *models.CompactDisc {
	t.Helper()

	disc := &models.CompactDisc{ProductionDate: "2023-05-01", Company: company, Price: price}
	if err := NewDiscRepository(db).Create(disc); err != nil {
		t.Fatalf("failed to create disc: %v", err)
	}
	return disc
}

// mustRecord appends a ledger entry or fails the test.
func mustRecord(t *testing.T, db *sql.DB, opType models.OperationType, discID int64, qty int, date string) *models.Operation {
	t.Helper()

	operation := &models.Operation{Date: date, Type: opType, CompactID: discID, Quantity: qty}
	if err := NewOperationRepository(db).Record(operation); err != nil {
		t.Fatalf("failed to record %s: %v", opType, err)
	}
	return operation
}

// mustCreateWork inserts a musical work or fails the test.
func mustCreateWork(t *testing.T, db *sql.DB, discID int64, title, author, performer string) *models.MusicalWork {
	t.Helper()

	work := &models.MusicalWork{Title: title, Author: author, Performer: performer, CompactID: discID}
	if err := NewWorkRepository(db).Create(work); err != nil {
		t.Fatalf("failed to create work: %v", err)
	}
	return work
}
