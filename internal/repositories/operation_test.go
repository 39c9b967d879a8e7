package repositories

import (
	"errors"
	"testing"

	"github.com/mshakhov/discstore/internal/models"
	"github.com/mshakhov/discstore/internal/shared"
)

func TestOperationRepository(t *testing.T) {
	t.Run("RecordReceipt", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		operation := &models.Operation{Date: "2024-01-10", Type: models.OperationReceipt, CompactID: disc.ID, Quantity: 20}
		if err := repo.Record(operation); err != nil {
			t.Fatalf("failed to record receipt: %v", err)
		}
		if operation.ID == 0 {
			t.Error("operation ID should be set after recording")
		}
	})

	t.Run("RecordDefaultsDateToToday", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		operation := &models.Operation{Type: models.OperationReceipt, CompactID: disc.ID, Quantity: 3}
		if err := repo.Record(operation); err != nil {
			t.Fatalf("failed to record receipt: %v", err)
		}
		if operation.Date != models.Today() {
			t.Errorf("expected date %q, got %q", models.Today(), operation.Date)
		}
	})

	t.Run("SaleWithinStock", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		mustRecord(t, db, models.OperationReceipt, disc.ID, 20, "2024-01-10")
		mustRecord(t, db, models.OperationSale, disc.ID, 10, "2024-01-15")

		stock, err := repo.NetStock(disc.ID)
		if err != nil {
			t.Fatalf("failed to compute net stock: %v", err)
		}
		if stock != 10 {
			t.Errorf("expected net stock 10, got %d", stock)
		}
	})

	t.Run("SaleExceedingStockRejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		mustRecord(t, db, models.OperationReceipt, disc.ID, 5, "2024-01-10")

		operation := &models.Operation{Date: "2024-01-15", Type: models.OperationSale, CompactID: disc.ID, Quantity: 6}
		err := repo.Record(operation)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint, got %v", err)
		}

		// The rejected sale must leave the ledger untouched.
		stock, err := repo.NetStock(disc.ID)
		if err != nil {
			t.Fatalf("failed to compute net stock: %v", err)
		}
		if stock != 5 {
			t.Errorf("expected net stock 5 after rejected sale, got %d", stock)
		}
	})

	t.Run("SaleExactlyDrainsStock", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		mustRecord(t, db, models.OperationReceipt, disc.ID, 5, "2024-01-10")
		mustRecord(t, db, models.OperationSale, disc.ID, 5, "2024-01-15")

		stock, err := repo.NetStock(disc.ID)
		if err != nil {
			t.Fatalf("failed to compute net stock: %v", err)
		}
		if stock != 0 {
			t.Errorf("expected net stock 0, got %d", stock)
		}
	})

	t.Run("SaleWithNoReceiptsRejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		operation := &models.Operation{Date: "2024-01-15", Type: models.OperationSale, CompactID: disc.ID, Quantity: 1}
		err := repo.Record(operation)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Errorf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		operation := &models.Operation{Date: "2024-01-10", Type: models.OperationReceipt, CompactID: disc.ID, Quantity: 0}
		err := repo.Record(operation)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Errorf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("RejectsUnknownDisc", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		operation := &models.Operation{Date: "2024-01-10", Type: models.OperationReceipt, CompactID: 42, Quantity: 1}
		err := repo.Record(operation)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Errorf("expected ErrConstraint, got %v", err)
		}
	})

	t.Run("ListByDisc", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewOperationRepository(db)

		disc := mustCreateDisc(t, db, "Sony Music", 19.99)
		other := mustCreateDisc(t, db, "Universal", 12.00)
		mustRecord(t, db, models.OperationReceipt, disc.ID, 20, "2024-01-10")
		mustRecord(t, db, models.OperationSale, disc.ID, 4, "2024-01-12")
		mustRecord(t, db, models.OperationReceipt, other.ID, 7, "2024-01-11")

		entries, err := repo.ListByDisc(disc.ID)
		if err != nil {
			t.Fatalf("failed to list operations: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].Type != models.OperationReceipt || entries[1].Type != models.OperationSale {
			t.Errorf("unexpected entries: %+v", entries)
		}
	})
}
