// package repositories provides the persistence layer of the store.
//
// Each repository wraps the shared database handle for one concern: accounts,
// the disc catalog, musical works, the operations ledger and the derived
// reports. All SQL is parameterized; schema constraint failures are surfaced
// as [shared.ErrConstraint] so callers can distinguish them from storage
// faults.
package repositories

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/mshakhov/discstore/internal/shared"
)

// wrapExecError maps sqlite constraint failures (CHECK, FOREIGN KEY, UNIQUE
// and the sale guard trigger) to [shared.ErrConstraint], keeping the engine's
// message for the caller.
func wrapExecError(err error, action string) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", shared.ErrConstraint, err)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
