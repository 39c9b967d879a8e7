package models

import (
	"fmt"
	"time"

	"github.com/mshakhov/discstore/internal/shared"
)

// Role enumerates the two account roles of the store.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// OperationType enumerates the two ledger entry kinds.
type OperationType string

const (
	OperationReceipt OperationType = "receipt"
	OperationSale    OperationType = "sale"
)

// Valid reports whether the operation type is one of the known values.
func (t OperationType) Valid() bool {
	return t == OperationReceipt || t == OperationSale
}

// DateLayout is the canonical date format of the store. Dates are stored as
// text and compared lexicographically, so they must stay zero-padded.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD date string and returns it in canonical form.
func ParseDate(value string) (string, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidDate, value)
	}
	return t.Format(DateLayout), nil
}

// Today returns the current date in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}

// User is a store account. Accounts are created at initialization and are
// immutable afterwards; PasswordHash holds a bcrypt hash.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Validate checks if the user's data is valid and returns an error if not.
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", shared.ErrInvalidInput)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", shared.ErrInvalidInput, u.Role)
	}
	return nil
}

// CompactDisc is one catalog entry.
type CompactDisc struct {
	ID             int64
	ProductionDate string
	Company        string
	Price          float64
}

// Validate checks if the disc's data is valid and returns an error if not.
func (d *CompactDisc) Validate() error {
	if _, err := ParseDate(d.ProductionDate); err != nil {
		return err
	}
	if d.Company == "" {
		return fmt.Errorf("%w: company is required", shared.ErrInvalidInput)
	}
	if d.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", shared.ErrConstraint)
	}
	return nil
}

// MusicalWork is one work pressed on a compact disc. Works are owned by their
// disc and are removed with it.
type MusicalWork struct {
	ID        int64
	Title     string
	Author    string
	Performer string
	CompactID int64
}

// Validate checks if the work's data is valid and returns an error if not.
func (w *MusicalWork) Validate() error {
	if w.Title == "" || w.Author == "" || w.Performer == "" {
		return fmt.Errorf("%w: title, author and performer are required", shared.ErrInvalidInput)
	}
	if w.CompactID <= 0 {
		return fmt.Errorf("%w: compact disc id is required", shared.ErrInvalidInput)
	}
	return nil
}

// Operation is one append-only ledger entry.
type Operation struct {
	ID        int64
	Date      string
	Type      OperationType
	CompactID int64
	Quantity  int
}

// Validate checks if the operation's data is valid and returns an error if not.
func (o *Operation) Validate() error {
	if _, err := ParseDate(o.Date); err != nil {
		return err
	}
	if !o.Type.Valid() {
		return fmt.Errorf("%w: unknown operation type %q", shared.ErrInvalidInput, o.Type)
	}
	if o.CompactID <= 0 {
		return fmt.Errorf("%w: compact disc id is required", shared.ErrInvalidInput)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", shared.ErrConstraint)
	}
	return nil
}

// InventoryRow is the current stock position of one disc.
type InventoryRow struct {
	CompactID      int64
	Company        string
	ProductionDate string
	Price          float64
	Received       int
	Sold           int
	Remaining      int
	StockValue     float64
}

// PeriodSales describes the sales of one disc within an inclusive date range.
type PeriodSales struct {
	CompactID      int64
	Company        string
	ProductionDate string
	Price          float64
	QuantitySold   int
	TotalValue     float64
}

// DiscPopularity is the all-time best selling disc together with the works
// pressed on it.
type DiscPopularity struct {
	CompactID int64
	TotalSold int
	Works     []MusicalWork
}

// PerformerSales is one joined detail row for the best selling performer.
// A performer with several works yields several rows.
type PerformerSales struct {
	Performer string
	TotalSold int
	Title     string
	Author    string
	Company   string
}

// AuthorSales is the per-author sales aggregate.
type AuthorSales struct {
	Author       string
	TotalSold    int
	WorksCount   int
	TotalRevenue float64
}

// PeriodReportRow is one row of the materialized period report cache joined
// with the disc company.
type PeriodReportRow struct {
	StartDate string
	EndDate   string
	CompactID int64
	Company   string
	Received  int
	Sold      int
	Remaining int
}
