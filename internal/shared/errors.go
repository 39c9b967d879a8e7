package shared

import "fmt"

var (
	// Storage errors
	ErrConnection = fmt.Errorf("storage cannot be opened")
	ErrConstraint = fmt.Errorf("constraint violation")
	ErrNotFound   = fmt.Errorf("record not found")

	// Report errors
	ErrNoData = fmt.Errorf("no data")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrForbidden  = fmt.Errorf("operation requires administrator role")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidDate  = fmt.Errorf("invalid date, expected YYYY-MM-DD")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
)
