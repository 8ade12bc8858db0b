// Package validation range-checks order inputs and normalizes pagination.
// Validation failures short-circuit a request before any storage call.
package validation

import "fmt"

const (
	MinTableNumber = 1
	MaxTableNumber = 100

	MinMenuID = 1
	MaxMenuID = 10

	DefaultPage  = 0
	DefaultLimit = 5
)

// ValidationError names the violated field with a human-readable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TableNumber checks the table identifier range shared by every operation.
func TableNumber(n int) error {
	if n < MinTableNumber || n > MaxTableNumber {
		return ValidationError{
			Field: "table_number",
			Message: fmt.Sprintf("table_number must be in range of %d to %d",
				MinTableNumber, MaxTableNumber),
		}
	}
	return nil
}

// MenuID checks the menu identifier supplied on create.
func MenuID(n int) error {
	if n < MinMenuID || n > MaxMenuID {
		return ValidationError{
			Field: "menu_id",
			Message: fmt.Sprintf("menu_id must be in range of %d to %d",
				MinMenuID, MaxMenuID),
		}
	}
	return nil
}

// NormalizePage coerces an absent or negative page to the first page.
// Pagination inputs are normalized, never rejected. Absent values are passed
// as nil.
func NormalizePage(page *int) int {
	if page == nil || *page < 0 {
		return DefaultPage
	}
	return *page
}

// NormalizeLimit applies the default window size when the limit is absent and
// coerces a supplied non-positive limit to 1 so pages are never zero-width.
func NormalizeLimit(limit *int) int {
	if limit == nil {
		return DefaultLimit
	}
	if *limit < 1 {
		return 1
	}
	return *limit
}
