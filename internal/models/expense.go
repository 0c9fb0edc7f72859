package models

// ExpenseEntry represents one expense in the trip ledger.
type ExpenseEntry struct {
	// ID is a unique time-based identifier assigned by the ledger store.
	ID int64 `json:"id"`

	// Date is the calendar date of the expense ("2026-08-14"). It is
	// used only for filtering and display; ordering follows ID.
	Date string `json:"date"`

	// Title is a free-text label for the expense.
	Title string `json:"title"`

	// Cost is the amount in the smallest currency unit. Always >= 0.
	Cost int64 `json:"cost"`

	// Category groups expenses for aggregation. Any non-empty string is
	// a valid category, including ones never seen before.
	Category string `json:"category"`

	// Payer is the roster member who paid the full cost.
	Payer Member `json:"payer"`

	// Method is an opaque payment-method label, never used in any
	// computation.
	Method string `json:"method"`

	// Involved is the non-empty set of members sharing the cost. The
	// ledger store guarantees it is deduplicated and a subset of the
	// roster; an empty set on ingestion defaults to the full roster.
	Involved []Member `json:"involved"`

	// Receipt and FileName are optional attachment references, carried
	// through unchanged and never inspected.
	Receipt  *string `json:"receipt"`
	FileName *string `json:"fileName"`
}
