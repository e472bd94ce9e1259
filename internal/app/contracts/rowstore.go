package contracts

import "context"

// RowStore is a spreadsheet-like persistence backend. A container groups named
// sheets; ranges and cells use A1 notation prefixed with the sheet name, for
// example "Users!A:G" or "Settings!B3". Row indexes are 1-based.
type RowStore interface {
	// ReadRange returns the rows of the sheet from row 1 down to the last non-empty
	// row, cut to the requested columns. A missing sheet reads as no rows.
	ReadRange(ctx context.Context, container, rangeRef string) ([][]string, error)
	AppendRow(ctx context.Context, container, sheet string, values []string) error
	UpdateCell(ctx context.Context, container, cellRef, value string) error
	// DeleteRow removes the row and shifts the rows below it up by one.
	DeleteRow(ctx context.Context, container, sheet string, rowIndex int) error
	// EnsureSheet creates the sheet with the given header row when it does not exist.
	EnsureSheet(ctx context.Context, container, sheet string, header []string) error
}
