package display

import "github.com/squatchystacks/stacksmith/pkg/output"

// Alignment specifies text alignment within a column.
//
// Used by table column definitions to control how text is aligned.
type Alignment int

const (
	// AlignLeft aligns text to the left of the column.
	AlignLeft Alignment = iota

	// AlignRight aligns text to the right of the column.
	AlignRight

	// AlignCenter centers text within the column.
	AlignCenter
)

// ColumnDef defines a single table column's properties.
//
// Fields:
//   - Name: Column header text (displayed in uppercase)
//   - MinWidth: Minimum column width in characters
//   - Align: Text alignment within the column
//   - Optional: If true, column can be hidden via TableOptions
//
// Example:
//
//	col := ColumnDef{Name: "SECTION", MinWidth: 7, Align: AlignLeft}
type ColumnDef struct {
	// Name is the column header text.
	Name string

	// MinWidth is the minimum width in characters.
	// Column will expand to fit content if content is wider.
	MinWidth int

	// Align specifies how text is aligned within the column.
	// Default is AlignLeft.
	Align Alignment

	// Optional indicates this column can be hidden.
	// Use TableOptions.ShowOptional to control visibility.
	Optional bool
}

// Schema defines a complete table structure.
//
// Fields:
//   - Columns: Ordered list of column definitions
//   - OptionalCols: Map of column names to show/hide state
//
// Example:
//
//	schema := Schema{
//	    Columns: []ColumnDef{
//	        {Name: "SECTION", MinWidth: 7},
//	        {Name: "DEAL", MinWidth: 4},
//	    },
//	}
type Schema struct {
	// Columns defines the table columns in display order.
	Columns []ColumnDef

	// OptionalCols controls which optional columns are shown.
	// Key is column name, value is whether to show.
	OptionalCols map[string]bool
}

// Predefined table schemas - SINGLE SOURCE OF TRUTH.
//
// These schemas define the exact column structure for each command's
// table output. All table creation should use these schemas.
var (
	// SearchSchema defines columns for the 'search' command output.
	// Columns: SECTION, CATEGORY*, DEAL
	// * CATEGORY is optional (hidden when only stack sections match)
	SearchSchema = Schema{
		Columns: []ColumnDef{
			{Name: "SECTION", MinWidth: 7},
			{Name: "CATEGORY", MinWidth: 8, Optional: true},
			{Name: "DEAL", MinWidth: 4},
		},
	}

	// ScanSchema defines columns for the 'scan' command output.
	// Columns: SECTION, DEALS, NOTES
	ScanSchema = Schema{
		Columns: []ColumnDef{
			{Name: "SECTION", MinWidth: 7},
			{Name: "DEALS", MinWidth: 5},
			{Name: "NOTES", MinWidth: 5},
		},
	}
)

// TableOptions configures table creation from a schema.
//
// Fields:
//   - ShowOptional: Map of optional column names to show
//   - NoHeader: If true, omits the header row
//   - NoSeparator: If true, omits the separator line after header
//
// Example:
//
//	opts := TableOptions{
//	    ShowOptional: map[string]bool{"CATEGORY": true},
//	}
type TableOptions struct {
	// ShowOptional controls which optional columns are displayed.
	// Key is column name (e.g., "CATEGORY"), value is whether to show.
	ShowOptional map[string]bool

	// NoHeader omits the header row if true.
	NoHeader bool

	// NoSeparator omits the separator line if true.
	NoSeparator bool
}

// NewTableFromSchema creates an output.Table from a schema and options.
//
// Parameters:
//   - schema: Table schema defining columns
//   - options: Configuration options
//
// Returns:
//   - *output.Table: New table ready for adding rows
//
// Example:
//
//	opts := TableOptions{ShowOptional: map[string]bool{"CATEGORY": true}}
//	table := display.NewTableFromSchema(display.SearchSchema, opts)
func NewTableFromSchema(schema Schema, options TableOptions) *output.Table {
	table := output.NewTable()
	for _, col := range schema.Columns {
		if col.Optional {
			visible := options.ShowOptional[col.Name]
			table.AddConditionalColumn(col.Name, visible)
		} else if col.MinWidth > 0 {
			table.AddColumnWithMinWidth(col.Name, col.MinWidth)
		} else {
			table.AddColumn(col.Name)
		}
	}
	return table
}

// NewSearchTable creates a table for 'search' command output.
//
// Parameters:
//   - showCategory: If true, includes the CATEGORY column
//
// Returns:
//   - *output.Table: Table configured with SearchSchema
//
// Example:
//
//	table := display.NewSearchTable(true)  // with CATEGORY column
//	table := display.NewSearchTable(false) // without CATEGORY column
func NewSearchTable(showCategory bool) *output.Table {
	return NewTableFromSchema(SearchSchema, TableOptions{
		ShowOptional: map[string]bool{"CATEGORY": showCategory},
	})
}

// NewScanTable creates a table for 'scan' command output.
//
// Returns:
//   - *output.Table: Table configured with ScanSchema
//
// Example:
//
//	table := display.NewScanTable()
func NewScanTable() *output.Table {
	return NewTableFromSchema(ScanSchema, TableOptions{})
}
