package models

// TableData is the JSON view of one table of a table source.
type TableData struct {
	// Name is the table name.
	Name string `json:"name"`
	// External is true for tables supplied by a sheet access provider.
	External bool `json:"external,omitempty"`
	// RowCount and ColumnCount are the table extent.
	RowCount    int `json:"row_count"`
	ColumnCount int `json:"column_count"`
	// Rows contains the non-empty rows.
	Rows []CellRow `json:"rows,omitempty"`
}
