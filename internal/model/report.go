package model

// Table is an ordered header list plus ordered rows of string cells,
// ready for CSV serialization or a formatted-document writer.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Section is one block of the noting report: either free text or a table.
type Section struct {
	Table *Table
	Text  string
	Bold  bool
}

// ReportDocument is the structured report payload handed to export
// collaborators. Sections render in order.
type ReportDocument struct {
	Title    string
	Sections []Section
}
