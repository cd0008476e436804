package models

// ReportRow is a single labelled value of a chartable report
type ReportRow struct {
	Label string
	Value int
}

// Report is a titled series of rows ready to be drawn as a bar chart
type Report struct {
	Title     string
	ValueName string
	Rows      []ReportRow
}

// QueryResult is the outcome of running one generated SQL statement
type QueryResult struct {
	RequestID  string
	Statement  string
	Columns    []string
	Rows       [][]interface{}
	CommandTag string
}

// HasRows reports whether the statement produced a result set
func (r *QueryResult) HasRows() bool {
	return len(r.Columns) > 0
}
