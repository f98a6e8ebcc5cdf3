package pipeline

// RowIssue records which required fields of one row were absent in the
// source and filled from defaults. A non-fatal data-quality signal; the row
// is still emitted.
type RowIssue struct {
	Row       int      `json:"row"`
	Defaulted []string `json:"defaulted"`
}

// QualityReport summarizes one extractor run over the whole table.
type QualityReport struct {
	TotalRows       int        `json:"total_rows"`
	ProblematicRows []RowIssue `json:"problematic_rows,omitempty"`
}

func (r *QualityReport) flag(row int, defaulted []string) {
	if len(defaulted) == 0 {
		return
	}
	r.ProblematicRows = append(r.ProblematicRows, RowIssue{Row: row, Defaulted: defaulted})
}

func (r *QualityReport) IsClean() bool {
	return len(r.ProblematicRows) == 0
}
