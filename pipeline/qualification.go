package pipeline

// Wide-to-long transform for the repeated qualification column groups. The
// group table is static configuration: adding a fourth "Qualification 4"
// set means extending this table, not touching the transform.

// QualificationGroup names the four columns of one repeated group plus the
// category label its records carry.
type QualificationGroup struct {
	TitleColumn       string
	InstitutionColumn string
	CountryColumn     string
	YearColumn        string
	Category          string
}

const (
	CategoryEducational  = "Educational"
	CategoryProfessional = "Professional"
)

// QualificationGroups reproduces the upstream export layout exactly,
// including the ".1" suffixes the export writer appends to duplicated
// country/year headers.
var QualificationGroups = []QualificationGroup{
	{"Qualification 1", "University 1", "Country 1", "Year 1", CategoryEducational},
	{"Qualification 2", "University 2", "Country 2", "Year 2", CategoryEducational},
	{"Qualification 3", "University 3", "Country 3", "Year 3", CategoryEducational},
	{"Professional Qualification 1", "University/Institute 1", "Country 1.1", "Year 1.1", CategoryProfessional},
	{"Professional Qualification 2", "University/Institute 2", "Country 2.1", "Year 2.1", CategoryProfessional},
}

// QualificationRecord is one unpivoted qualification. RowIndex identifies
// the source row (0-based) so records can be grouped back onto their person.
type QualificationRecord struct {
	RowIndex    int
	Category    string
	Title       string
	Institution string
	Country     string
	Year        *int
}

// ExtractQualifications emits one record per (row × group) where the
// group's title cell is non-empty. Empty titles are skipped outright:
// having fewer than five qualifications is not a data-quality defect, so
// nothing is defaulted here. Groups whose title column is missing from the
// table contribute nothing.
func ExtractQualifications(t *Table) []QualificationRecord {
	var records []QualificationRecord

	for _, group := range QualificationGroups {
		titleCol, ok := t.Column(group.TitleColumn)
		if !ok {
			continue
		}
		instCol, hasInst := t.Column(group.InstitutionColumn)
		countryCol, hasCountry := t.Column(group.CountryColumn)
		yearCol, hasYear := t.Column(group.YearColumn)

		for i := 0; i < t.Len(); i++ {
			title := CleanString(t.Cell(i, titleCol))
			if title == "" {
				continue
			}

			rec := QualificationRecord{
				RowIndex: i,
				Category: group.Category,
				Title:    title,
			}
			if hasInst {
				rec.Institution = CleanString(t.Cell(i, instCol))
			}
			if hasCountry {
				rec.Country = CleanString(t.Cell(i, countryCol))
			}
			if hasYear {
				rec.Year = CleanYear(t.Cell(i, yearCol))
			}
			records = append(records, rec)
		}
	}

	return records
}
