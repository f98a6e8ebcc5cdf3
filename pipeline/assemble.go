package pipeline

import (
	"fmt"
	"ohcm/domain"

	"github.com/sirupsen/logrus"
)

// BuildResult is what the delivery layer hands to the importer: one
// ImportRow per source row plus the per-entity data-quality reports.
type BuildResult struct {
	Rows          []domain.ImportRow `json:"-"`
	PersonReport  *QualityReport     `json:"person_report,omitempty"`
	FacultyReport *QualityReport     `json:"faculty_report,omitempty"`
}

// BuildImportRows runs every extractor over the table and zips their
// outputs back into per-row import units. Extractors iterate the same
// table, so a length mismatch means an extractor bug rather than bad
// input; it is still checked, since importing misaligned person/faculty
// pairs would be far worse than rejecting the file.
func BuildImportRows(t *Table, log *logrus.Logger) (*BuildResult, error) {
	persons, personReport, err := NewPersonPipeline(log).Process(t)
	if err != nil {
		return nil, err
	}
	faculties, facultyReport, err := NewFacultyPipeline(log).Process(t)
	if err != nil {
		return nil, err
	}
	designations := NewDesignationPipeline(log).Process(t)
	qualifications := ExtractQualifications(t)

	if len(persons) != len(faculties) || len(persons) != len(designations) {
		return nil, fmt.Errorf("row count mismatch between person, faculty, and designation data")
	}

	qualsByRow := make(map[int][]QualificationRecord)
	for _, q := range qualifications {
		qualsByRow[q.RowIndex] = append(qualsByRow[q.RowIndex], q)
	}

	rows := make([]domain.ImportRow, 0, len(persons))
	for i := range persons {
		p := persons[i]
		f := faculties[i]

		row := domain.ImportRow{
			// +2: 1-based numbering plus the header row, matching what the
			// operator sees in a spreadsheet.
			SourceRow: i + 2,
			Person: domain.Person{
				FirstName:         p.FirstName,
				LastName:          p.LastName,
				FatherHusbandName: p.FatherHusbandName,
				Sex:               p.Sex,
				DoB:               p.DoB,
				CNIC:              p.CNIC,
				CNICExpiry:        p.CNICExpiry,
				Phone:             p.Phone,
				Email:             p.Email,
				BloodGroup:        p.BloodGroup,
				MaritalStatus:     p.MaritalStatus,
				DateOfMarriage:    p.DateOfMarriage,
				NoOfDependents:    p.NoOfDependents,
			},
			Faculty: domain.Faculty{
				Title:         f.Title,
				Status:        f.Status,
				DateOfJoining: f.DateOfJoining,
			},
			AcademicTitle:       designations[i].Academic,
			AdministrativeTitle: designations[i].Administrative,
		}

		if f.Code != nil {
			row.Faculty.Code = *f.Code
		}
		if f.UniversityEmail != "" {
			email := f.UniversityEmail
			row.Faculty.UniversityEmail = &email
		}

		// Repeated titles within a row pass through untouched; the importer
		// dedups them so the rejection lands in the import report.
		for _, q := range qualsByRow[i] {
			row.Qualifications = append(row.Qualifications, domain.Qualification{
				Category:    q.Category,
				Title:       q.Title,
				Institution: q.Institution,
				Country:     q.Country,
				Year:        q.Year,
			})
		}

		rows = append(rows, row)
	}

	return &BuildResult{
		Rows:          rows,
		PersonReport:  personReport,
		FacultyReport: facultyReport,
	}, nil
}
