package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildImportRows(t *testing.T) {
	table := &Table{
		Headers: []string{
			"Code", "Employee Name", "CNIC", "Email", "Status",
			"Academic Designation", "Administrative Designation",
			"Qualification 1", "University 1", "Country 1", "Year 1",
			"Qualification 2", "University 2", "Country 2", "Year 2",
		},
		Rows: [][]string{
			{"1001", "Ayesha Khan", "35202-1234567-1", "a.khan@uni.edu", "Active",
				"assistant professor", "exam CONTROLLER",
				"MS Computer Science", "COMSATS", "Pakistan", "2016",
				"BS Computer Science", "PU", "Pakistan", "2012"},
			{"", "Bilal Ahmed", "35202-7654321-2", "", "Active",
				"", "",
				"", "", "", "",
				"", "", "", ""},
		},
	}

	result, err := BuildImportRows(table, testLogger())
	require.NoError(t, err)
	require.Len(t, result.Rows, 2)

	first := result.Rows[0]
	assert.Equal(t, 2, first.SourceRow)
	assert.Equal(t, "Ayesha", first.Person.FirstName)
	assert.Equal(t, "Khan", first.Person.LastName)
	assert.Equal(t, "35202-1234567-1", first.Person.CNIC)
	assert.Equal(t, 1001, first.Faculty.Code)
	require.NotNil(t, first.Faculty.UniversityEmail)
	assert.Equal(t, "a.khan@uni.edu", *first.Faculty.UniversityEmail)
	assert.Equal(t, "Assistant Professor", first.AcademicTitle)
	assert.Equal(t, "Exam Controller", first.AdministrativeTitle)
	require.Len(t, first.Qualifications, 2)
	assert.Equal(t, "MS Computer Science", first.Qualifications[0].Title)

	second := result.Rows[1]
	assert.Equal(t, 3, second.SourceRow)
	// Absent code stays zero; the importer substitutes the person id
	assert.Equal(t, 0, second.Faculty.Code)
	assert.Nil(t, second.Faculty.UniversityEmail)
	assert.Equal(t, "Unknown", second.AcademicTitle)
	assert.Equal(t, "Unknown", second.AdministrativeTitle)
	assert.Empty(t, second.Qualifications)

	require.NotNil(t, result.PersonReport)
	require.NotNil(t, result.FacultyReport)
	assert.Equal(t, 2, result.PersonReport.TotalRows)
}

func TestBuildImportRowsCarriesRepeatedTitlesThrough(t *testing.T) {
	// Dedup of repeated titles happens in the importer, where the rejection
	// can be tagged in the import report; assembly passes them along.
	table := &Table{
		Headers: []string{
			"Code", "Employee Name", "CNIC",
			"Qualification 1", "Qualification 2",
		},
		Rows: [][]string{
			{"1001", "Ayesha Khan", "35202-1234567-1", "MBA", "MBA"},
		},
	}

	result, err := BuildImportRows(table, testLogger())
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Rows[0].Qualifications, 2)
}

func TestBuildImportRowsFailsWhenNoPersonColumnsMap(t *testing.T) {
	table := &Table{
		Headers: []string{"Completely", "Unrelated"},
		Rows:    [][]string{{"a", "b"}},
	}

	_, err := BuildImportRows(table, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching person columns")
}
