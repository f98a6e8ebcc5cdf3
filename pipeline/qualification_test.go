package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQualificationsUnpivot(t *testing.T) {
	table := &Table{
		Headers: []string{
			"Qualification 1", "University 1", "Country 1", "Year 1",
			"Professional Qualification 1", "University/Institute 1", "Country 1.1", "Year 1.1",
		},
		Rows: [][]string{
			{"MS Computer Science", "COMSATS", "Pakistan", "2016", "PMP", "PMI", "USA", "2019"},
			{"BS Mathematics", "Punjab University", "Pakistan", "2010", "", "", "", ""},
		},
	}

	records := ExtractQualifications(table)
	require.Len(t, records, 3)

	// Records come out grouped by column group, rows in order within each
	assert.Equal(t, 0, records[0].RowIndex)
	assert.Equal(t, CategoryEducational, records[0].Category)
	assert.Equal(t, "MS Computer Science", records[0].Title)
	assert.Equal(t, "COMSATS", records[0].Institution)
	require.NotNil(t, records[0].Year)
	assert.Equal(t, 2016, *records[0].Year)

	assert.Equal(t, 1, records[1].RowIndex)
	assert.Equal(t, "BS Mathematics", records[1].Title)

	assert.Equal(t, 0, records[2].RowIndex)
	assert.Equal(t, CategoryProfessional, records[2].Category)
	assert.Equal(t, "PMP", records[2].Title)
	assert.Equal(t, "USA", records[2].Country)
}

func TestExtractQualificationsSkipsEmptyTitles(t *testing.T) {
	table := &Table{
		Headers: []string{"Qualification 1", "University 1"},
		Rows: [][]string{
			{"", "COMSATS"},
			{"N/A", "COMSATS"},
			{"MSc Physics", "QAU"},
		},
	}

	records := ExtractQualifications(table)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].RowIndex)
	assert.Equal(t, "MSc Physics", records[0].Title)
}

func TestExtractQualificationsMissingColumnsContributeNothing(t *testing.T) {
	table := &Table{
		Headers: []string{"Code", "Employee Name"},
		Rows:    [][]string{{"1001", "Ayesha Khan"}},
	}

	assert.Empty(t, ExtractQualifications(table))
}

func TestExtractQualificationsOptionalFields(t *testing.T) {
	// Only the title column exists; institution, country and year stay zero
	table := &Table{
		Headers: []string{"Qualification 2"},
		Rows:    [][]string{{"MBA"}},
	}

	records := ExtractQualifications(table)
	require.Len(t, records, 1)
	assert.Equal(t, "MBA", records[0].Title)
	assert.Equal(t, "", records[0].Institution)
	assert.Equal(t, "", records[0].Country)
	assert.Nil(t, records[0].Year)
}

func TestQualificationGroupsCoverBothCategories(t *testing.T) {
	educational, professional := 0, 0
	for _, g := range QualificationGroups {
		switch g.Category {
		case CategoryEducational:
			educational++
		case CategoryProfessional:
			professional++
		}
	}
	assert.Equal(t, 3, educational)
	assert.Equal(t, 2, professional)
}
