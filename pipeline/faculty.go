package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// FacultyRecord is the cleaned employment view of one source row. Code is
// nil when the source lacks one; the importer falls back to the person id
// so the unique constraint stays satisfiable.
type FacultyRecord struct {
	Code                *int
	Title               string
	UniversityEmail     string
	Status              string
	DateOfJoining       *time.Time
	AcademicDesignation string
	Defaulted           []string
}

type FacultyPipeline struct {
	log *logrus.Logger
}

func NewFacultyPipeline(log *logrus.Logger) *FacultyPipeline {
	return &FacultyPipeline{log: log}
}

func (p *FacultyPipeline) Process(t *Table) ([]FacultyRecord, *QualityReport, error) {
	cols := MapColumns(t, FacultyColumns)
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("faculty processing failed: no matching faculty columns found in the data")
	}

	report := &QualityReport{TotalRows: t.Len()}
	records := make([]FacultyRecord, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		rec := FacultyRecord{}
		var defaulted []string

		cell := func(field string) (string, bool) {
			idx, ok := cols[field]
			if !ok {
				return "", false
			}
			return t.Cell(i, idx), true
		}

		if raw, ok := cell(FieldCode); ok {
			rec.Code = CleanInt(raw)
		}
		if rec.Code == nil {
			defaulted = append(defaulted, FieldCode)
		}

		if raw, ok := cell(FieldTitle); ok {
			rec.Title = CleanString(raw)
		}
		if rec.Title == "" {
			rec.Title = "Unknown"
			defaulted = append(defaulted, FieldTitle)
		}

		if raw, ok := cell(FieldUniversityEmail); ok {
			rec.UniversityEmail = CleanEmail(raw)
		}

		if raw, ok := cell(FieldStatus); ok {
			rec.Status = CleanString(raw)
		}
		if rec.Status == "" {
			rec.Status = stringDefault
			defaulted = append(defaulted, FieldStatus)
		}

		if raw, ok := cell(FieldDateOfJoining); ok {
			rec.DateOfJoining = CleanDate(raw)
		}
		if rec.DateOfJoining == nil {
			sentinel := SentinelDate
			rec.DateOfJoining = &sentinel
			defaulted = append(defaulted, FieldDateOfJoining)
		}

		if raw, ok := cell(FieldAcademicDesig); ok {
			rec.AcademicDesignation = CleanString(raw)
		}
		if rec.AcademicDesignation == "" {
			rec.AcademicDesignation = "Unknown"
			defaulted = append(defaulted, FieldAcademicDesig)
		}

		rec.Defaulted = defaulted
		report.flag(i+2, defaulted)
		records = append(records, rec)
	}

	if len(report.ProblematicRows) > 0 {
		p.log.Warnf("faculty pipeline: %d of %d rows needed defaults", len(report.ProblematicRows), report.TotalRows)
	}
	p.log.Infof("faculty pipeline: extracted %d records from %d mapped columns", len(records), len(cols))

	return records, report, nil
}
