package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// PersonRecord is the cleaned, entity-shaped view of one source row. Every
// field is already normalized; Defaulted names the required fields the
// source did not provide.
type PersonRecord struct {
	FirstName         string
	LastName          string
	FatherHusbandName string
	Sex               string
	DoB               *time.Time
	CNIC              string
	CNICExpiry        *time.Time
	Phone             string
	Email             string
	BloodGroup        string
	MaritalStatus     string
	DateOfMarriage    *time.Time
	NoOfDependents    int
	Defaulted         []string
}

// PersonPipeline extracts identity records: column extraction, per-type
// normalization, default filling, then structural validation.
type PersonPipeline struct {
	log *logrus.Logger
}

func NewPersonPipeline(log *logrus.Logger) *PersonPipeline {
	return &PersonPipeline{log: log}
}

const stringDefault = "N/A"

// Process fails only when no column of the table maps to Person at all;
// missing individual fields fill from defaults and are reported per row.
func (p *PersonPipeline) Process(t *Table) ([]PersonRecord, *QualityReport, error) {
	cols := MapColumns(t, PersonColumns)
	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("person processing failed: no matching person columns found in the data")
	}

	report := &QualityReport{TotalRows: t.Len()}
	records := make([]PersonRecord, 0, t.Len())

	for i := 0; i < t.Len(); i++ {
		rec := PersonRecord{}
		var defaulted []string

		cell := func(field string) (string, bool) {
			idx, ok := cols[field]
			if !ok {
				return "", false
			}
			return t.Cell(i, idx), true
		}

		// Names arrive either pre-split or as one full-name column.
		if raw, ok := cell(FieldFirstName); ok {
			rec.FirstName = CleanString(raw)
			if raw, ok := cell(FieldLastName); ok {
				rec.LastName = CleanString(raw)
			}
		} else if raw, ok := cell(FieldFullName); ok {
			rec.FirstName, rec.LastName = SplitName(raw)
		}
		if rec.FirstName == "" {
			rec.FirstName = stringDefault
			defaulted = append(defaulted, FieldFirstName)
		}
		if rec.LastName == "" {
			rec.LastName = stringDefault
			defaulted = append(defaulted, FieldLastName)
		}

		rec.FatherHusbandName = p.stringField(cell, FieldFatherHusbandName, &defaulted)
		rec.Sex = p.stringField(cell, FieldSex, &defaulted)
		rec.Phone = p.stringField(cell, FieldPhone, &defaulted)
		rec.BloodGroup = p.stringField(cell, FieldBloodGroup, &defaulted)
		rec.MaritalStatus = p.stringField(cell, FieldMaritalStatus, &defaulted)

		if raw, ok := cell(FieldCNIC); ok {
			rec.CNIC = CleanString(raw)
		}
		if rec.CNIC == "" {
			defaulted = append(defaulted, FieldCNIC)
		}

		if raw, ok := cell(FieldEmail); ok {
			rec.Email = CleanEmail(raw)
		}
		if rec.Email == "" {
			rec.Email = stringDefault
			defaulted = append(defaulted, FieldEmail)
		}

		rec.DoB = p.dateField(cell, FieldDoB, &defaulted)
		rec.CNICExpiry = p.dateField(cell, FieldCNICExpiry, &defaulted)
		rec.DateOfMarriage = p.dateField(cell, FieldDateOfMarriage, &defaulted)

		if raw, ok := cell(FieldNoOfDependents); ok {
			if n := CleanInt(raw); n != nil {
				rec.NoOfDependents = *n
			} else {
				defaulted = append(defaulted, FieldNoOfDependents)
			}
		} else {
			defaulted = append(defaulted, FieldNoOfDependents)
		}

		rec.Defaulted = defaulted
		report.flag(i+2, defaulted)
		records = append(records, rec)
	}

	if len(report.ProblematicRows) > 0 {
		p.log.Warnf("person pipeline: %d of %d rows needed defaults", len(report.ProblematicRows), report.TotalRows)
	}
	p.log.Infof("person pipeline: extracted %d records from %d mapped columns", len(records), len(cols))

	return records, report, nil
}

func (p *PersonPipeline) stringField(cell func(string) (string, bool), field string, defaulted *[]string) string {
	if raw, ok := cell(field); ok {
		if v := CleanString(raw); v != "" {
			return v
		}
	}
	*defaulted = append(*defaulted, field)
	return stringDefault
}

func (p *PersonPipeline) dateField(cell func(string) (string, bool), field string, defaulted *[]string) *time.Time {
	if raw, ok := cell(field); ok {
		if dt := CleanDate(raw); dt != nil {
			return dt
		}
	}
	*defaulted = append(*defaulted, field)
	sentinel := SentinelDate
	return &sentinel
}
