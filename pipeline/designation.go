package pipeline

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// DesignationRecord carries the title-cased designation names of one source
// row. "Unknown" marks an absent value and is never turned into a
// Designation row downstream.
type DesignationRecord struct {
	Academic       string
	Administrative string
}

const UnknownDesignation = "Unknown"

type DesignationPipeline struct {
	log *logrus.Logger
}

func NewDesignationPipeline(log *logrus.Logger) *DesignationPipeline {
	return &DesignationPipeline{log: log}
}

// Process never fails: a table with no designation columns yields records
// full of "Unknown", since faculty rows can exist without a designation.
func (p *DesignationPipeline) Process(t *Table) []DesignationRecord {
	cols := MapColumns(t, DesignationColumns)
	if len(cols) == 0 {
		p.log.Warn("designation pipeline: no matching designation columns found in the data")
	}

	records := make([]DesignationRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rec := DesignationRecord{
			Academic:       UnknownDesignation,
			Administrative: UnknownDesignation,
		}
		if idx, ok := cols[FieldAcademicDesignation]; ok {
			if v := CleanString(t.Cell(i, idx)); v != "" {
				rec.Academic = titleCase(v)
			}
		}
		if idx, ok := cols[FieldAdministrativeDesignation]; ok {
			if v := CleanString(t.Cell(i, idx)); v != "" {
				rec.Administrative = titleCase(v)
			}
		}
		records = append(records, rec)
	}

	p.log.Infof("designation pipeline: cleaned %d rows", len(records))
	return records
}

// titleCase uppercases the first letter of each word so "assistant
// professor" and "Assistant Professor" dedup to one Designation row.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
