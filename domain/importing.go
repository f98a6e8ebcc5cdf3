package domain

import (
	"context"
)

// Skip reasons tagged onto rejected import rows. A row is accepted or
// rejected whole; one reason per rejection.
const (
	SkipDuplicateCNIC          = "duplicate CNIC"
	SkipDuplicateCode          = "duplicate faculty code"
	SkipDuplicateEmail         = "duplicate university email"
	SkipDuplicateQualification = "duplicate qualification"
	SkipMissingRequiredKey     = "missing required key"
	SkipDuplicateKey           = "duplicate key"
	SkipUnexpectedError        = "unexpected error"
)

// Import failure phases for ImportError.Stage.
const (
	StageFileRead      = "file read"
	StageColumnMapping = "column mapping"
	StageDatabase      = "database connectivity"
	StageCommit        = "commit"
)

// ImportError categories.
const (
	CategoryInput   = "input"
	CategoryStorage = "storage"
)

// ImportRow is one source row shaped into the entities the importer will
// stage as a unit: the person, the employment record, the designation
// titles to resolve, and the unpivoted qualifications. The academic title
// becomes the faculty's designation FK; the administrative title only
// populates the designation reference table.
type ImportRow struct {
	SourceRow           int             `json:"source_row"`
	Person              Person          `json:"person"`
	Faculty             Faculty         `json:"faculty"`
	AcademicTitle       string          `json:"academic_title"`
	AdministrativeTitle string          `json:"administrative_title"`
	Qualifications      []Qualification `json:"qualifications"`
}

// SkippedEntry identifies one rejected row for operator remediation.
type SkippedEntry struct {
	Row    int    `json:"row"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ImportReport is the batch outcome: every row is either processed or
// skipped. Processed + Skipped = Total always holds; SkippedEntries may
// hold more entries than Skipped because rejected sub-records of a
// processed row (duplicate qualifications) are listed there too.
type ImportReport struct {
	Processed      int            `json:"processed"`
	Skipped        int            `json:"skipped"`
	Total          int            `json:"total"`
	SkippedEntries []SkippedEntry `json:"skipped_entries,omitempty"`
}

// Skip rejects a whole row.
func (r *ImportReport) Skip(row int, key, reason string) {
	r.Skipped++
	r.SkippedEntries = append(r.SkippedEntries, SkippedEntry{Row: row, Key: key, Reason: reason})
}

// Reject tags one rejected sub-record of a row that itself went through.
func (r *ImportReport) Reject(row int, key, reason string) {
	r.SkippedEntries = append(r.SkippedEntries, SkippedEntry{Row: row, Key: key, Reason: reason})
}

// ImportError is a fatal, whole-import failure: nothing was committed and
// the caller must retry the operation after fixing the named stage.
type ImportError struct {
	Stage    string `json:"stage"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

func (e *ImportError) Error() string {
	return e.Stage + ": " + e.Message
}

type HRImportRepo interface {
	ImportFaculty(ctx context.Context, rows []ImportRow) (*ImportReport, error)
	GetAllFaculty(ctx context.Context) (*[]Faculty, error)
}

type HRImportUseCase interface {
	ImportFaculty(ctx context.Context, rows []ImportRow) (*ImportReport, error)
	GetAllFaculty(ctx context.Context) (*[]Faculty, error)
}
