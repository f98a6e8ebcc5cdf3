package pipeline

// Source header → canonical field alias tables, one per entity. Matching is
// exact: the misspellings ("Blood Gorup", "Martial Status", "No. of
// Dependendts") are load-bearing compatibility aliases for the upstream HR
// exports and must not be "fixed".

// Canonical Person fields.
const (
	FieldFirstName         = "first_name"
	FieldLastName          = "last_name"
	FieldFullName          = "full_name"
	FieldFatherHusbandName = "father_husband_name"
	FieldSex               = "sex"
	FieldDoB               = "dob"
	FieldCNIC              = "cnic"
	FieldCNICExpiry        = "cnic_expiry"
	FieldPhone             = "phone"
	FieldEmail             = "email"
	FieldBloodGroup        = "blood_group"
	FieldMaritalStatus     = "marital_status"
	FieldDateOfMarriage    = "date_of_marriage"
	FieldNoOfDependents    = "no_of_dependents"
)

// Canonical Faculty fields.
const (
	FieldCode            = "code"
	FieldTitle           = "title"
	FieldUniversityEmail = "university_email"
	FieldStatus          = "status"
	FieldDateOfJoining   = "date_of_joining"
	FieldAcademicDesig   = "academic_designation"
)

// Canonical Designation fields.
const (
	FieldAcademicDesignation       = "academic_designation"
	FieldAdministrativeDesignation = "administrative_designation"
)

var PersonColumns = map[string]string{
	"First name":          FieldFirstName,
	"Last name":           FieldLastName,
	"Employee Name":       FieldFullName,
	"Father/Husband name": FieldFatherHusbandName,
	"Sex":                 FieldSex,
	"DoB":                 FieldDoB,
	"CNIC":                FieldCNIC,
	"CNIC Expiry":         FieldCNICExpiry,
	"Mobile":              FieldPhone,
	"Email":               FieldEmail,
	"Blood Gorup":         FieldBloodGroup,
	"Martial Status":      FieldMaritalStatus,
	"DoM":                 FieldDateOfMarriage,
	"No. of Dependendts":  FieldNoOfDependents,
}

var FacultyColumns = map[string]string{
	"Code":                 FieldCode,
	"Title":                FieldTitle,
	"Email":                FieldUniversityEmail,
	"Status":               FieldStatus,
	"Date of Joining":      FieldDateOfJoining,
	"Academic Designation": FieldAcademicDesig,
}

var DesignationColumns = map[string]string{
	"Academic Designation":       FieldAcademicDesignation,
	"Administrative Designation": FieldAdministrativeDesignation,
}

// MapColumns resolves the subset of canonical fields the table can
// populate, as canonical field → source column index. Unmapped source
// columns are ignored; canonical fields with no matching header stay absent
// until the extractor's defaulting pass.
func MapColumns(t *Table, aliases map[string]string) map[string]int {
	mapped := make(map[string]int)
	for source, canonical := range aliases {
		if idx, ok := t.Column(source); ok {
			mapped[canonical] = idx
		}
	}
	return mapped
}
