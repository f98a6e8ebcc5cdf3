package repository

import (
	"ohcm/domain"
	"strconv"
	"strings"
)

type qualKey struct {
	personID int
	title    string
}

type desigKey struct {
	title string
	kind  domain.DesignationType
}

// keyset holds every unique key already present in storage plus the keys
// staged by rows accepted earlier in the current batch. Conflict checks and
// staging go through it so two rows of one file can never both claim the
// same code or CNIC.
type keyset struct {
	cnics        map[string]struct{}
	codes        map[int]struct{}
	emails       map[string]struct{}
	quals        map[qualKey]struct{}
	designations map[desigKey]int
}

func newKeyset() *keyset {
	return &keyset{
		cnics:        make(map[string]struct{}),
		codes:        make(map[int]struct{}),
		emails:       make(map[string]struct{}),
		quals:        make(map[qualKey]struct{}),
		designations: make(map[desigKey]int),
	}
}

// conflict partitions one candidate row: an empty reason means the row may
// be staged, anything else is the single tagged reason it is rejected.
// A record is accepted or rejected whole; there is no partial skip.
func (s *keyset) conflict(row *domain.ImportRow) (reason, key string) {
	cnic := strings.TrimSpace(row.Person.CNIC)
	if cnic == "" {
		return domain.SkipMissingRequiredKey, "row " + strconv.Itoa(row.SourceRow)
	}
	if _, exists := s.cnics[cnic]; exists {
		return domain.SkipDuplicateCNIC, cnic
	}

	if row.Faculty.Code != 0 {
		if _, exists := s.codes[row.Faculty.Code]; exists {
			return domain.SkipDuplicateCode, strconv.Itoa(row.Faculty.Code)
		}
	}

	if row.Faculty.UniversityEmail != nil {
		email := strings.ToLower(*row.Faculty.UniversityEmail)
		if _, exists := s.emails[email]; exists {
			return domain.SkipDuplicateEmail, email
		}
	}

	return "", ""
}

// hasQualification reports whether (personID, title) is already persisted.
func (s *keyset) hasQualification(personID int, title string) bool {
	_, exists := s.quals[qualKey{personID: personID, title: title}]
	return exists
}

// accept stages the keys of a successfully inserted row so later rows in
// the same batch see them. Must be called only after the row's nested
// transaction committed; PersonID and Code carry the assigned values.
func (s *keyset) accept(row *domain.ImportRow) {
	if cnic := strings.TrimSpace(row.Person.CNIC); cnic != "" {
		s.cnics[cnic] = struct{}{}
	}
	if row.Faculty.Code != 0 {
		s.codes[row.Faculty.Code] = struct{}{}
	}
	if row.Faculty.UniversityEmail != nil {
		s.emails[strings.ToLower(*row.Faculty.UniversityEmail)] = struct{}{}
	}
	for _, q := range row.Qualifications {
		s.quals[qualKey{personID: row.Person.PersonID, title: q.Title}] = struct{}{}
	}
}

func (s *keyset) designationID(title string, kind domain.DesignationType) (int, bool) {
	id, ok := s.designations[desigKey{title: title, kind: kind}]
	return id, ok
}

func (s *keyset) addDesignation(title string, kind domain.DesignationType, id int) {
	s.designations[desigKey{title: title, kind: kind}] = id
}
