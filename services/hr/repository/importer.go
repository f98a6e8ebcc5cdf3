package repository

import (
	"context"
	"errors"
	"fmt"
	"ohcm/config"
	"ohcm/domain"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type hrImportRepository struct {
	db     *gorm.DB
	cipher *config.CNICCipher
	log    *logrus.Logger
}

func NewHRImportRepository(database *gorm.DB, cipher *config.CNICCipher) domain.HRImportRepo {
	return &hrImportRepository{
		db:     database,
		cipher: cipher,
		log:    config.GetLogrusInstance(),
	}
}

// ImportFaculty drives one batch import. The whole batch runs inside one
// transaction; every person group (Person + Faculty + Qualifications) runs
// in a nested transaction so a constraint violation rolls back only that
// group and the batch keeps going. Only the pre-fetch of existing keys and
// the final commit can fail the import as a whole.
func (r *hrImportRepository) ImportFaculty(ctx context.Context, rows []domain.ImportRow) (*domain.ImportReport, error) {
	keys, err := r.loadExistingKeys(ctx)
	if err != nil {
		return nil, &domain.ImportError{
			Stage:    domain.StageDatabase,
			Message:  fmt.Sprintf("could not load existing unique keys: %v", err),
			Category: domain.CategoryStorage,
		}
	}

	report := &domain.ImportReport{Total: len(rows)}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			row := &rows[i]

			if reason, key := keys.conflict(row); reason != "" {
				r.log.Warnf("import: row %d skipped (%s: %s)", row.SourceRow, reason, key)
				report.Skip(row.SourceRow, key, reason)
				continue
			}

			// Designations are resolved before the person's savepoint and
			// flushed for their id: faculty rows later in the batch may
			// reference them even if this person's group rolls back.
			var designationID *int
			if row.AcademicTitle != "" && row.AcademicTitle != "Unknown" {
				id, err := r.resolveDesignation(tx, keys, row.AcademicTitle, domain.DesignationAcademic)
				if err != nil {
					return fmt.Errorf("failed to resolve designation %q: %w", row.AcademicTitle, err)
				}
				designationID = &id
			}
			// Administrative titles only populate the reference table; the
			// faculty FK carries the academic one.
			if row.AdministrativeTitle != "" && row.AdministrativeTitle != "Unknown" {
				if _, err := r.resolveDesignation(tx, keys, row.AdministrativeTitle, domain.DesignationAdministrative); err != nil {
					return fmt.Errorf("failed to resolve designation %q: %w", row.AdministrativeTitle, err)
				}
			}

			var dupQuals []string
			err := tx.Transaction(func(stx *gorm.DB) error {
				var err error
				dupQuals, err = r.insertGroup(stx, keys, row, designationID)
				return err
			})
			if err != nil {
				if isUniqueViolation(err) {
					r.log.Warnf("import: row %d rolled back on unique constraint: %v", row.SourceRow, err)
					report.Skip(row.SourceRow, identifyingKey(row), domain.SkipDuplicateKey)
					continue
				}
				// Unanticipated input shape: recover the same way, but loudly.
				r.log.Errorf("import: row %d rolled back on unexpected error: %v", row.SourceRow, err)
				report.Skip(row.SourceRow, identifyingKey(row), domain.SkipUnexpectedError)
				continue
			}

			for _, title := range dupQuals {
				report.Reject(row.SourceRow, title, domain.SkipDuplicateQualification)
			}
			keys.accept(row)
			report.Processed++
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ImportError{
			Stage:    domain.StageCommit,
			Message:  fmt.Sprintf("failed to commit import: %v", err),
			Category: domain.CategoryStorage,
		}
	}

	r.log.Infof("import: %d processed, %d skipped of %d rows", report.Processed, report.Skipped, report.Total)
	return report, nil
}

// insertGroup stages one person's entities inside an open savepoint. The
// assigned identifiers are written back onto the row so accept() can stage
// the final key values. Returned titles are qualifications dropped for
// violating the (person, title) uniqueness rule.
func (r *hrImportRepository) insertGroup(stx *gorm.DB, keys *keyset, row *domain.ImportRow, designationID *int) ([]string, error) {
	person := row.Person
	person.CNIC = r.cipher.Encrypt(strings.TrimSpace(person.CNIC))
	if err := stx.Create(&person).Error; err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	faculty := row.Faculty
	faculty.PersonID = person.PersonID
	faculty.DesignationID = designationID
	if faculty.Code == 0 {
		// Source rows without a code borrow the person id, which is unique.
		faculty.Code = person.PersonID
	}
	if err := stx.Create(&faculty).Error; err != nil {
		return nil, fmt.Errorf("failed to insert faculty: %w", err)
	}

	var dups []string
	seen := make(map[string]struct{})
	for i := range row.Qualifications {
		qual := row.Qualifications[i]
		if _, inRow := seen[qual.Title]; inRow || keys.hasQualification(person.PersonID, qual.Title) {
			dups = append(dups, qual.Title)
			continue
		}
		seen[qual.Title] = struct{}{}
		qual.PersonID = person.PersonID
		if err := stx.Create(&qual).Error; err != nil {
			return nil, fmt.Errorf("failed to insert qualification %q: %w", qual.Title, err)
		}
	}

	row.Person.PersonID = person.PersonID
	row.Faculty.FacultyID = faculty.FacultyID
	row.Faculty.Code = faculty.Code
	return dups, nil
}

// resolveDesignation reuses the (title, type) row when one exists and
// creates it otherwise. The designation table is append-only; rows created
// here survive even when the requesting person group rolls back.
func (r *hrImportRepository) resolveDesignation(tx *gorm.DB, keys *keyset, title string, kind domain.DesignationType) (int, error) {
	if id, ok := keys.designationID(title, kind); ok {
		return id, nil
	}

	var existing domain.Designation
	err := tx.Where("title = ? AND type = ?", title, kind).First(&existing).Error
	if err == nil {
		keys.addDesignation(title, kind, existing.DesignationID)
		return existing.DesignationID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	created := domain.Designation{Title: title, Type: kind}
	if err := tx.Create(&created).Error; err != nil {
		return 0, err
	}
	keys.addDesignation(title, kind, created.DesignationID)
	return created.DesignationID, nil
}

// loadExistingKeys pre-fetches every unique key currently in storage.
// Failure here is fatal for the import: without the sets the dedup
// guarantees cannot hold.
func (r *hrImportRepository) loadExistingKeys(ctx context.Context) (*keyset, error) {
	keys := newKeyset()

	var cnics []string
	if err := r.db.WithContext(ctx).Model(&domain.Person{}).Where("cnic IS NOT NULL AND cnic != ''").Pluck("cnic", &cnics).Error; err != nil {
		return nil, fmt.Errorf("failed to load person CNICs: %w", err)
	}
	for _, c := range cnics {
		keys.cnics[strings.TrimSpace(r.cipher.Decrypt(c))] = struct{}{}
	}

	var faculties []domain.Faculty
	if err := r.db.WithContext(ctx).Select("code", "university_email").Find(&faculties).Error; err != nil {
		return nil, fmt.Errorf("failed to load faculty keys: %w", err)
	}
	for _, f := range faculties {
		keys.codes[f.Code] = struct{}{}
		if f.UniversityEmail != nil {
			keys.emails[strings.ToLower(*f.UniversityEmail)] = struct{}{}
		}
	}

	var quals []domain.Qualification
	if err := r.db.WithContext(ctx).Select("person_id", "title").Find(&quals).Error; err != nil {
		return nil, fmt.Errorf("failed to load qualification keys: %w", err)
	}
	for _, q := range quals {
		keys.quals[qualKey{personID: q.PersonID, title: q.Title}] = struct{}{}
	}

	var designations []domain.Designation
	if err := r.db.WithContext(ctx).Find(&designations).Error; err != nil {
		return nil, fmt.Errorf("failed to load designations: %w", err)
	}
	for _, d := range designations {
		keys.addDesignation(d.Title, d.Type, d.DesignationID)
	}

	return keys, nil
}

func identifyingKey(row *domain.ImportRow) string {
	if cnic := strings.TrimSpace(row.Person.CNIC); cnic != "" {
		return cnic
	}
	if row.Faculty.Code != 0 {
		return strconv.Itoa(row.Faculty.Code)
	}
	return "row " + strconv.Itoa(row.SourceRow)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
