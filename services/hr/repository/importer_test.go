package repository

import (
	"context"
	"io"
	"ohcm/config"
	"ohcm/domain"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newMockRepo wires the repository to a mocked SQL connection so the
// transaction and savepoint flow can be asserted statement by statement.
func newMockRepo(t *testing.T) (*hrImportRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	return &hrImportRepository{
		db:     gdb,
		cipher: config.NewCNICCipher(),
		log:    testLogger(),
	}, mock
}

func expectEmptyKeyPrefetch(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT "cnic" FROM "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"cnic"}))
	mock.ExpectQuery(`FROM "faculty"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "university_email"}))
	mock.ExpectQuery(`FROM "qualification"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "title"}))
	mock.ExpectQuery(`FROM "designation"`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "title", "type"}))
}

func importRow(sourceRow int, cnic string, code int) domain.ImportRow {
	return domain.ImportRow{
		SourceRow: sourceRow,
		Person: domain.Person{
			FirstName: "Ayesha",
			LastName:  "Khan",
			CNIC:      cnic,
		},
		Faculty: domain.Faculty{
			Code:   code,
			Title:  "Lecturer",
			Status: "Active",
		},
		AcademicTitle:       "Unknown",
		AdministrativeTitle: "Unknown",
	}
}

func TestImportFacultyRollsBackOnlyTheCollidingGroup(t *testing.T) {
	t.Setenv("CNIC_SECRET_KEY", "")
	repo, mock := newMockRepo(t)

	first := importRow(2, "35202-1111111-1", 1001)
	second := importRow(3, "35202-2222222-2", 1002)
	second.Qualifications = []domain.Qualification{{Category: "Educational", Title: "MBA"}}

	expectEmptyKeyPrefetch(mock)
	mock.ExpectBegin()

	// First group hits the faculty code constraint inside its savepoint
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "faculty"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "faculty_code_key"})
	mock.ExpectExec(`ROLLBACK TO SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))

	// Second group still goes through
	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id"}).AddRow(2))
	mock.ExpectQuery(`INSERT INTO "faculty"`).
		WillReturnRows(sqlmock.NewRows([]string{"faculty_id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "qualification"`).
		WillReturnRows(sqlmock.NewRows([]string{"qualification_id"}).AddRow(1))
	mock.ExpectCommit()

	report, err := repo.ImportFaculty(context.Background(), []domain.ImportRow{first, second})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 2, report.Total)
	require.Len(t, report.SkippedEntries, 1)
	assert.Equal(t, 2, report.SkippedEntries[0].Row)
	assert.Equal(t, "35202-1111111-1", report.SkippedEntries[0].Key)
	assert.Equal(t, domain.SkipDuplicateKey, report.SkippedEntries[0].Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportFacultyReImportSkipsEverything(t *testing.T) {
	t.Setenv("CNIC_SECRET_KEY", "")
	repo, mock := newMockRepo(t)

	rows := []domain.ImportRow{
		importRow(2, "35202-1111111-1", 1001),
		importRow(3, "35202-2222222-2", 1002),
	}

	// Both CNICs already persisted: every row is partitioned out before any
	// insert, so the transaction opens and commits without touching a table
	mock.ExpectQuery(`SELECT "cnic" FROM "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"cnic"}).
			AddRow("35202-1111111-1").
			AddRow("35202-2222222-2"))
	mock.ExpectQuery(`FROM "faculty"`).
		WillReturnRows(sqlmock.NewRows([]string{"code", "university_email"}).
			AddRow(1001, nil).
			AddRow(1002, nil))
	mock.ExpectQuery(`FROM "qualification"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "title"}))
	mock.ExpectQuery(`FROM "designation"`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "title", "type"}))
	mock.ExpectBegin()
	mock.ExpectCommit()

	report, err := repo.ImportFaculty(context.Background(), rows)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Processed)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 2, report.Total)
	for _, entry := range report.SkippedEntries {
		assert.Equal(t, domain.SkipDuplicateCNIC, entry.Reason)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportFacultyResolvesDesignationsAndTagsDuplicateQualifications(t *testing.T) {
	t.Setenv("CNIC_SECRET_KEY", "")
	repo, mock := newMockRepo(t)

	row := importRow(2, "35202-1111111-1", 1001)
	row.AcademicTitle = "Lecturer"
	row.AdministrativeTitle = "Registrar"
	row.Qualifications = []domain.Qualification{
		{Category: "Educational", Title: "MBA"},
		{Category: "Educational", Title: "MBA"},
	}

	expectEmptyKeyPrefetch(mock)
	mock.ExpectBegin()

	// Both designation titles are created before the person's savepoint
	mock.ExpectQuery(`SELECT \* FROM "designation" WHERE title`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "title", "type"}))
	mock.ExpectQuery(`INSERT INTO "designation"`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id"}).AddRow(5))
	mock.ExpectQuery(`SELECT \* FROM "designation" WHERE title`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id", "title", "type"}))
	mock.ExpectQuery(`INSERT INTO "designation"`).
		WillReturnRows(sqlmock.NewRows([]string{"designation_id"}).AddRow(6))

	mock.ExpectExec(`SAVEPOINT`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`INSERT INTO "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "faculty"`).
		WillReturnRows(sqlmock.NewRows([]string{"faculty_id"}).AddRow(1))
	// The repeated title inserts once
	mock.ExpectQuery(`INSERT INTO "qualification"`).
		WillReturnRows(sqlmock.NewRows([]string{"qualification_id"}).AddRow(1))
	mock.ExpectCommit()

	report, err := repo.ImportFaculty(context.Background(), []domain.ImportRow{row})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, report.SkippedEntries, 1)
	assert.Equal(t, 2, report.SkippedEntries[0].Row)
	assert.Equal(t, "MBA", report.SkippedEntries[0].Key)
	assert.Equal(t, domain.SkipDuplicateQualification, report.SkippedEntries[0].Reason)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportFacultyPrefetchFailureIsFatal(t *testing.T) {
	t.Setenv("CNIC_SECRET_KEY", "")
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT "cnic" FROM "person"`).
		WillReturnError(assert.AnError)

	report, err := repo.ImportFaculty(context.Background(), []domain.ImportRow{importRow(2, "35202-1111111-1", 1001)})
	require.Error(t, err)
	assert.Nil(t, report)

	var impErr *domain.ImportError
	require.ErrorAs(t, err, &impErr)
	assert.Equal(t, domain.StageDatabase, impErr.Stage)
	assert.Equal(t, domain.CategoryStorage, impErr.Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllFacultyDecryptsCNICAndDerivesAge(t *testing.T) {
	t.Setenv("CNIC_SECRET_KEY", "unit-secret")
	repo, mock := newMockRepo(t)

	sealed := repo.cipher.Encrypt("35202-1111111-1")

	mock.ExpectQuery(`SELECT \* FROM "faculty"`).
		WillReturnRows(sqlmock.NewRows([]string{"faculty_id", "code", "title", "status", "person_id", "designation_id"}).
			AddRow(1, 1001, "Lecturer", "Active", 1, nil).
			AddRow(2, 1002, "Professor", "Active", 2, nil))
	mock.ExpectQuery(`SELECT \* FROM "person"`).
		WillReturnRows(sqlmock.NewRows([]string{"person_id", "first_name", "last_name", "cnic", "dob"}).
			AddRow(1, "Ayesha", "Khan", sealed, time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)).
			AddRow(2, "Bilal", "Ahmed", "", time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)))

	result, err := repo.GetAllFaculty(context.Background())
	require.NoError(t, err)
	faculties := *result
	require.Len(t, faculties, 2)

	require.NotNil(t, faculties[0].Person)
	assert.Equal(t, "35202-1111111-1", faculties[0].Person.CNIC)
	require.NotNil(t, faculties[0].Person.Age)
	assert.GreaterOrEqual(t, *faculties[0].Person.Age, 25)

	// The sentinel date of birth yields no age
	require.NotNil(t, faculties[1].Person)
	assert.Nil(t, faculties[1].Person.Age)

	assert.NoError(t, mock.ExpectationsWereMet())
}
