package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LicenseRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       LicenseRepository
	partnerID1 uuid.UUID
	partnerID2 uuid.UUID
	licenseID  uuid.UUID
	context    context.Context
}

func (suite *LicenseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewLicenseRepository(mock)
	suite.partnerID1 = uuid.New()
	suite.partnerID2 = uuid.New()
	suite.licenseID = uuid.New()
	suite.context = context.Background()
}

func (suite *LicenseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestLicenseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(LicenseRepoTestSuite))
}

func (suite *LicenseRepoTestSuite) TestCreate_Success() {
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      suite.partnerID1,
		ActivationCode: "KSR-AAAA-BBBB",
	}

	suite.mock.ExpectExec(`
		INSERT INTO licenses \(id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\), NOW\(\)\)
	`).WithArgs(license.ID, license.PartnerID, license.ActivationCode, "", "", (*uuid.UUID)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, license)
	assert.NoError(suite.T(), err)
}

func (suite *LicenseRepoTestSuite) TestCreate_DatabaseError() {
	license := &models.License{
		ID:             uuid.New(),
		PartnerID:      suite.partnerID1,
		ActivationCode: "KSR-CCCC-DDDD",
	}

	suite.mock.ExpectExec(`
		INSERT INTO licenses \(id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\), NOW\(\)\)
	`).WithArgs(license.ID, license.PartnerID, license.ActivationCode, "", "", (*uuid.UUID)(nil)).
		WillReturnError(errors.New("database connection failed"))

	err := suite.repo.Create(suite.context, license)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "database connection failed")
}

func (suite *LicenseRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	branchID := uuid.New()

	suite.mock.ExpectQuery(`
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = \$1 AND id = \$2
	`).WithArgs(suite.partnerID1, suite.licenseID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "partner_id", "activation_code", "device_id", "device_name", "branch_id", "created_at", "updated_at"}).
			AddRow(suite.licenseID, suite.partnerID1, "KSR-EEEE-FFFF", "", "", &branchID, now, now))

	result, err := suite.repo.GetByID(suite.context, suite.partnerID1, suite.licenseID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.licenseID, result.ID)
	assert.Equal(suite.T(), "KSR-EEEE-FFFF", result.ActivationCode)
	assert.Equal(suite.T(), branchID, *result.BranchID)
	assert.Equal(suite.T(), models.LicenseAssigned, result.DeriveStatus())
}

func (suite *LicenseRepoTestSuite) TestGetByID_WrongPartner() {
	suite.mock.ExpectQuery(`
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = \$1 AND id = \$2
	`).WithArgs(suite.partnerID2, suite.licenseID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, suite.partnerID2, suite.licenseID)
	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), result)
}

func (suite *LicenseRepoTestSuite) TestGetByActivationCode_Success() {
	now := time.Now()

	suite.mock.ExpectQuery(`
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE activation_code = \$1
	`).WithArgs("KSR-GGGG-HHHH").
		WillReturnRows(pgxmock.NewRows([]string{"id", "partner_id", "activation_code", "device_id", "device_name", "branch_id", "created_at", "updated_at"}).
			AddRow(suite.licenseID, suite.partnerID1, "KSR-GGGG-HHHH", "dev-42", "Kasir Depan", nil, now, now))

	result, err := suite.repo.GetByActivationCode(suite.context, "KSR-GGGG-HHHH")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "dev-42", result.DeviceID)
	assert.Equal(suite.T(), models.LicenseActive, result.DeriveStatus())
}

func (suite *LicenseRepoTestSuite) TestAssignBranch_Success() {
	branchID := uuid.New()

	suite.mock.ExpectExec(`UPDATE licenses SET branch_id = \$1, updated_at = NOW\(\) WHERE partner_id = \$2 AND id = \$3`).
		WithArgs(&branchID, suite.partnerID1, suite.licenseID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.AssignBranch(suite.context, suite.partnerID1, suite.licenseID, &branchID)
	assert.NoError(suite.T(), err)
}

func (suite *LicenseRepoTestSuite) TestResetDevice_Success() {
	suite.mock.ExpectExec(`UPDATE licenses SET device_id = '', device_name = '', updated_at = NOW\(\) WHERE partner_id = \$1 AND id = \$2`).
		WithArgs(suite.partnerID1, suite.licenseID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.ResetDevice(suite.context, suite.partnerID1, suite.licenseID)
	assert.NoError(suite.T(), err)
}

func (suite *LicenseRepoTestSuite) TestList_Success() {
	limit, offset := 10, 0
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "partner_id", "activation_code", "device_id", "device_name", "branch_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.partnerID1, "KSR-0001", "", "", nil, now, now).
		AddRow(uuid.New(), suite.partnerID1, "KSR-0002", "dev-7", "Kasir Belakang", nil, now, now)

	suite.mock.ExpectQuery(`
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = \$1
		ORDER BY created_at DESC
		LIMIT \$2 OFFSET \$3
	`).WithArgs(suite.partnerID1, limit, offset).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.partnerID1, limit, offset)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), "KSR-0001", result[0].ActivationCode)
	assert.Equal(suite.T(), models.LicensePending, result[0].DeriveStatus())
	assert.Equal(suite.T(), models.LicenseActive, result[1].DeriveStatus())
}

func (suite *LicenseRepoTestSuite) TestList_EmptyResult() {
	limit, offset := 5, 0

	rows := pgxmock.NewRows([]string{"id", "partner_id", "activation_code", "device_id", "device_name", "branch_id", "created_at", "updated_at"})

	suite.mock.ExpectQuery(`
		SELECT id, partner_id, activation_code, device_id, device_name, branch_id, created_at, updated_at
		FROM licenses
		WHERE partner_id = \$1
		ORDER BY created_at DESC
		LIMIT \$2 OFFSET \$3
	`).WithArgs(suite.partnerID1, limit, offset).
		WillReturnRows(rows)

	result, err := suite.repo.List(suite.context, suite.partnerID1, limit, offset)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
}

func (suite *LicenseRepoTestSuite) TestCountByPartner() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM licenses WHERE partner_id = \$1`).
		WithArgs(suite.partnerID1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	count, err := suite.repo.CountByPartner(suite.context, suite.partnerID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, count)
}

func (suite *LicenseRepoTestSuite) TestCountBoundByPartner() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM licenses WHERE partner_id = \$1 AND device_id <> ''`).
		WithArgs(suite.partnerID1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := suite.repo.CountBoundByPartner(suite.context, suite.partnerID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, count)
}

func (suite *LicenseRepoTestSuite) TestDelete_WrongPartner() {
	suite.mock.ExpectExec(`DELETE FROM licenses WHERE partner_id = \$1 AND id = \$2`).
		WithArgs(suite.partnerID2, suite.licenseID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.partnerID2, suite.licenseID)
	assert.NoError(suite.T(), err)
}
