package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/DealLens/internal/domain/deal"
	"github.com/turtacn/DealLens/internal/infrastructure/database/postgres"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/DealLens/pkg/errors"
)

type OutcomeRepoTestSuite struct {
	suite.Suite
	db   *sql.DB
	mock sqlmock.Sqlmock
	repo *OutcomeRepository
}

func (s *OutcomeRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	log := logging.NewNopLogger()
	s.repo = NewOutcomeRepository(postgres.NewConnectionWithDB(s.db, log), log)
}

func (s *OutcomeRepoTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *OutcomeRepoTestSuite) outcome() deal.Outcome {
	return deal.NewOutcome("org-42", &deal.Record{
		CompanyName: deal.StringPtr("Fjord Energy"),
		RevenueM:    deal.Float64Ptr(80),
		Sector:      deal.SectorEnergy,
		Geography:   deal.GeographyEurope,
	})
}

func (s *OutcomeRepoTestSuite) TestInsert_Success() {
	o := s.outcome()
	s.mock.ExpectQuery("INSERT INTO deal_outcomes").
		WithArgs(
			"org-42", "Energy", "Europe", "acquisition",
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "€50-100M", "prospect",
			"Company: Fjord Energy", true, false,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(17)))

	id, err := s.repo.Insert(context.Background(), o)
	s.Require().NoError(err)
	s.Equal(int64(17), id)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OutcomeRepoTestSuite) TestInsert_DatabaseError() {
	s.mock.ExpectQuery("INSERT INTO deal_outcomes").
		WillReturnError(errors.New("relation does not exist"))

	_, err := s.repo.Insert(context.Background(), s.outcome())
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *OutcomeRepoTestSuite) TestInsert_MissingOrganization() {
	o := s.outcome()
	o.OrganizationID = ""
	_, err := s.repo.Insert(context.Background(), o)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeBadRequest))
}

func (s *OutcomeRepoTestSuite) TestInsert_BadDate() {
	o := s.outcome()
	o.FirstContactDate = "01/01/2020"
	_, err := s.repo.Insert(context.Background(), o)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation))
}

func TestOutcomeRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OutcomeRepoTestSuite))
}

//Personal.AI order the ending
