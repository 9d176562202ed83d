package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DanielPopoola/storefront-checkout/internal/application"
	"github.com/DanielPopoola/storefront-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/storefront-checkout/internal/domain"
	"github.com/DanielPopoola/storefront-checkout/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/suite"
)

var _ application.OrphanLedger = (*postgres.OrphanRepository)(nil)

type OrphanRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDatabase
	repo   *postgres.OrphanRepository
}

func TestOrphanRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrphanRepositoryTestSuite))
}

// SetupSuite runs once before all tests
func (suite *OrphanRepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.repo = postgres.NewOrphanRepository(suite.testDB.DB)
}

// TearDownSuite runs once after all tests
func (suite *OrphanRepositoryTestSuite) TearDownSuite() {
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

// SetupTest runs before each test
func (suite *OrphanRepositoryTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func newOrphan(orderID string, createdAt time.Time) *domain.OrphanedOrder {
	return &domain.OrphanedOrder{
		OrderID:        orderID,
		Environment:    domain.EnvSandbox,
		LocationID:     "L1",
		AmountCents:    5000,
		Currency:       "USD",
		ReferenceID:    "av-1234abcd",
		BuyerEmail:     "ada@example.com",
		FailureDetails: `{"errors":[{"code":"CARD_DECLINED"}]}`,
		CreatedAt:      createdAt,
	}
}

func (suite *OrphanRepositoryTestSuite) Test_RecordAndFind() {
	ctx := context.Background()
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	suite.Require().NoError(suite.repo.RecordOrphan(ctx, newOrphan("O1", createdAt)))

	found, err := suite.repo.FindByOrderID(ctx, "O1")
	suite.Require().NoError(err)
	suite.Equal(newOrphan("O1", createdAt), found)
}

func (suite *OrphanRepositoryTestSuite) Test_RecordTwiceKeepsFirst() {
	ctx := context.Background()
	first := newOrphan("O1", time.Now().UTC().Truncate(time.Microsecond))
	second := newOrphan("O1", time.Now().UTC().Truncate(time.Microsecond))
	second.FailureDetails = "timeout"

	suite.Require().NoError(suite.repo.RecordOrphan(ctx, first))
	suite.Require().NoError(suite.repo.RecordOrphan(ctx, second))

	found, err := suite.repo.FindByOrderID(ctx, "O1")
	suite.Require().NoError(err)
	suite.Equal(first.FailureDetails, found.FailureDetails)
}

func (suite *OrphanRepositoryTestSuite) Test_ListUnresolvedOldestFirst() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	suite.Require().NoError(suite.repo.RecordOrphan(ctx, newOrphan("O-new", base.Add(time.Hour))))
	suite.Require().NoError(suite.repo.RecordOrphan(ctx, newOrphan("O-old", base)))
	suite.Require().NoError(suite.repo.RecordOrphan(ctx, newOrphan("O-done", base.Add(-time.Hour))))
	suite.Require().NoError(suite.repo.MarkResolved(ctx, "O-done", domain.ResolutionCanceled))

	orphans, err := suite.repo.ListUnresolved(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(orphans, 2)
	suite.Equal("O-old", orphans[0].OrderID)
	suite.Equal("O-new", orphans[1].OrderID)

	limited, err := suite.repo.ListUnresolved(ctx, 1)
	suite.Require().NoError(err)
	suite.Len(limited, 1)
}

func (suite *OrphanRepositoryTestSuite) Test_MarkResolved() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.RecordOrphan(ctx, newOrphan("O1", time.Now().UTC())))

	suite.Require().NoError(suite.repo.MarkResolved(ctx, "O1", domain.ResolutionPaid))

	found, err := suite.repo.FindByOrderID(ctx, "O1")
	suite.Require().NoError(err)
	suite.Equal(domain.ResolutionPaid, found.Resolution)
	suite.NotNil(found.ResolvedAt)

	err = suite.repo.MarkResolved(ctx, "O1", domain.ResolutionPaid)
	suite.ErrorIs(err, postgres.ErrOrphanNotFound)
}

func (suite *OrphanRepositoryTestSuite) Test_FindUnknownOrder() {
	_, err := suite.repo.FindByOrderID(context.Background(), "missing")
	suite.ErrorIs(err, postgres.ErrOrphanNotFound)
}
