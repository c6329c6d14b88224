package shoprepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres"
	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/shoprepo"
	"github.com/daniel06264831/menuia/internal/core/domain/model/kernel"
	"github.com/daniel06264831/menuia/internal/core/domain/model/shop"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ShopRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *shoprepo.GormShopRepository
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupSuite() {
	if testing.Short() {
		suite.T().Skip("integration test")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
	suite.repository = shoprepo.NewGormShopRepository(db)
}

func (suite *ShopRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shops").Error)
}

func (suite *ShopRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAdd_ThenGet() {
	ctx := context.Background()
	hours, err := shop.NewHours("09:00", "22:00")
	suite.Require().NoError(err)
	s, err := shop.NewShop("tacos-el-guero", "Tacos El Güero", "hash", kernel.MustNewGeoPoint(20.0, -100.0), hours, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, "Tacos-El-Guero")
	suite.Require().NoError(err)
	suite.Equal("Tacos El Güero", got.Name())
	suite.Equal(hours, got.Hours())
	suite.True(got.IsOpen())
	suite.True(got.Location().IsEqual(s.Location()))
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAdd_WithoutLocation() {
	ctx := context.Background()
	s, err := shop.NewShop("sushi", "Sushi", "hash", kernel.GeoPoint{}, shop.Hours{}, time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, s))

	got, err := suite.repository.Get(ctx, "sushi")
	suite.Require().NoError(err)
	suite.False(got.Location().IsValid())
}

func (suite *ShopRepositoryIntegrationTestSuite) TestAdd_DuplicateSlug_ReturnsConflict() {
	ctx := context.Background()
	s, err := shop.NewShop("sushi", "Sushi", "hash", kernel.GeoPoint{}, shop.Hours{}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, s))

	err = suite.repository.Add(ctx, s)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *ShopRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), "nope")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestShopRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShopRepositoryIntegrationTestSuite))
}
