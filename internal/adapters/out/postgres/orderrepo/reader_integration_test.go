package orderrepo_test

import (
	"context"
	"time"

	"github.com/daniel06264831/menuia/internal/adapters/out/postgres/orderrepo"
	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/core/domain/model/order"
)

func (suite *OrderRepositoryIntegrationTestSuite) TestReader_ListByShop_RangeAndLimit() {
	ctx := context.Background()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	suite.addOrder("tacos", "4430000001", order.PaymentCash, day.Add(-time.Hour))
	first := suite.addOrder("tacos", "4430000002", order.PaymentCash, day.Add(time.Hour))
	second := suite.addOrder("tacos", "4430000003", order.PaymentCash, day.Add(2*time.Hour))
	suite.addOrder("burgers", "4430000004", order.PaymentCash, day.Add(time.Hour))

	reader := orderrepo.NewGormOrderReader(suite.db)

	got, err := reader.ListByShop(ctx, "tacos", day, day.Add(24*time.Hour), 100)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.True(got[0].IsEqual(second))
	suite.True(got[1].IsEqual(first))

	limited, err := reader.ListByShop(ctx, "tacos", time.Time{}, time.Time{}, 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.True(limited[0].IsEqual(second))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestReader_ThroughQueryHandlers() {
	ctx := context.Background()
	active := suite.addOrder("tacos", "4431234567", order.PaymentCash, placedAt)

	done := suite.addOrder("tacos", "4431234567", order.PaymentCard, placedAt)
	suite.Require().NoError(done.Cancel(placedAt))
	suite.Require().NoError(suite.repository.Update(ctx, done))

	reader := orderrepo.NewGormOrderReader(suite.db)

	query, err := queries.NewGetCustomerActiveOrdersQuery("+52 443 123 4567")
	suite.Require().NoError(err)
	views, err := queries.NewGetCustomerActiveOrdersQueryHandler(reader).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(views)

	query, err = queries.NewGetCustomerActiveOrdersQuery("443 123 4567")
	suite.Require().NoError(err)
	views, err = queries.NewGetCustomerActiveOrdersQueryHandler(reader).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(views, 1)
	suite.Equal(active.ID(), views[0].ID)
	suite.Equal("pending_assignment", views[0].DeliveryStatus)
	suite.Equal("Taco", views[0].Items[0].Name)
}
