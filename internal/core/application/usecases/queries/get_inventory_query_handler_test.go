package queries_test

import (
	"context"
	"testing"
	"time"

	"nexus/internal/adapters/out/postgres/productrepo"
	"nexus/internal/core/application/usecases/queries"
	"nexus/internal/core/domain/model/kernel"
	"nexus/internal/core/domain/model/product"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetInventoryQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetInventoryQueryHandler
}

func (suite *GetInventoryQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&productrepo.ProductDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetInventoryQueryHandler(db)
}

func (suite *GetInventoryQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetInventoryQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE products").Error
	suite.Require().NoError(err)
}

func (suite *GetInventoryQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetInventoryQuery("")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetInventoryQueryHandlerTestSuite) TestHandle_FullCatalog_OrderedByName() {
	suite.saveProduct("SKU-C", "Teh Hijau 500g", 25)
	suite.saveProduct("SKU-A", "Beras Premium 5kg", 4)
	suite.saveProduct("SKU-B", "Kopi Arabica 1kg", 0)

	query := queries.NewGetInventoryQuery("")

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal("Beras Premium 5kg", result[0].Name)
	suite.Equal("low_stock", result[0].Status)

	suite.Equal("Kopi Arabica 1kg", result[1].Name)
	suite.Equal("out_of_stock", result[1].Status)

	suite.Equal("Teh Hijau 500g", result[2].Name)
	suite.Equal("active", result[2].Status)
}

func (suite *GetInventoryQueryHandlerTestSuite) TestHandle_SearchMatchesNameOrSKU() {
	suite.saveProduct("SKU-KOPI", "Kopi Arabica 1kg", 25)
	suite.saveProduct("SKU-TEH", "Teh Hijau 500g", 25)

	byName, err := suite.handler.Handle(context.Background(), queries.NewGetInventoryQuery("kopi"))
	suite.Require().NoError(err)
	suite.Require().Len(byName, 1)
	suite.Equal("SKU-KOPI", byName[0].SKU)

	bySKU, err := suite.handler.Handle(context.Background(), queries.NewGetInventoryQuery("sku-teh"))
	suite.Require().NoError(err)
	suite.Require().Len(bySKU, 1)
	suite.Equal("Teh Hijau 500g", bySKU[0].Name)

	none, err := suite.handler.Handle(context.Background(), queries.NewGetInventoryQuery("gula"))
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *GetInventoryQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetInventoryQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetInventoryQuery constructor")
}

func (suite *GetInventoryQueryHandlerTestSuite) saveProduct(sku, name string, stock int) {
	suite.T().Helper()

	aggregate, err := product.NewProduct(kernel.NewUUID(), sku, name, stock, 100000, "A-01")
	suite.Require().NoError(err)

	dto := productrepo.ProductDTO{
		ID:        aggregate.ID().Bytes(),
		SKU:       aggregate.SKU(),
		Name:      aggregate.Name(),
		Stock:     aggregate.Stock(),
		UnitPrice: aggregate.UnitPrice(),
		Location:  aggregate.Location(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func TestGetInventoryQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetInventoryQueryHandlerTestSuite))
}
