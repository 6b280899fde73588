package queries_test

import (
	"context"
	"testing"
	"time"

	"ineed/internal/core/application/usecases/queries"
	"ineed/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListRequestsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListRequestsQueryHandler
}

func (suite *ListRequestsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgis/postgis:15-3.4-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.Exec(`
		CREATE EXTENSION IF NOT EXISTS postgis;
		CREATE TABLE requests (
			id uuid PRIMARY KEY,
			owner_id uuid NOT NULL,
			title text NOT NULL,
			description text NOT NULL,
			category text NOT NULL,
			type text NOT NULL,
			location geography(Point, 4326) NOT NULL,
			budget numeric,
			is_active boolean NOT NULL DEFAULT true,
			created_at timestamptz NOT NULL DEFAULT now()
		);
		CREATE INDEX requests_location_idx ON requests USING gist (location);
		CREATE TABLE orders (
			id uuid PRIMARY KEY,
			request_id uuid NOT NULL REFERENCES requests (id),
			client_id uuid NOT NULL,
			provider_id uuid,
			final_value numeric,
			status text NOT NULL
		);
	`).Error
	suite.Require().NoError(err)

	suite.handler = queries.NewListRequestsQueryHandler(db)
}

func (suite *ListRequestsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListRequestsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, requests CASCADE").Error
	suite.Require().NoError(err)
}

// seedRequest inserts an active request and its order at the given point.
func (suite *ListRequestsQueryHandlerTestSuite) seedRequest(
	title, category, reqType string,
	lat, lng float64,
	active bool,
) kernel.UUID {
	requestID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	ownerID := kernel.NewUUID()

	err := suite.db.Exec(`
		INSERT INTO requests (id, owner_id, title, description, category, type, location, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography, ?)
	`, requestID.String(), ownerID.String(), title, title+" description",
		category, reqType, lng, lat, active).Error
	suite.Require().NoError(err)

	err = suite.db.Exec(`
		INSERT INTO orders (id, request_id, client_id, status) VALUES (?, ?, ?, 'Active')
	`, orderID.String(), requestID.String(), ownerID.String()).Error
	suite.Require().NoError(err)

	return requestID
}

func (suite *ListRequestsQueryHandlerTestSuite) TestHandle_GeoRadius() {
	// São Paulo center, one in range, one ~2 km north, one inactive in range.
	inRange := suite.seedRequest("close by", "home-repair", "service", -23.5505, -46.6333, true)
	suite.seedRequest("too far", "home-repair", "service", -23.5325, -46.6333, true)
	suite.seedRequest("withdrawn", "home-repair", "service", -23.5505, -46.6333, false)

	query, err := queries.NewListRequestsQuery(
		floatPtr(-23.5505), floatPtr(-46.6333), floatPtr(1000), "", "", "", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(inRange))
	suite.Require().NotNil(result[0].DistanceMeters)
	suite.Less(*result[0].DistanceMeters, 10.0)
}

func (suite *ListRequestsQueryHandlerTestSuite) TestHandle_OrdersByDistance() {
	far := suite.seedRequest("farther", "tools", "product", -23.5560, -46.6333, true)
	near := suite.seedRequest("nearer", "tools", "product", -23.5510, -46.6333, true)

	query, err := queries.NewListRequestsQuery(
		floatPtr(-23.5505), floatPtr(-46.6333), floatPtr(5000), "", "", "", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(near))
	suite.True(result[1].ID.IsEqual(far))
}

func (suite *ListRequestsQueryHandlerTestSuite) TestHandle_ConjunctiveFilters() {
	match := suite.seedRequest("leaking sink", "home-repair", "service", -23.5505, -46.6333, true)
	suite.seedRequest("leaking sink", "gardening", "service", -23.5505, -46.6333, true)
	suite.seedRequest("fence paint", "home-repair", "service", -23.5505, -46.6333, true)

	query, err := queries.NewListRequestsQuery(
		floatPtr(-23.5505), floatPtr(-46.6333), floatPtr(1000),
		"home-repair", "service", "SINK", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(match))
}

func (suite *ListRequestsQueryHandlerTestSuite) TestHandle_RecencyModeWithoutGeo() {
	suite.seedRequest("first", "tools", "product", -23.5505, -46.6333, true)
	// Distinct created_at for a stable order.
	time.Sleep(10 * time.Millisecond)
	second := suite.seedRequest("second", "tools", "product", 40.7128, -74.0060, true)

	query, err := queries.NewListRequestsQuery(nil, nil, nil, "", "", "", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(second))
	suite.Nil(result[0].DistanceMeters)
}

func (suite *ListRequestsQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	query, err := queries.NewListRequestsQuery(nil, nil, nil, "", "", "", 0)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func TestListRequestsQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ListRequestsQueryHandlerTestSuite))
}
