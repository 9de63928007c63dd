package queries_test

import (
	"context"
	"testing"
	"time"

	"cargolink/internal/adapters/out/postgres/parcelrepo"
	"cargolink/internal/adapters/out/postgres/shipmentrepo"
	"cargolink/internal/core/application/usecases/queries"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetDriverTasksQueryHandlerTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	handler      queries.GetDriverTasksQueryHandler
	parcelRepo   *parcelrepo.GormParcelRepository
	shipmentRepo *shipmentrepo.GormShipmentRepository
}

func (suite *GetDriverTasksQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &shipmentrepo.ShipmentDTO{}, &shipmentrepo.ShipmentMemberDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetDriverTasksQueryHandler(db)
	suite.parcelRepo = parcelrepo.NewGormParcelRepository(db, &mockAggregateTracker{})
	suite.shipmentRepo = shipmentrepo.NewGormShipmentRepository(db, &mockAggregateTracker{})
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetDriverTasksQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, shipments, shipment_members CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetDriverTasksQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TestHandle_ConsolidationFoldsIntoOneTask() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	shipmentID := suite.seedShipment(ctx, customerID, "CS-GROUP1", shipment.Dispatched,
		suite.seedParcel(ctx, customerID, "CL-AAA111", parcel.Dispatched, nil),
	)
	suite.attachToShipment(shipmentID, "CL-AAA111")

	suite.seedParcel(ctx, customerID, "CL-BBB222", parcel.Dispatched, &shipmentID)
	suite.seedParcel(ctx, customerID, "CL-CCC333", parcel.InTransit, &shipmentID)

	// Standalone parcel alongside the consolidation
	suite.seedParcel(ctx, customerID, "CL-DDD444", parcel.OutForDelivery, nil)

	query := queries.NewGetDriverTasksQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Require().NotNil(result[0].ShipmentID)
	suite.Equal(shipmentID, *result[0].ShipmentID)
	suite.Equal("CS-GROUP1", result[0].ShipmentCode)
	suite.Equal([]string{"CL-AAA111", "CL-BBB222", "CL-CCC333"}, result[0].TrackingCodes)
	suite.Equal(3, result[0].Count)

	suite.Nil(result[1].ShipmentID)
	suite.Empty(result[1].ShipmentCode)
	suite.Equal([]string{"CL-DDD444"}, result[1].TrackingCodes)
	suite.Equal(1, result[1].Count)
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TestHandle_DeliveredShipment_IsSkipped() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	shipmentID := suite.seedShipment(ctx, customerID, "CS-DONE01", shipment.Delivered,
		suite.seedParcel(ctx, customerID, "CL-AAA111", parcel.InTransit, nil),
	)
	// Stale row still referencing the delivered shipment
	suite.attachToShipment(shipmentID, "CL-AAA111")

	query := queries.NewGetDriverTasksQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TestHandle_WarehouseParcels_AreIgnored() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	suite.seedParcel(ctx, customerID, "CL-AAA111", parcel.InWarehouse, nil)
	suite.seedParcel(ctx, customerID, "CL-BBB222", parcel.Paid, nil)
	suite.seedParcel(ctx, customerID, "CL-CCC333", parcel.Delivered, nil)

	query := queries.NewGetDriverTasksQuery()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetDriverTasksQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetDriverTasksQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetDriverTasksQuery constructor")
}

// seedParcel persists a parcel in the given status, optionally attached to a
// shipment, and returns its ID.
func (suite *GetDriverTasksQueryHandlerTestSuite) seedParcel(
	ctx context.Context,
	customerID kernel.UUID,
	trackingCode string,
	status parcel.Status,
	shipmentID *kernel.UUID,
) kernel.UUID {
	received := time.Now().UTC().Add(-72 * time.Hour)
	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), customerID,
		trackingCode, "1Z999AA10123456784",
		12, parcel.Dimensions{LengthIn: 14, WidthIn: 10, HeightIn: 8},
		80, true,
		"docs/invoice.pdf", "photos/intake.jpg", "",
		&received, nil,
		shipmentID,
		status,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.parcelRepo.Add(ctx, p))
	return p.ID()
}

// seedShipment persists a shipment holding the given member and returns its ID.
func (suite *GetDriverTasksQueryHandlerTestSuite) seedShipment(
	ctx context.Context,
	customerID kernel.UUID,
	code string,
	status shipment.Status,
	memberID kernel.UUID,
) kernel.UUID {
	sh, err := shipment.RestoreShipment(
		kernel.NewUUID(), customerID,
		code,
		[]kernel.UUID{memberID},
		24, parcel.Dimensions{LengthIn: 16, WidthIn: 12, HeightIn: 10},
		true,
		nil, nil,
		"", "MT-999",
		status,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.shipmentRepo.Add(ctx, sh))
	return sh.ID()
}

// attachToShipment points an already-seeded parcel row at a shipment.
func (suite *GetDriverTasksQueryHandlerTestSuite) attachToShipment(shipmentID kernel.UUID, trackingCode string) {
	err := suite.db.Exec(
		"UPDATE parcels SET shipment_id = ? WHERE tracking_code = ?",
		shipmentID.Bytes(), trackingCode,
	).Error
	suite.Require().NoError(err)
}

func TestGetDriverTasksQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetDriverTasksQueryHandlerTestSuite))
}
