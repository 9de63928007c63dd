package cmd

import (
	"log/slog"

	httpin "cargolink/internal/adapters/in/http"
	"cargolink/internal/adapters/out/distance"
	"cargolink/internal/adapters/out/docstore"
	"cargolink/internal/adapters/out/payment"
	"cargolink/internal/adapters/out/postgres"
	"cargolink/internal/adapters/out/rates"
	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/application/usecases/queries"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/domain/services"
	"cargolink/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, policies, and use case handlers together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	rateService   *rates.Client
	distanceSvc   *distance.Resolver
	gateway       *payment.Gateway
	documents     *docstore.Client
	storagePolicy parcel.StoragePolicy
	feeSchedule   services.FeeScheduleFunc
}

// NewCompositionRoot builds the full object graph from configuration.
// Adapter construction can fail on invalid endpoints, so the error is
// surfaced instead of panicking.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	fallback := rates.HouseFleetOption{
		CarrierCode:   config.HouseCarrierCode,
		CarrierName:   config.HouseCarrierName,
		ServiceLevel:  config.HouseServiceLevel,
		PerPoundRate:  config.HousePerPoundRate,
		MinimumCharge: config.HouseMinimumCharge,
		EstimatedDays: config.HouseEstimatedDays,
	}

	rateService, err := rates.NewClient(config.RatesBaseURL, config.RatesAPIKey, fallback, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	var cache *redis.Client
	if config.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	}

	distanceSvc, err := distance.NewResolver(config.DistanceBaseURL, config.DistanceAPIKey, cache, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	gateway, err := payment.NewGateway(config.PaymentBaseURL, config.PaymentAPIKey, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	documents, err := docstore.NewClient(config.DocStoreBaseURL, config.DocStoreAPIKey, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	// Gross-up: the processor keeps percent of the gross plus a fixed cut,
	// so fee = (net + fixed) / (1 - percent) - net nets the merchant the
	// original amount.
	percent := config.ProcessorPercent
	fixed := config.ProcessorFixed
	feeSchedule := services.FeeScheduleFunc(func(netAmount float64) float64 {
		if netAmount <= 0 || percent >= 1 {
			return 0
		}
		return (netAmount+fixed)/(1-percent) - netAmount
	})

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,

		rateService: rateService,
		distanceSvc: distanceSvc,
		gateway:     gateway,
		documents:   documents,
		storagePolicy: parcel.StoragePolicy{
			FreeDays:  config.StorageFreeDays,
			DailyRate: config.StorageDailyRate,
		},
		feeSchedule: feeSchedule,
	}, nil
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) freightUoWFactory() commands.FreightUoWFactory {
	return FuncFreightUoWFactory(func() commands.FreightUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateReceiveParcelCommandHandler() commands.ReceiveParcelCommandHandler {
	return commands.NewReceiveParcelCommandHandler(c.parcelUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateRecordMeasurementCommandHandler() commands.RecordMeasurementCommandHandler {
	return commands.NewRecordMeasurementCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateAttachInvoiceCommandHandler() commands.AttachInvoiceCommandHandler {
	return commands.NewAttachInvoiceCommandHandler(c.parcelUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateVerifyDeclaredValueCommandHandler() commands.VerifyDeclaredValueCommandHandler {
	return commands.NewVerifyDeclaredValueCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateMarkOutForDeliveryCommandHandler() commands.MarkOutForDeliveryCommandHandler {
	return commands.NewMarkOutForDeliveryCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateCancelParcelCommandHandler() commands.CancelParcelCommandHandler {
	return commands.NewCancelParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateRequestIndividualShippingCommandHandler() commands.RequestIndividualShippingCommandHandler {
	return commands.NewRequestIndividualShippingCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateRequestStorePickupCommandHandler() commands.RequestStorePickupCommandHandler {
	return commands.NewRequestStorePickupCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateCompleteStorePickupCommandHandler() commands.CompleteStorePickupCommandHandler {
	return commands.NewCompleteStorePickupCommandHandler(c.parcelUoWFactory(), c.gateway, c.storagePolicy)
}

func (c *CompositionRoot) CreateSettleStorageDebtCommandHandler() commands.SettleStorageDebtCommandHandler {
	return commands.NewSettleStorageDebtCommandHandler(c.parcelUoWFactory(), c.gateway, c.storagePolicy)
}

func (c *CompositionRoot) CreateFlagStorageDebtsCommandHandler() commands.FlagStorageDebtsCommandHandler {
	return commands.NewFlagStorageDebtsCommandHandler(c.parcelUoWFactory(), c.storagePolicy)
}

func (c *CompositionRoot) CreateConsolidateParcelsCommandHandler() commands.ConsolidateParcelsCommandHandler {
	return commands.NewConsolidateParcelsCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateProcessConsolidationCommandHandler() commands.ProcessConsolidationCommandHandler {
	return commands.NewProcessConsolidationCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateRequestQuoteCommandHandler() commands.RequestQuoteCommandHandler {
	return commands.NewRequestQuoteCommandHandler(
		c.freightUoWFactory(), c.rateService, c.feeSchedule, c.storagePolicy,
	)
}

func (c *CompositionRoot) CreatePayShipmentCommandHandler() commands.PayShipmentCommandHandler {
	return commands.NewPayShipmentCommandHandler(
		c.freightUoWFactory(), c.rateService, c.gateway, c.feeSchedule, c.storagePolicy,
	)
}

func (c *CompositionRoot) CreateDispatchShipmentCommandHandler() commands.DispatchShipmentCommandHandler {
	return commands.NewDispatchShipmentCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateMarkInTransitCommandHandler() commands.MarkInTransitCommandHandler {
	return commands.NewMarkInTransitCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.freightUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	return commands.NewCancelShipmentCommandHandler(c.freightUoWFactory())
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.requestUoWFactory(), c.distanceSvc)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	return commands.NewConfirmPickupCommandHandler(c.requestUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateQuoteLocalRequestCommandHandler() commands.QuoteLocalRequestCommandHandler {
	return commands.NewQuoteLocalRequestCommandHandler(c.requestUoWFactory(), c.feeSchedule)
}

func (c *CompositionRoot) CreateConfirmRequestDeliveryCommandHandler() commands.ConfirmRequestDeliveryCommandHandler {
	return commands.NewConfirmRequestDeliveryCommandHandler(c.requestUoWFactory(), c.gateway, c.feeSchedule)
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.requestUoWFactory())
}

func (c *CompositionRoot) CreateGetWarehouseParcelsQueryHandler() queries.GetWarehouseParcelsQueryHandler {
	return queries.NewGetWarehouseParcelsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverTasksQueryHandler() queries.GetDriverTasksQueryHandler {
	return queries.NewGetDriverTasksQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo-facing server over every use case.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateParcel:        c.CreateCreateParcelCommandHandler(),
		ReceiveParcel:       c.CreateReceiveParcelCommandHandler(),
		RecordMeasurement:   c.CreateRecordMeasurementCommandHandler(),
		AttachInvoice:       c.CreateAttachInvoiceCommandHandler(),
		VerifyDeclaredValue: c.CreateVerifyDeclaredValueCommandHandler(),
		MarkOutForDelivery:  c.CreateMarkOutForDeliveryCommandHandler(),
		CancelParcel:        c.CreateCancelParcelCommandHandler(),
		SettleStorageDebt:   c.CreateSettleStorageDebtCommandHandler(),

		RequestIndividualShipping: c.CreateRequestIndividualShippingCommandHandler(),
		RequestStorePickup:        c.CreateRequestStorePickupCommandHandler(),
		CompleteStorePickup:       c.CreateCompleteStorePickupCommandHandler(),

		ConsolidateParcels:   c.CreateConsolidateParcelsCommandHandler(),
		ProcessConsolidation: c.CreateProcessConsolidationCommandHandler(),
		RequestQuote:         c.CreateRequestQuoteCommandHandler(),
		PayShipment:          c.CreatePayShipmentCommandHandler(),
		DispatchShipment:     c.CreateDispatchShipmentCommandHandler(),
		MarkInTransit:        c.CreateMarkInTransitCommandHandler(),
		ConfirmDelivery:      c.CreateConfirmDeliveryCommandHandler(),
		CancelShipment:       c.CreateCancelShipmentCommandHandler(),

		CreateRequest:          c.CreateCreateRequestCommandHandler(),
		AssignDriver:           c.CreateAssignDriverCommandHandler(),
		QuoteLocalRequest:      c.CreateQuoteLocalRequestCommandHandler(),
		ConfirmPickup:          c.CreateConfirmPickupCommandHandler(),
		ConfirmRequestDelivery: c.CreateConfirmRequestDeliveryCommandHandler(),
		CancelRequest:          c.CreateCancelRequestCommandHandler(),

		GetWarehouseParcels: c.CreateGetWarehouseParcelsQueryHandler(),
		GetShipment:         c.CreateGetShipmentQueryHandler(),
		GetDriverTasks:      c.CreateGetDriverTasksQueryHandler(),
	})
}

// CreateJobManager assembles the scheduled background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateFlagStorageDebtsCommandHandler(), c.logger)
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncFreightUoWFactory func() commands.FreightUoW

func (f FuncFreightUoWFactory) Create() commands.FreightUoW {
	return f()
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}
