package http

import (
	"errors"
	"net/http"
	"time"

	"cargolink/internal/core/application/usecases/commands"
	"cargolink/internal/core/application/usecases/queries"
	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/localrequest"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Parcel command handlers
	createParcelHandler        commands.CreateParcelCommandHandler
	receiveParcelHandler       commands.ReceiveParcelCommandHandler
	recordMeasurementHandler   commands.RecordMeasurementCommandHandler
	attachInvoiceHandler       commands.AttachInvoiceCommandHandler
	verifyDeclaredValueHandler commands.VerifyDeclaredValueCommandHandler
	markOutForDeliveryHandler  commands.MarkOutForDeliveryCommandHandler
	cancelParcelHandler        commands.CancelParcelCommandHandler
	settleStorageDebtHandler   commands.SettleStorageDebtCommandHandler

	requestIndividualShippingHandler commands.RequestIndividualShippingCommandHandler
	requestStorePickupHandler        commands.RequestStorePickupCommandHandler
	completeStorePickupHandler       commands.CompleteStorePickupCommandHandler

	// Shipment command handlers
	consolidateParcelsHandler   commands.ConsolidateParcelsCommandHandler
	processConsolidationHandler commands.ProcessConsolidationCommandHandler
	requestQuoteHandler         commands.RequestQuoteCommandHandler
	payShipmentHandler          commands.PayShipmentCommandHandler
	dispatchShipmentHandler     commands.DispatchShipmentCommandHandler
	markInTransitHandler        commands.MarkInTransitCommandHandler
	confirmDeliveryHandler      commands.ConfirmDeliveryCommandHandler
	cancelShipmentHandler       commands.CancelShipmentCommandHandler

	// Local request command handlers
	createRequestHandler          commands.CreateRequestCommandHandler
	assignDriverHandler           commands.AssignDriverCommandHandler
	quoteLocalRequestHandler      commands.QuoteLocalRequestCommandHandler
	confirmPickupHandler          commands.ConfirmPickupCommandHandler
	confirmRequestDeliveryHandler commands.ConfirmRequestDeliveryCommandHandler
	cancelRequestHandler          commands.CancelRequestCommandHandler

	// Query handlers
	getWarehouseParcelsHandler queries.GetWarehouseParcelsQueryHandler
	getShipmentHandler         queries.GetShipmentQueryHandler
	getDriverTasksHandler      queries.GetDriverTasksQueryHandler
}

// Handlers bundles every use case the server exposes. A plain struct keeps
// the composition root readable; NewServer would otherwise take two dozen
// positional arguments.
type Handlers struct {
	CreateParcel        commands.CreateParcelCommandHandler
	ReceiveParcel       commands.ReceiveParcelCommandHandler
	RecordMeasurement   commands.RecordMeasurementCommandHandler
	AttachInvoice       commands.AttachInvoiceCommandHandler
	VerifyDeclaredValue commands.VerifyDeclaredValueCommandHandler
	MarkOutForDelivery  commands.MarkOutForDeliveryCommandHandler
	CancelParcel        commands.CancelParcelCommandHandler
	SettleStorageDebt   commands.SettleStorageDebtCommandHandler

	RequestIndividualShipping commands.RequestIndividualShippingCommandHandler
	RequestStorePickup        commands.RequestStorePickupCommandHandler
	CompleteStorePickup       commands.CompleteStorePickupCommandHandler

	ConsolidateParcels   commands.ConsolidateParcelsCommandHandler
	ProcessConsolidation commands.ProcessConsolidationCommandHandler
	RequestQuote         commands.RequestQuoteCommandHandler
	PayShipment          commands.PayShipmentCommandHandler
	DispatchShipment     commands.DispatchShipmentCommandHandler
	MarkInTransit        commands.MarkInTransitCommandHandler
	ConfirmDelivery      commands.ConfirmDeliveryCommandHandler
	CancelShipment       commands.CancelShipmentCommandHandler

	CreateRequest          commands.CreateRequestCommandHandler
	AssignDriver           commands.AssignDriverCommandHandler
	QuoteLocalRequest      commands.QuoteLocalRequestCommandHandler
	ConfirmPickup          commands.ConfirmPickupCommandHandler
	ConfirmRequestDelivery commands.ConfirmRequestDeliveryCommandHandler
	CancelRequest          commands.CancelRequestCommandHandler

	GetWarehouseParcels queries.GetWarehouseParcelsQueryHandler
	GetShipment         queries.GetShipmentQueryHandler
	GetDriverTasks      queries.GetDriverTasksQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		createParcelHandler:        h.CreateParcel,
		receiveParcelHandler:       h.ReceiveParcel,
		recordMeasurementHandler:   h.RecordMeasurement,
		attachInvoiceHandler:       h.AttachInvoice,
		verifyDeclaredValueHandler: h.VerifyDeclaredValue,
		markOutForDeliveryHandler:  h.MarkOutForDelivery,
		cancelParcelHandler:        h.CancelParcel,
		settleStorageDebtHandler:   h.SettleStorageDebt,

		requestIndividualShippingHandler: h.RequestIndividualShipping,
		requestStorePickupHandler:        h.RequestStorePickup,
		completeStorePickupHandler:       h.CompleteStorePickup,

		consolidateParcelsHandler:   h.ConsolidateParcels,
		processConsolidationHandler: h.ProcessConsolidation,
		requestQuoteHandler:         h.RequestQuote,
		payShipmentHandler:          h.PayShipment,
		dispatchShipmentHandler:     h.DispatchShipment,
		markInTransitHandler:        h.MarkInTransit,
		confirmDeliveryHandler:      h.ConfirmDelivery,
		cancelShipmentHandler:       h.CancelShipment,

		createRequestHandler:          h.CreateRequest,
		assignDriverHandler:           h.AssignDriver,
		quoteLocalRequestHandler:      h.QuoteLocalRequest,
		confirmPickupHandler:          h.ConfirmPickup,
		confirmRequestDeliveryHandler: h.ConfirmRequestDelivery,
		cancelRequestHandler:          h.CancelRequest,

		getWarehouseParcelsHandler: h.GetWarehouseParcels,
		getShipmentHandler:         h.GetShipment,
		getDriverTasksHandler:      h.GetDriverTasks,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/parcels", s.CreateParcel)
	v1.POST("/parcels/receive", s.ReceiveParcel)
	v1.POST("/parcels/:id/measurement", s.RecordMeasurement)
	v1.POST("/parcels/:id/invoice", s.AttachInvoice)
	v1.POST("/parcels/:id/verify-value", s.VerifyDeclaredValue)
	v1.POST("/parcels/:id/out-for-delivery", s.MarkOutForDelivery)
	v1.POST("/parcels/:id/cancel", s.CancelParcel)
	v1.POST("/parcels/:id/settle-storage", s.SettleStorageDebt)
	v1.POST("/parcels/:id/ship-individually", s.RequestIndividualShipping)
	v1.POST("/parcels/:id/store-pickup", s.RequestStorePickup)
	v1.POST("/parcels/:id/store-pickup/complete", s.CompleteStorePickup)
	v1.GET("/customers/:customerId/parcels", s.GetWarehouseParcels)

	v1.POST("/shipments", s.ConsolidateParcels)
	v1.POST("/shipments/:id/measurement", s.ProcessConsolidation)
	v1.POST("/shipments/:id/quote", s.RequestQuote)
	v1.POST("/shipments/:id/pay", s.PayShipment)
	v1.POST("/shipments/:id/dispatch", s.DispatchShipment)
	v1.POST("/shipments/:id/in-transit", s.MarkInTransit)
	v1.POST("/shipments/:id/delivery", s.ConfirmDelivery)
	v1.POST("/shipments/:id/cancel", s.CancelShipment)
	v1.GET("/shipments/:id", s.GetShipment)
	v1.GET("/driver-tasks", s.GetDriverTasks)

	v1.POST("/requests", s.CreateRequest)
	v1.POST("/requests/:id/assign", s.AssignDriver)
	v1.POST("/requests/:id/quote", s.QuoteLocalRequest)
	v1.POST("/requests/:id/pickup", s.ConfirmPickup)
	v1.POST("/requests/:id/delivery", s.ConfirmRequestDelivery)
	v1.POST("/requests/:id/cancel", s.CancelRequest)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps the application error taxonomy onto HTTP statuses.
// Validation problems are the caller's fault, conflicts mean the aggregate
// refused the transition, blocked accounts need payment, and upstream
// outages surface as bad gateway.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var pending *ports.PaymentPendingReconciliationError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrBlockedAccount):
		status = http.StatusPaymentRequired
	case errors.Is(err, errs.ErrStateConflict):
		status = http.StatusConflict
	case errors.As(err, &pending):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrExternalService):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

type dimensionsPayload struct {
	LengthIn float64 `json:"length_in"`
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

func (d dimensionsPayload) toDomain() parcel.Dimensions {
	return parcel.Dimensions{LengthIn: d.LengthIn, WidthIn: d.WidthIn, HeightIn: d.HeightIn}
}

type addressPayload struct {
	Line       string `json:"line"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postal_code"`
}

func (a addressPayload) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.Line, a.City, a.Region, a.PostalCode)
}

// CreateParcel handles POST /api/v1/parcels - pre-alerts an inbound parcel.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body struct {
		CustomerID          string  `json:"customer_id"`
		CarrierTrackingCode string  `json:"carrier_tracking_code"`
		DeclaredValue       float64 `json:"declared_value"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id: "+err.Error())
	}

	parcelID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(parcelID, customerID, body.CarrierTrackingCode, body.DeclaredValue)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": parcelID.String()})
}

// ReceiveParcel handles POST /api/v1/parcels/receive - warehouse intake by
// tracking code, with the mandatory intake photo.
func (s *Server) ReceiveParcel(ctx echo.Context) error {
	var body struct {
		TrackingCode      string `json:"tracking_code"`
		WarehousePhotoRef string `json:"warehouse_photo_ref"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReceiveParcelCommand(body.TrackingCode, body.WarehousePhotoRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.receiveParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordMeasurement handles POST /api/v1/parcels/:id/measurement.
func (s *Server) RecordMeasurement(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		WeightLb float64           `json:"weight_lb"`
		Dims     dimensionsPayload `json:"dims"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordMeasurementCommand(parcelID, body.WeightLb, body.Dims.toDomain())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.recordMeasurementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachInvoice handles POST /api/v1/parcels/:id/invoice.
func (s *Server) AttachInvoice(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	var body struct {
		InvoiceDocRef string `json:"invoice_doc_ref"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAttachInvoiceCommand(parcelID, body.InvoiceDocRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.attachInvoiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyDeclaredValue handles POST /api/v1/parcels/:id/verify-value.
func (s *Server) VerifyDeclaredValue(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewVerifyDeclaredValueCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.verifyDeclaredValueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOutForDelivery handles POST /api/v1/parcels/:id/out-for-delivery.
func (s *Server) MarkOutForDelivery(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewMarkOutForDeliveryCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.markOutForDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelParcel handles POST /api/v1/parcels/:id/cancel.
func (s *Server) CancelParcel(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewCancelParcelCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelParcelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SettleStorageDebt handles POST /api/v1/parcels/:id/settle-storage.
func (s *Server) SettleStorageDebt(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewSettleStorageDebtCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.settleStorageDebtHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestIndividualShipping handles POST /api/v1/parcels/:id/ship-individually.
// Creates the single-member shipment and returns its id; the caller then
// drives it through measurement, quote, and payment like any shipment.
func (s *Server) RequestIndividualShipping(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewRequestIndividualShippingCommand(shipmentID, parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.requestIndividualShippingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"shipment_id": shipmentID.String()})
}

// RequestStorePickup handles POST /api/v1/parcels/:id/store-pickup.
func (s *Server) RequestStorePickup(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewRequestStorePickupCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.requestStorePickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStorePickup handles POST /api/v1/parcels/:id/store-pickup/complete.
// Counter handover: charges any accrued storage fees and marks the parcel paid.
func (s *Server) CompleteStorePickup(ctx echo.Context) error {
	parcelID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid parcel id")
	}

	cmd, err := commands.NewCompleteStorePickupCommand(parcelID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.completeStorePickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWarehouseParcels handles GET /api/v1/customers/:customerId/parcels.
func (s *Server) GetWarehouseParcels(ctx echo.Context) error {
	customerID, err := pathUUID(ctx, "customerId")
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}

	query, err := queries.NewGetWarehouseParcelsQuery(customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	parcels, err := s.getWarehouseParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type parcelRow struct {
		ID            string  `json:"id"`
		TrackingCode  string  `json:"tracking_code"`
		WeightLb      float64 `json:"weight_lb"`
		DeclaredValue float64 `json:"declared_value"`
		HasInvoice    bool    `json:"has_invoice"`
		ValueVerified bool    `json:"value_verified"`
		ReceivedAt    string  `json:"received_at"`
	}

	response := make([]parcelRow, len(parcels))
	for i, p := range parcels {
		response[i] = parcelRow{
			ID:            p.ID.String(),
			TrackingCode:  p.TrackingCode,
			WeightLb:      p.WeightLb,
			DeclaredValue: p.DeclaredValue,
			HasInvoice:    p.HasInvoice,
			ValueVerified: p.ValueVerified,
			ReceivedAt:    p.ReceivedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConsolidateParcels handles POST /api/v1/shipments - folds warehouse
// parcels into a new consolidated shipment.
func (s *Server) ConsolidateParcels(ctx echo.Context) error {
	var body struct {
		CustomerID string   `json:"customer_id"`
		ParcelIDs  []string `json:"parcel_ids"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id: "+err.Error())
	}

	parcelIDs := make([]kernel.UUID, 0, len(body.ParcelIDs))
	for _, raw := range body.ParcelIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid parcel id: "+raw)
		}
		parcelIDs = append(parcelIDs, id)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewConsolidateParcelsCommand(shipmentID, customerID, parcelIDs)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.consolidateParcelsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": shipmentID.String()})
}

// ProcessConsolidation handles POST /api/v1/shipments/:id/measurement -
// records the repacked box's final weight and dimensions.
func (s *Server) ProcessConsolidation(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var body struct {
		WeightLb float64           `json:"weight_lb"`
		Dims     dimensionsPayload `json:"dims"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewProcessConsolidationCommand(shipmentID, body.WeightLb, body.Dims.toDomain())
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.processConsolidationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestQuote handles POST /api/v1/shipments/:id/quote - prices the
// shipment without committing to payment.
func (s *Server) RequestQuote(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var body struct {
		Destination    addressPayload `json:"destination"`
		CarrierCode    string         `json:"carrier_code"`
		PromoRequested bool           `json:"promo_requested"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	destination, err := body.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRequestQuoteCommand(shipmentID, destination, body.CarrierCode, body.PromoRequested)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.requestQuoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"base_fare":          quote.BaseFare,
		"strategy":           string(quote.Strategy),
		"distance_surcharge": quote.DistanceSurcharge,
		"handling_fee":       quote.HandlingFee,
		"insurance":          quote.Insurance,
		"processing_fee":     quote.ProcessingFee,
		"discount":           quote.Discount,
		"total":              quote.Total,
		"notices":            quote.Notices,
	})
}

// PayShipment handles POST /api/v1/shipments/:id/pay - reprices the
// shipment and captures payment.
func (s *Server) PayShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var body struct {
		Destination    addressPayload `json:"destination"`
		CarrierCode    string         `json:"carrier_code"`
		PromoRequested bool           `json:"promo_requested"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	destination, err := body.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPayShipmentCommand(shipmentID, destination, body.CarrierCode, body.PromoRequested)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.payShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchShipment handles POST /api/v1/shipments/:id/dispatch.
func (s *Server) DispatchShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var body struct {
		MasterTrackingCode string `json:"master_tracking_code"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDispatchShipmentCommand(shipmentID, body.MasterTrackingCode)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.dispatchShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkInTransit handles POST /api/v1/shipments/:id/in-transit.
func (s *Server) MarkInTransit(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewMarkInTransitCommand(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.markInTransitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmDelivery handles POST /api/v1/shipments/:id/delivery - closes the
// shipment with proof of delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var body struct {
		ProofPhotoRef string `json:"proof_photo_ref"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(shipmentID, body.ProofPhotoRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel - unwinds an
// unpaid shipment and returns its parcels to the warehouse.
func (s *Server) CancelShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewCancelShipmentCommand(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return respondError(ctx, err)
	}

	summary, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"id":                    summary.ID.String(),
		"code":                  summary.Code,
		"status":                summary.Status,
		"final_weight_lb":       summary.FinalWeightLb,
		"carrier_name":          summary.CarrierName,
		"total":                 summary.Total,
		"master_tracking_code":  summary.MasterTrackingCode,
		"member_tracking_codes": summary.MemberTrackingCodes,
	})
}

// GetDriverTasks handles GET /api/v1/driver-tasks - the dispatch view, one
// task per routable unit.
func (s *Server) GetDriverTasks(ctx echo.Context) error {
	query := queries.NewGetDriverTasksQuery()

	tasks, err := s.getDriverTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type taskRow struct {
		ShipmentID    *string  `json:"shipment_id"`
		ShipmentCode  string   `json:"shipment_code"`
		TrackingCodes []string `json:"tracking_codes"`
		Count         int      `json:"count"`
	}

	response := make([]taskRow, len(tasks))
	for i, task := range tasks {
		row := taskRow{
			ShipmentCode:  task.ShipmentCode,
			TrackingCodes: task.TrackingCodes,
			Count:         task.Count,
		}
		if task.ShipmentID != nil {
			id := task.ShipmentID.String()
			row.ShipmentID = &id
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateRequest handles POST /api/v1/requests - opens a local logistics
// order (warehouse pickup, local delivery, or export handoff).
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body struct {
		CustomerID    string         `json:"customer_id"`
		ServiceType   string         `json:"service_type"`
		Origin        addressPayload `json:"origin"`
		Destination   addressPayload `json:"destination"`
		WeightTier    string         `json:"weight_tier"`
		ExactWeightLb float64        `json:"exact_weight_lb"`
		VolumeTier    string         `json:"volume_tier"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(body.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer_id: "+err.Error())
	}

	origin, err := body.Origin.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}
	destination, err := body.Destination.toDomain()
	if err != nil {
		return respondError(ctx, err)
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(
		requestID, customerID,
		serviceTypeFromString(body.ServiceType),
		origin, destination,
		weightTierFromString(body.WeightTier),
		body.ExactWeightLb,
		volumeTierFromString(body.VolumeTier),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": requestID.String()})
}

// AssignDriver handles POST /api/v1/requests/:id/assign.
func (s *Server) AssignDriver(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body struct {
		DriverID string `json:"driver_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(body.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver_id: "+err.Error())
	}

	cmd, err := commands.NewAssignDriverCommand(requestID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// QuoteLocalRequest handles POST /api/v1/requests/:id/quote - prices the
// order from its frozen tier and distance inputs.
func (s *Server) QuoteLocalRequest(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body struct {
		PromoRequested bool `json:"promo_requested"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewQuoteLocalRequestCommand(requestID, body.PromoRequested)
	if err != nil {
		return respondError(ctx, err)
	}

	quote, err := s.quoteLocalRequestHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"base_fare":          quote.BaseFare,
		"strategy":           string(quote.Strategy),
		"distance_surcharge": quote.DistanceSurcharge,
		"processing_fee":     quote.ProcessingFee,
		"discount":           quote.Discount,
		"total":              quote.Total,
		"notices":            quote.Notices,
	})
}

// ConfirmPickup handles POST /api/v1/requests/:id/pickup.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body struct {
		PhotoRef string `json:"photo_ref"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmPickupCommand(requestID, body.PhotoRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.confirmPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmRequestDelivery handles POST /api/v1/requests/:id/delivery.
func (s *Server) ConfirmRequestDelivery(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	var body struct {
		PhotoRef     string `json:"photo_ref"`
		SignatureRef string `json:"signature_ref"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmRequestDeliveryCommand(requestID, body.PhotoRef, body.SignatureRef)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.confirmRequestDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:id/cancel.
func (s *Server) CancelRequest(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid request id")
	}

	cmd, err := commands.NewCancelRequestCommand(requestID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// serviceTypeFromString maps wire names onto ServiceType. Unrecognized
// input maps to ServiceUnknown, which the command constructor rejects.
func serviceTypeFromString(s string) localrequest.ServiceType {
	switch s {
	case "WarehousePickup":
		return localrequest.ServiceWarehousePickup
	case "LocalDelivery":
		return localrequest.ServiceLocalDelivery
	case "ExportHandoff":
		return localrequest.ServiceExportHandoff
	default:
		return localrequest.ServiceUnknown
	}
}

func weightTierFromString(s string) localrequest.WeightTier {
	switch s {
	case "UpTo40":
		return localrequest.WeightTierUpTo40
	case "UpTo70":
		return localrequest.WeightTierUpTo70
	case "UpTo110":
		return localrequest.WeightTierUpTo110
	case "UpTo150":
		return localrequest.WeightTierUpTo150
	case "Heavy":
		return localrequest.WeightTierHeavy
	default:
		return localrequest.WeightTierUnknown
	}
}

func volumeTierFromString(s string) localrequest.VolumeTier {
	switch s {
	case "Quarter":
		return localrequest.VolumeTierQuarter
	case "Half":
		return localrequest.VolumeTierHalf
	case "ThreeQuarters":
		return localrequest.VolumeTierThreeQuarters
	case "Full":
		return localrequest.VolumeTierFull
	default:
		return localrequest.VolumeTierUnknown
	}
}
