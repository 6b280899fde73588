// Package http exposes the marketplace over a REST API. Handlers translate
// between the JSON contract and the application's commands and queries; all
// business rules live below this layer.
package http

import (
	"net/http"
	"time"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/application/usecases/queries"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/request"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createRequestHandler        commands.CreateRequestCommandHandler
	updateRequestHandler        commands.UpdateRequestCommandHandler
	deactivateRequestHandler    commands.DeactivateRequestCommandHandler
	makeOfferHandler            commands.MakeOfferCommandHandler
	acceptOfferHandler          commands.AcceptOfferCommandHandler
	completeOrderHandler        commands.CompleteOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	submitReviewHandler         commands.SubmitReviewCommandHandler
	postMessageHandler          commands.PostMessageCommandHandler
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler

	listRequestsHandler      queries.ListRequestsQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	listNotificationsHandler queries.ListNotificationsQueryHandler
	listMessagesHandler      queries.ListMessagesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createRequestHandler commands.CreateRequestCommandHandler,
	updateRequestHandler commands.UpdateRequestCommandHandler,
	deactivateRequestHandler commands.DeactivateRequestCommandHandler,
	makeOfferHandler commands.MakeOfferCommandHandler,
	acceptOfferHandler commands.AcceptOfferCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	submitReviewHandler commands.SubmitReviewCommandHandler,
	postMessageHandler commands.PostMessageCommandHandler,
	markNotificationReadHandler commands.MarkNotificationReadCommandHandler,
	listRequestsHandler queries.ListRequestsQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listNotificationsHandler queries.ListNotificationsQueryHandler,
	listMessagesHandler queries.ListMessagesQueryHandler,
) *Server {
	return &Server{
		createRequestHandler:        createRequestHandler,
		updateRequestHandler:        updateRequestHandler,
		deactivateRequestHandler:    deactivateRequestHandler,
		makeOfferHandler:            makeOfferHandler,
		acceptOfferHandler:          acceptOfferHandler,
		completeOrderHandler:        completeOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		submitReviewHandler:         submitReviewHandler,
		postMessageHandler:          postMessageHandler,
		markNotificationReadHandler: markNotificationReadHandler,
		listRequestsHandler:         listRequestsHandler,
		getOrderHandler:             getOrderHandler,
		listNotificationsHandler:    listNotificationsHandler,
		listMessagesHandler:         listMessagesHandler,
	}
}

// RegisterRoutes wires the API endpoints onto the echo instance. The
// websocket endpoint is registered separately by the composition root.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests", s.ListRequests)
	api.PUT("/requests/:id", s.UpdateRequest)
	api.DELETE("/requests/:id", s.DeactivateRequest)

	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/offers", s.MakeOffer)
	api.POST("/orders/:id/accept-offer", s.AcceptOffer)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/reviews", s.SubmitReview)

	api.GET("/notifications", s.ListNotifications)
	api.PUT("/notifications/:id/read", s.MarkNotificationRead)

	api.GET("/conversations/:id/messages", s.ListMessages)
	api.POST("/conversations/:id/messages", s.PostMessage)

	e.GET("/health", s.Health)
}

// actingUser extracts the authenticated user from the X-User-ID header.
func actingUser(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get("X-User-ID")
	if raw == "" {
		return kernel.UUID{}, errs.NewNotAuthorizedError("missing X-User-ID header")
	}

	userID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewNotAuthorizedError("invalid X-User-ID header")
	}
	return userID, nil
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func fail(ctx echo.Context, err error) error {
	status := statusFromError(err)
	return ctx.JSON(status, errorBody(status, err))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

type createRequestBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Budget      *float64 `json:"budget"`
}

// CreateRequest handles POST /api/v1/requests. Posting a need creates the
// request, its order and its conversation in one shot; the response carries
// all three identifiers.
func (s *Server) CreateRequest(ctx echo.Context) error {
	ownerID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body createRequestBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	if body.Lat == nil || body.Lng == nil {
		return fail(ctx, errs.NewValueIsRequiredError("lat, lng"))
	}

	location, err := kernel.NewGeoPoint(*body.Lat, *body.Lng)
	if err != nil {
		return fail(ctx, err)
	}

	reqType, err := request.ParseType(body.Type)
	if err != nil {
		return fail(ctx, err)
	}

	requestID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	conversationID := kernel.NewUUID()

	cmd, err := commands.NewCreateRequestCommand(
		requestID, orderID, conversationID, ownerID,
		body.Title, body.Description, body.Category, reqType, location, body.Budget)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.createRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"requestId":      requestID.String(),
		"orderId":        orderID.String(),
		"conversationId": conversationID.String(),
	})
}

type requestListItem struct {
	ID             string   `json:"id"`
	OrderID        string   `json:"orderId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Type           string   `json:"type"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Budget         *float64 `json:"budget,omitempty"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
}

// ListRequests handles GET /api/v1/requests. With lat, lng and radius the
// listing is a radius search ordered by distance; without them it falls back
// to newest first.
func (s *Server) ListRequests(ctx echo.Context) error {
	var params struct {
		Lat      *float64 `query:"lat"`
		Lng      *float64 `query:"lng"`
		Radius   *float64 `query:"radius"`
		Category string   `query:"category"`
		Type     string   `query:"type"`
		Keyword  string   `query:"q"`
		Limit    int      `query:"limit"`
	}
	if err := ctx.Bind(&params); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("query", err))
	}

	query, err := queries.NewListRequestsQuery(
		params.Lat, params.Lng, params.Radius,
		params.Category, params.Type, params.Keyword, params.Limit)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.listRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]requestListItem, len(result))
	for i, item := range result {
		response[i] = requestListItem{
			ID:             item.ID.String(),
			OrderID:        item.OrderID.String(),
			Title:          item.Title,
			Description:    item.Description,
			Category:       item.Category,
			Type:           item.Type,
			Lat:            item.Location.Lat(),
			Lng:            item.Location.Lng(),
			Budget:         item.Budget,
			DistanceMeters: item.DistanceMeters,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type updateRequestBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Budget      *float64 `json:"budget"`
}

// UpdateRequest handles PUT /api/v1/requests/:id.
func (s *Server) UpdateRequest(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	requestID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body updateRequestBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpdateRequestCommand(
		requestID, actorID, body.Title, body.Description, body.Budget)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.updateRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateRequest handles DELETE /api/v1/requests/:id. The row stays; the
// request just leaves the public listing.
func (s *Server) DeactivateRequest(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	requestID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewDeactivateRequestCommand(requestID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.deactivateRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type orderOfferView struct {
	ID         string  `json:"id"`
	ProviderID string  `json:"providerId"`
	Value      float64 `json:"value"`
	Message    string  `json:"message,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type orderView struct {
	ID         string           `json:"id"`
	RequestID  string           `json:"requestId"`
	ClientID   string           `json:"clientId"`
	ProviderID *string          `json:"providerId,omitempty"`
	FinalValue *float64         `json:"finalValue,omitempty"`
	Status     string           `json:"status"`
	Offers     []orderOfferView `json:"offers"`
}

// GetOrder handles GET /api/v1/orders/:id. Visible to the client, the bound
// provider and anyone who made an offer.
func (s *Server) GetOrder(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	view := orderView{
		ID:         result.ID.String(),
		RequestID:  result.RequestID.String(),
		ClientID:   result.ClientID.String(),
		FinalValue: result.FinalValue,
		Status:     result.Status,
		Offers:     make([]orderOfferView, len(result.Offers)),
	}
	if result.ProviderID != nil {
		providerID := result.ProviderID.String()
		view.ProviderID = &providerID
	}
	for i, item := range result.Offers {
		view.Offers[i] = orderOfferView{
			ID:         item.ID.String(),
			ProviderID: item.ProviderID.String(),
			Value:      item.Value,
			Message:    item.Message,
			CreatedAt:  item.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, view)
}

type makeOfferBody struct {
	Value   float64 `json:"value"`
	Message string  `json:"message"`
}

// MakeOffer handles POST /api/v1/orders/:id/offers.
func (s *Server) MakeOffer(ctx echo.Context) error {
	providerID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body makeOfferBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	offerID := kernel.NewUUID()
	cmd, err := commands.NewMakeOfferCommand(offerID, orderID, providerID, body.Value, body.Message)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.makeOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{"offerId": offerID.String()})
}

type acceptOfferBody struct {
	OfferID string `json:"offerId"`
}

// AcceptOffer handles POST /api/v1/orders/:id/accept-offer.
func (s *Server) AcceptOffer(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body acceptOfferBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	offerID, err := kernel.UUIDFromString(body.OfferID)
	if err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("offerId", err))
	}

	cmd, err := commands.NewAcceptOfferCommand(orderID, offerID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.acceptOfferHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:id/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type submitReviewBody struct {
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	Aspects struct {
		Communication *int `json:"communication"`
		Quality       *int `json:"quality"`
		Punctuality   *int `json:"punctuality"`
	} `json:"aspects"`
}

// SubmitReview handles POST /api/v1/orders/:id/reviews. Either party of a
// completed order may review the other exactly once.
func (s *Server) SubmitReview(ctx echo.Context) error {
	authorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	orderID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body submitReviewBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	reviewID := kernel.NewUUID()
	cmd, err := commands.NewSubmitReviewCommand(
		reviewID, orderID, authorID, body.Rating, body.Text,
		review.Aspects{
			Communication: body.Aspects.Communication,
			Quality:       body.Aspects.Quality,
			Punctuality:   body.Aspects.Punctuality,
		})
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.submitReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{"reviewId": reviewID.String()})
}

type notificationView struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	OrderID   string `json:"orderId"`
	Text      string `json:"text"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// ListNotifications handles GET /api/v1/notifications.
func (s *Server) ListNotifications(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewListNotificationsQuery(actorID)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.listNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]notificationView, len(result))
	for i, item := range result {
		response[i] = notificationView{
			ID:        item.ID.String(),
			Kind:      item.Kind,
			OrderID:   item.OrderID.String(),
			Text:      item.Text,
			IsRead:    item.IsRead,
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles PUT /api/v1/notifications/:id/read.
func (s *Server) MarkNotificationRead(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	notificationID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(notificationID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.markNotificationReadHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type messageView struct {
	ID        string `json:"id"`
	AuthorID  string `json:"authorId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// ListMessages handles GET /api/v1/conversations/:id/messages.
func (s *Server) ListMessages(ctx echo.Context) error {
	actorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	conversationID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	query, err := queries.NewListMessagesQuery(conversationID, actorID)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.listMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]messageView, len(result))
	for i, item := range result {
		response[i] = messageView{
			ID:        item.ID.String(),
			AuthorID:  item.AuthorID.String(),
			Text:      item.Text,
			CreatedAt: item.CreatedAt.UTC().Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type postMessageBody struct {
	Text string `json:"text"`
}

// PostMessage handles POST /api/v1/conversations/:id/messages.
func (s *Server) PostMessage(ctx echo.Context) error {
	authorID, err := actingUser(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	conversationID, err := pathID(ctx)
	if err != nil {
		return fail(ctx, err)
	}

	var body postMessageBody
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	messageID := kernel.NewUUID()
	cmd, err := commands.NewPostMessageCommand(messageID, conversationID, authorID, body.Text)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.postMessageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, echo.Map{"messageId": messageID.String()})
}
