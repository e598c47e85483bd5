package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yujin/infras/otel"
	"yujin/internal/domains/booking/model"
	"yujin/internal/domains/booking/model/dto"
	"yujin/internal/domains/booking/service"
	"yujin/shared/constant"
	gDto "yujin/shared/dto"
	"yujin/shared/failure"
	"yujin/shared/validator"
	"yujin/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the public submission endpoint.
func (handler *Handler) Router(router chi.Router) {
	router.Post("/bookings", handler.CreateBooking)
}

// AdminRouter mounts the back-office surface; auth and RBAC wrap it at
// the router level.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBooking)
		routerGroup.Delete("/{id}", handler.CancelBooking)
		routerGroup.Post("/{id}/images", handler.UploadBookingImage)
	})
}

func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	req.UserAgent = request.Header.Get(constant.RequestHeaderUserAgent)
	req.Referrer = request.Referer()

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created: " + res.BookingNumber)

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	status := request.URL.Query().Get(model.FieldStatus)
	bookingDate := request.URL.Query().Get(model.FieldBookingDate)
	timeSlot := request.URL.Query().Get(model.FieldTimeSlot)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if bookingDate != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingDate,
			Table:    model.TableName,
		})
	}

	if timeSlot != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTimeSlot,
			Operator: gDto.FilterOperatorEq,
			Value:    timeSlot,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + id + " cancelled by " + user)

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

func (handler *Handler) UploadBookingImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadBookingImage")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		err = failure.BadRequestFromString("failed to parse multipart form")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	file, header, err := request.FormFile(constant.FormFile)
	if err != nil {
		err = failure.BadRequestFromString("image file is required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}
	defer file.Close()

	url, err := handler.service.UploadImage(ctx, id, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload booking image")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, map[string]string{"image_url": url})
}
