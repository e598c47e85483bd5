package formflow

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"yujin/infras/otel"
	"yujin/internal/domains/formflow/model/dto"
	"yujin/internal/domains/formflow/service"
	"yujin/shared/constant"
	"yujin/shared/validator"
	"yujin/transport/http/response"
)

type Handler struct {
	service service.FormFlow
	otel    otel.Otel
}

func New(service service.FormFlow, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/form/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.StartSession)
		routerGroup.Get("/{id}", handler.GetSession)
		routerGroup.Post("/{id}/next", handler.NextStep)
		routerGroup.Post("/{id}/back", handler.PreviousStep)
		routerGroup.Post("/{id}/submit", handler.SubmitSession)
		routerGroup.Delete("/{id}", handler.AbandonSession)
	})
}

func (handler *Handler) StartSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartSession")
	defer scope.End()

	req := dto.StartFormRequest{}

	// An empty body is fine here, the form can start without context.
	if request.Body != nil && request.ContentLength > 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start form session")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) GetSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSession")
	defer scope.End()

	res, err := handler.service.State(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) NextStep(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".NextStep")
	defer scope.End()

	req := dto.StepInput{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate step input")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Next(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) PreviousStep(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PreviousStep")
	defer scope.End()

	res, err := handler.service.Back(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

func (handler *Handler) SubmitSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitSession")
	defer scope.End()

	res, err := handler.service.Submit(
		ctx,
		chi.URLParam(request, constant.RequestParamID),
		request.Header.Get(constant.RequestHeaderUserAgent),
		request.Referer(),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit form session")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Form session submitted: " + res.BookingNumber)

	response.WithJSON(writer, http.StatusCreated, res)
}

func (handler *Handler) AbandonSession(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AbandonSession")
	defer scope.End()

	if err := handler.service.Abandon(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Form session abandoned")
}
