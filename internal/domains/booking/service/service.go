package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/geocode"
	"yujin/infras/otel"
	"yujin/infras/s3"
	"yujin/infras/sheets"
	availabilityService "yujin/internal/domains/availability/service"
	"yujin/internal/domains/booking/model"
	"yujin/internal/domains/booking/model/dto"
	"yujin/internal/domains/booking/repository"
	customerModel "yujin/internal/domains/customer/model"
	customerDto "yujin/internal/domains/customer/model/dto"
	customerService "yujin/internal/domains/customer/service"
	notifyService "yujin/internal/domains/notify/service"
	"yujin/internal/domains/offline/store"
	pricingService "yujin/internal/domains/pricing/service"
	trackingModel "yujin/internal/domains/tracking/model"
	trackingService "yujin/internal/domains/tracking/service"
	"yujin/shared"
	"yujin/shared/cache"
	"yujin/shared/constant"
	gDto "yujin/shared/dto"
	"yujin/shared/failure"
	"yujin/shared/phone"
	"yujin/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	imageDirectory = "bookings"

	sessionRandLen = 9
	base36Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	Cancel(ctx context.Context, id string) error
	UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (string, error)
}

type serviceImpl struct {
	repo         repository.Booking
	availability availabilityService.Availability
	customer     customerService.Customer
	pricing      pricingService.Pricing
	offline      store.Store
	tracker      trackingService.Tracker
	sheets       sheets.Sheets
	notifier     notifyService.Notifier
	geocoder     geocode.Geocoder
	s3           s3.S3
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	availability availabilityService.Availability,
	customer customerService.Customer,
	pricing pricingService.Pricing,
	offline store.Store,
	tracker trackingService.Tracker,
	sheetsClient sheets.Sheets,
	notifier notifyService.Notifier,
	geocoder geocode.Geocoder,
	s3Client s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		customer:     customer,
		pricing:      pricing,
		offline:      offline,
		tracker:      tracker,
		sheets:       sheetsClient,
		notifier:     notifier,
		geocoder:     geocoder,
		s3:           s3Client,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create runs the submission pipeline: reserve the slot, resolve the
// customer, price the work, persist. A permission-denied write parks
// the booking in the offline store and still reports success, with the
// outcome marked so the caller can tell the two apart.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalizedPhone := phone.Normalize(phone.Clean(req.Phone))

	if err = s.availability.ReserveSlot(ctx, req.BookingDate, req.TimeSlot); err != nil {
		return res, err
	}

	totalPrice, err := s.pricing.Total(ctx, req.Film, req.Addons)
	if err != nil {
		return res, err
	}

	// Identity resolution degrades internally, it never blocks the booking.
	identity, err := s.customer.Resolve(ctx, customerDto.ResolveCustomerRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Channel: customerModel.ChannelBooking,
		Detail:  fmt.Sprintf("%s %s %s", req.Service, req.BookingDate, req.TimeSlot),
	})
	if err != nil {
		return res, err
	}

	sessionID := req.SessionID
	if sessionID == constant.Empty {
		sessionID = newSessionID()
	}

	address := req.Address
	if address == constant.Empty && (req.Latitude != 0 || req.Longitude != 0) {
		resolved, geoErr := s.geocoder.ReverseGeocode(ctx, req.Latitude, req.Longitude)
		if geoErr != nil {
			log.Warn().Err(geoErr).Msg("failed to reverse geocode booking location")
		} else {
			address = resolved
		}
	}

	booking, err := req.ToModel(identity.CustomerID, normalizedPhone, sessionID, newBookingNumber(), address, totalPrice)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid booking data: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		if failure.IsPermission(err) || isInsufficientPrivilege(err) {
			return s.parkOffline(ctx, booking, identity, err)
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterCreate(ctx, booking, identity)

	return dto.CreateBookingResponse{
		BookingID:     booking.ID,
		BookingNumber: booking.BookingNumber,
		CustomerID:    identity.CustomerID,
		Status:        booking.Status,
		TotalPrice:    booking.TotalPrice,
		Message:       "Booking created successfully",
	}, nil
}

// parkOffline is the authorization-denied fallback: the booking goes to
// the local file store and the caller still gets a success response
// carrying the LOCAL_ identifier.
func (s *serviceImpl) parkOffline(ctx context.Context, booking model.Booking, identity customerDto.ResolvedIdentity, cause error) (dto.CreateBookingResponse, error) {
	record, storeErr := s.offline.Append(ctx, booking, cause.Error())
	if storeErr != nil {
		log.Error().Err(storeErr).Msg("failed to park booking in offline store")

		return dto.CreateBookingResponse{}, fmt.Errorf("failed to create booking: %w", cause)
	}

	s.tracker.Track(ctx, trackingModel.Event{
		Name:      trackingModel.EventBookingOffline,
		UserID:    identity.CustomerID,
		SessionID: booking.SessionID,
		Payload: map[string]any{
			"offline_id":     record.ID,
			"booking_number": booking.BookingNumber,
			"date":           booking.BookingDate.Format(constant.BookingDateFmt),
			"time_slot":      booking.TimeSlot,
		},
	})

	return dto.CreateBookingResponse{
		BookingID:     record.ID,
		BookingNumber: booking.BookingNumber,
		CustomerID:    identity.CustomerID,
		Status:        constant.BookingStatusPendingOffline,
		TotalPrice:    booking.TotalPrice,
		Offline:       true,
		Message:       "Booking saved locally and will be submitted automatically",
	}, nil
}

// afterCreate fans out the side channels that must not delay or fail
// the submission: cache invalidation, the sheet mirror, telemetry and
// the confirmation SMS.
func (s *serviceImpl) afterCreate(ctx context.Context, booking model.Booking, identity customerDto.ResolvedIdentity) {
	date := booking.BookingDate.Format(constant.BookingDateFmt)

	s.tracker.Track(ctx, trackingModel.Event{
		Name:      trackingModel.EventBookingSubmitted,
		UserID:    identity.CustomerID,
		SessionID: booking.SessionID,
		Payload: map[string]any{
			"booking_id":     booking.ID,
			"booking_number": booking.BookingNumber,
			"date":           date,
			"time_slot":      booking.TimeSlot,
			"service":        booking.Service,
			"total_price":    booking.TotalPrice,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		s.availability.Invalidate(c, date, booking.TimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		if err := s.sheets.AppendRow(c, sheets.Row{
			Type:          "booking",
			Timestamp:     timezone.Now().Format(constant.DateFormat),
			BookingNumber: booking.BookingNumber,
			Name:          booking.Name,
			Phone:         booking.Phone,
			Email:         booking.Email,
			Service:       booking.Service,
			Date:          date,
			TimeSlot:      booking.TimeSlot,
			Detail:        booking.Film,
			TotalPrice:    booking.TotalPrice,
			Status:        booking.Status,
			Source:        booking.Source,
		}); err != nil {
			log.Error().Err(err).Str("booking_number", booking.BookingNumber).Msg("failed to mirror booking to sheet")
		}

		if err := s.notifier.SendBookingConfirmation(c, booking.Phone, booking.BookingNumber, date, booking.TimeSlot); err != nil {
			log.Error().Err(err).Str("booking_number", booking.BookingNumber).Msg("failed to send booking confirmation")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for update")

		return fmt.Errorf("failed to get booking for update: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	// Moving to a different slot has to pass the same capacity gate as
	// a fresh submission.
	if req.TimeSlot != constant.Empty && req.TimeSlot != booking.TimeSlot {
		date := booking.BookingDate.Format(constant.BookingDateFmt)

		if err = s.availability.ReserveSlot(ctx, date, req.TimeSlot); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	s.invalidateFor(ctx, booking, id)

	return nil
}

// Cancel releases the slot by flipping the status; the row itself stays
// for the back office.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for cancellation")

		return fmt.Errorf("failed to get booking for cancellation: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == constant.BookingStatusCancelled {
		return failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        constant.BookingStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidateFor(ctx, booking, id)

	return nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, id string, file multipart.File, header *multipart.FileHeader) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return constant.Empty, fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return constant.Empty, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	fileName := id + strings.ToLower(filepath.Ext(header.Filename))

	url, err = s.s3.UploadFile(ctx, constant.Empty, imageDirectory, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload booking image")

		return constant.Empty, fmt.Errorf("failed to upload booking image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.repo.Update(ctx, map[string]any{
		model.FieldImageURL:      url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to save booking image url")

		return constant.Empty, fmt.Errorf("failed to save booking image url: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	return url, nil
}

func (s *serviceImpl) invalidateFor(ctx context.Context, booking model.Booking, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		date := booking.BookingDate.Format(constant.BookingDateFmt)
		s.availability.Invalidate(c, date, booking.TimeSlot)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func newBookingNumber() string {
	return fmt.Sprintf("%s%d%05d", constant.BookingNumberPrefix, timezone.Now().Year(), rand.IntN(100000))
}

func newSessionID() string {
	suffix := make([]byte, sessionRandLen)
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}

	return fmt.Sprintf("%s%d_%s", constant.SessionPrefix, timezone.Now().UnixMilli(), suffix)
}

func isInsufficientPrivilege(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeInsufficientPrivilege
	}

	return false
}
