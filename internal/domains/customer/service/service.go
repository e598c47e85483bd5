package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"yujin/config"
	"yujin/infras/otel"
	"yujin/internal/domains/customer/model"
	"yujin/internal/domains/customer/model/dto"
	"yujin/internal/domains/customer/repository"
	"yujin/shared"
	"yujin/shared/constant"
	gDto "yujin/shared/dto"
	"yujin/shared/failure"
	gModel "yujin/shared/model"
	"yujin/shared/password"
	"yujin/shared/phone"
	"yujin/shared/timezone"
)

// Customer resolves form submissions to a stable identity keyed by the
// normalized phone number. Resolution never blocks a booking: when the
// store is unreachable a locally generated fallback id is handed out.
type Customer interface {
	Resolve(ctx context.Context, req dto.ResolveCustomerRequest) (dto.ResolvedIdentity, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
}

type serviceImpl struct {
	repo        repository.Customer
	contactRepo repository.Contact
	cfg         *config.Config
	otel        otel.Otel
}

func New(repo repository.Customer, contactRepo repository.Contact, cfg *config.Config, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:        repo,
		contactRepo: contactRepo,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Resolve(ctx context.Context, req dto.ResolveCustomerRequest) (res dto.ResolvedIdentity, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	normalized := phone.Normalize(phone.Clean(req.Phone))

	existing, err := s.lookup(ctx, normalized, req.Email)
	if err != nil {
		return s.fallbackIdentity(err), nil
	}

	if existing.ID != constant.Empty {
		if err = s.recordContact(ctx, existing, req); err != nil {
			return s.fallbackIdentity(err), nil
		}

		return dto.ResolvedIdentity{CustomerID: existing.ID}, nil
	}

	created, err := s.create(ctx, normalized, req)
	if err != nil {
		return s.fallbackIdentity(err), nil
	}

	return dto.ResolvedIdentity{CustomerID: created, Created: true}, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}

// lookup finds an identity by normalized phone, falling back to email
// when the phone has no match.
func (s *serviceImpl) lookup(ctx context.Context, normalizedPhone, email string) (model.Customer, error) {
	customer, err := s.repo.Get(ctx, filterByField(model.FieldPhone, normalizedPhone))
	if err != nil {
		return model.Customer{}, err
	}

	if customer.ID != constant.Empty || email == constant.Empty {
		return customer, nil
	}

	return s.repo.Get(ctx, filterByField(model.FieldEmail, email))
}

func (s *serviceImpl) recordContact(ctx context.Context, existing model.Customer, req dto.ResolveCustomerRequest) error {
	now := timezone.Now()

	err := s.repo.Update(ctx, map[string]any{
		model.FieldContactCount:  existing.ContactCount + 1,
		model.FieldLastContactAt: now,
		model.FieldLastChannel:   req.Channel,
		model.FieldName:          req.Name,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: existing.ID,
	}, shared.FilterByID(existing.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update customer contact fields")

		return fmt.Errorf("failed to update customer contact fields: %w", err)
	}

	contact := model.Contact{
		ID:         uuid.NewString(),
		CustomerID: existing.ID,
		Channel:    req.Channel,
		Detail:     req.Detail,
		CreatedAt:  now,
	}

	if err = s.contactRepo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to insert customer contact history")

		return fmt.Errorf("failed to insert customer contact history: %w", err)
	}

	return nil
}

func (s *serviceImpl) create(ctx context.Context, normalizedPhone string, req dto.ResolveCustomerRequest) (string, error) {
	id := uuid.NewString()
	now := timezone.Now()

	// The pseudo-credential only exists to keep a stable identifier per
	// customer, it is not real authentication.
	credential, err := password.Hash(password.PseudoCredential(normalizedPhone))
	if err != nil {
		log.Error().Err(err).Msg("failed to derive customer credential")

		return constant.Empty, fmt.Errorf("failed to derive customer credential: %w", err)
	}

	customer := model.Customer{
		ID:            id,
		Phone:         normalizedPhone,
		Name:          req.Name,
		Email:         req.Email,
		ContactCount:  1,
		LastContactAt: now,
		LastChannel:   req.Channel,
		Credential:    credential,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}

	if err = s.repo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return constant.Empty, fmt.Errorf("failed to create customer: %w", err)
	}

	contact := model.Contact{
		ID:         uuid.NewString(),
		CustomerID: id,
		Channel:    req.Channel,
		Detail:     req.Detail,
		CreatedAt:  now,
	}

	if err = s.contactRepo.Insert(ctx, contact); err != nil {
		// History is best effort, the identity itself is in place.
		log.Error().Err(err).Msg("failed to insert customer contact history")
	}

	return id, nil
}

// fallbackIdentity hands out a locally generated id so a booking can
// proceed without durable identity linkage. The failure is logged and
// flagged on the result, never surfaced to the caller.
func (s *serviceImpl) fallbackIdentity(cause error) dto.ResolvedIdentity {
	id := fmt.Sprintf("%s%d", constant.LocalFallbackPrefix, timezone.Now().UnixMilli())

	log.Warn().Err(cause).Str("customer_id", id).Msg("identity backend unavailable, using local fallback id")

	return dto.ResolvedIdentity{CustomerID: id, Fallback: true}
}

func filterByField(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			},
		},
	}
}
