package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"yujin/infras/otel"
	"yujin/infras/postgres"
	"yujin/internal/domains/booking/model"
	"yujin/shared/constant"
	gDto "yujin/shared/dto"
	gRepo "yujin/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountActiveForSlot(ctx context.Context, date, slot string) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountActiveForSlot counts the non-cancelled bookings holding a
// (date, slot) pair. This is the number the availability checker and
// the reservation re-check both work from.
func (repo *repositoryImpl) CountActiveForSlot(ctx context.Context, date, slot string) (int, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTimeSlot,
				Operator: gDto.FilterOperatorEq,
				Value:    slot,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    constant.BookingStatusCancelled,
				Table:    model.TableName,
			},
		},
	}

	return repo.Count(ctx, filter) //nolint:wrapcheck
}
