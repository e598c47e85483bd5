package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"yujin/infras/otel"
	"yujin/infras/postgres"
	"yujin/internal/domains/customer/model"
	gDto "yujin/shared/dto"
	gRepo "yujin/shared/repository"
)

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Contact interface {
	Insert(ctx context.Context, model model.Contact) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Contact, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type contactRepositoryImpl struct {
	gRepo.Repository[model.Contact]
	db   *postgres.Connection
	otel otel.Otel
}

func NewContact(db *postgres.Connection, otel otel.Otel) Contact {
	return &contactRepositoryImpl{
		Repository: gRepo.NewRepository[model.Contact](model.ContactEntityName, model.ContactTableName, model.ContactFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
