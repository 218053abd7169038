package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"petcare/infras/otel"
	"petcare/infras/postgres"
	"petcare/internal/domains/cage/model"
	gDto "petcare/shared/dto"
	gRepo "petcare/shared/repository"
)

type Cage interface {
	Insert(ctx context.Context, model model.Cage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Cage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Cage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Cage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Cage {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Cage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
