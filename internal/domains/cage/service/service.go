package service

import (
	"context"
	"fmt"
	"petcare/config"
	"petcare/infras/otel"
	"petcare/internal/domains/cage/model"
	"petcare/internal/domains/cage/model/dto"
	"petcare/internal/domains/cage/repository"
	resModel "petcare/internal/domains/reservation/model"
	resRepo "petcare/internal/domains/reservation/repository"
	"petcare/shared"
	"petcare/shared/cache"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	"petcare/shared/failure"
	"petcare/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCage    = "cage:get"
	cacheGetAllCage = "cage:gets"
	cacheCountCage  = "cage:count"
)

type Cage interface {
	Create(ctx context.Context, req dto.CreateCageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CageResponse, error)
	Update(ctx context.Context, req dto.UpdateCageRequest, id string) error
	Delete(ctx context.Context, id string) error
	PermanentDelete(ctx context.Context, id string) error
	Board(ctx context.Context) (dto.BoardResponse, error)
}

type serviceImpl struct {
	repo            repository.Cage
	reservationRepo resRepo.Reservation
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(repo repository.Cage, reservationRepo resRepo.Reservation, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Cage {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// duplicateNumberFilter matches another active cage carrying the same number.
func duplicateNumberFilter(number, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    number,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	duplicate, err := s.repo.Exist(ctx, duplicateNumberFilter(req.Number, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for duplicate cage number")

		return fmt.Errorf("failed to check for duplicate cage number: %w", err)
	}

	if duplicate {
		return failure.BadRequestFromString("cage number already in use") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create cage")

		return fmt.Errorf("failed to create cage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCage)
		shared.InvalidateCaches(c, s.cache, cacheCountCage)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cages")

		return res, fmt.Errorf("failed to count cages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cages")

		return res, fmt.Errorf("failed to get cages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cage count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cages")

		return res, fmt.Errorf("failed to count cages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cage count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cage")

		return res, nil
	}

	cage, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cage")

		return res, fmt.Errorf("failed to get cage: %w", err)
	}

	if cage.ID == constant.Empty {
		return res, failure.NotFound("cage not found") // nolint:wrapcheck
	}

	res.FromModel(cage)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cage to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cage exists")

		return fmt.Errorf("failed to check if cage exists: %w", err)
	}

	if !exist {
		log.Error().Msg("cage not found")

		return failure.NotFound("cage not found") // nolint:wrapcheck
	}

	if req.Number != constant.Empty {
		duplicate, err := s.repo.Exist(ctx, duplicateNumberFilter(req.Number, id))
		if err != nil {
			log.Error().Err(err).Msg("failed to check for duplicate cage number")

			return fmt.Errorf("failed to check for duplicate cage number: %w", err)
		}

		if duplicate {
			return failure.BadRequestFromString("cage number already in use") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update cage")

		return fmt.Errorf("failed to update cage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete cage from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCage)
		shared.InvalidateCaches(c, s.cache, cacheCountCage)
	}()

	return nil
}

// Delete retires a cage without touching its history. The row stays so old
// reservations keep a valid reference.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cage exists")

		return fmt.Errorf("failed to check if cage exists: %w", err)
	}

	if !exist {
		log.Error().Msg("cage not found")

		return failure.NotFound("cage not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldActive:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate cage")

		return fmt.Errorf("failed to deactivate cage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete cage from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCage)
		shared.InvalidateCaches(c, s.cache, cacheCountCage)
	}()

	return nil
}

// PermanentDelete removes the row for good. Refused while any reservation
// still references the cage, regardless of reservation status.
func (s *serviceImpl) PermanentDelete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PermanentDelete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if cage exists")

		return fmt.Errorf("failed to check if cage exists: %w", err)
	}

	if !exist {
		log.Error().Msg("cage not found")

		return failure.NotFound("cage not found") // nolint:wrapcheck
	}

	referenced, err := s.reservationRepo.Exist(ctx, shared.FilterByID(id, resModel.FieldCageID, resModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check cage references")

		return fmt.Errorf("failed to check cage references: %w", err)
	}

	if referenced {
		return failure.Conflict("cage is referenced by reservations") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to permanently delete cage")

		return fmt.Errorf("failed to permanently delete cage: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete cage from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCage)
		shared.InvalidateCaches(c, s.cache, cacheCountCage)
	}()

	return nil
}

// Board lists every active cage with its occupancy derived at the current
// instant. Never cached: the answer changes as time passes.
func (s *serviceImpl) Board(ctx context.Context) (res dto.BoardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Board")
	defer scope.End()
	defer scope.TraceIfError(err)

	activeFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	cages, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.TableName + "." + model.FieldNumber, SortDir: gDto.SortDirAsc}, activeFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cages for board")

		return res, fmt.Errorf("failed to get cages for board: %w", err)
	}

	res.Cages = make([]dto.CageView, len(cages))

	if len(cages) == 0 {
		return res, nil
	}

	cageIDs := make([]string, len(cages))
	for i, cage := range cages {
		cageIDs[i] = cage.ID
	}

	reservationFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    resModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(resModel.StatusConfirmed),
				Table:    resModel.TableName,
			},
			gDto.Filter{
				Field:    resModel.FieldCageID,
				Operator: gDto.FilterOperatorIn,
				Value:    cageIDs,
				Table:    resModel.TableName,
			},
		},
	}

	reservations, err := s.reservationRepo.GetAll(ctx, gDto.QueryParams{SortBy: resModel.TableName + "." + resModel.FieldCheckInDate, SortDir: gDto.SortDirAsc}, reservationFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for board")

		return res, fmt.Errorf("failed to get reservations for board: %w", err)
	}

	byCage := make(map[string][]resModel.Reservation, len(cages))
	for _, reservation := range reservations {
		byCage[reservation.CageID.String] = append(byCage[reservation.CageID.String], reservation)
	}

	now := timezone.Now()

	for i, cage := range cages {
		resolution := model.ResolveAvailability(byCage[cage.ID], now)
		if resolution.Conflict {
			log.Warn().Str("cage_id", cage.ID).Msg("multiple confirmed reservations overlap on the same cage")
		}

		res.Cages[i].FromResolution(cage, resolution)
	}

	return res, nil
}
