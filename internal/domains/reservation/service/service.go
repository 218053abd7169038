package service

import (
	"context"
	"fmt"
	"petcare/config"
	"petcare/infras/kafka"
	"petcare/infras/otel"
	cageModel "petcare/internal/domains/cage/model"
	cageRepo "petcare/internal/domains/cage/repository"
	"petcare/internal/domains/reservation/model"
	"petcare/internal/domains/reservation/model/dto"
	"petcare/internal/domains/reservation/repository"
	"petcare/shared"
	"petcare/shared/cache"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	"petcare/shared/failure"
	"petcare/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	cageRepo cageRepo.Cage
	cfg      *config.Config
	cache    cache.RedisCache
	kafka    kafka.Client
	otel     otel.Otel
}

func New(repo repository.Reservation, cageRepo cageRepo.Cage, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:     repo,
		cageRepo: cageRepo,
		cfg:      cfg,
		cache:    cache,
		kafka:    kafka,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.CageID != nil {
		activeCageFilter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    cageModel.FieldID,
					Operator: gDto.FilterOperatorEq,
					Value:    *req.CageID,
					Table:    cageModel.TableName,
				},
				gDto.Filter{
					Field:    cageModel.FieldActive,
					Operator: gDto.FilterOperatorEq,
					Value:    true,
					Table:    cageModel.TableName,
				},
			},
		}

		cageExists, err := s.cageRepo.Exist(ctx, activeCageFilter)
		if err != nil {
			log.Error().Err(err).Msg("failed to check if cage exists")

			return fmt.Errorf("failed to check if cage exists: %w", err)
		}

		if !cageExists {
			return failure.BadRequestFromString("cage does not exist") // nolint:wrapcheck
		}
	}

	reservation, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !reservation.CheckOutDate.After(reservation.CheckInDate) {
		return failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

// overlapFilter matches another confirmed reservation on the same cage whose
// stay intersects the given one. Intervals are half open, so back-to-back
// stays where one checks out the day the other checks in do not collide.
func overlapFilter(reservation model.Reservation) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCageID,
				Operator: gDto.FilterOperatorEq,
				Value:    reservation.CageID.String,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusConfirmed),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "exclude_id",
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    reservation.ID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "before_check_out",
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorLess,
				Value:    reservation.CheckOutDate,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "after_check_in",
				Field:    model.FieldCheckOutDate,
				Operator: gDto.FilterOperatorGreater,
				Value:    reservation.CheckInDate,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	next := model.Status(req.Status)

	if !reservation.Status.CanTransitionTo(next) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change reservation status from %s to %s", reservation.Status, next)) // nolint:wrapcheck
	}

	if next == model.StatusConfirmed && reservation.CageID.Valid {
		overlapping, err := s.repo.Exist(ctx, overlapFilter(reservation))
		if err != nil {
			log.Error().Err(err).Msg("failed to check for overlapping reservations")

			return fmt.Errorf("failed to check for overlapping reservations: %w", err)
		}

		if overlapping {
			return failure.Conflict("cage is already reserved for the requested dates") // nolint:wrapcheck
		}
	}

	return s.transition(ctx, reservation, next, user)
}

// Cancel lets a client withdraw their own reservation while it is still
// pending or confirmed.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.CreatedBy != user {
		return failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if !reservation.Status.CanTransitionTo(model.StatusCancelled) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot cancel a %s reservation", reservation.Status)) // nolint:wrapcheck
	}

	return s.transition(ctx, reservation, model.StatusCancelled, user)
}

func (s *serviceImpl) transition(ctx context.Context, reservation model.Reservation, next model.Status, user string) error {
	updatedFields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(reservation.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)

		event := dto.StatusChangedEvent{
			Event:          constant.EventReservationStatusChanged,
			ReservationID:  reservation.ID,
			PreviousStatus: string(reservation.Status),
			NewStatus:      string(next),
			OccurredAt:     timezone.Now(),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.ReservationEvents, kafka.Message{Key: reservation.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to publish reservation status event")
		}
	}()

	return nil
}
