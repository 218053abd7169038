package service

import (
	"context"
	"fmt"
	"petcare/config"
	"petcare/infras/kafka"
	"petcare/infras/otel"
	"petcare/infras/s3"
	"petcare/internal/domains/order/model"
	"petcare/internal/domains/order/model/dto"
	"petcare/internal/domains/order/repository"
	"petcare/shared"
	"petcare/shared/cache"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	"petcare/shared/failure"
	"petcare/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOrder    = "order:get"
	cacheGetAllOrder = "order:gets"
	cacheCountOrder  = "order:count"
)

type Order interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetOrdersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	UploadReceipt(ctx context.Context, req dto.UploadReceiptRequest, id string) (dto.OrderResponse, error)
	VerifyReceipt(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Order
	cfg   *config.Config
	cache cache.RedisCache
	kafka kafka.Client
	s3    s3.S3
	otel  otel.Otel
}

func New(repo repository.Order, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, s3 s3.S3, otel otel.Otel) Order {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		kafka: kafka,
		s3:    s3,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOrderRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return fmt.Errorf("failed to create order: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetOrdersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for orders")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get orders")

		return res, fmt.Errorf("failed to get orders: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save orders to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountOrder, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count orders")

		return res, fmt.Errorf("failed to count orders: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save order to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found") // nolint:wrapcheck
	}

	next := model.Status(req.Status)

	if !order.Status.CanTransitionTo(next) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change order status from %s to %s", order.Status, next)) // nolint:wrapcheck
	}

	// An unverified payment proof pins the order at pending. Cancellation is
	// the only way out; confirmation goes through VerifyReceipt.
	if order.Status == model.StatusPending && next != model.StatusCancelled &&
		order.RequiresReceipt() && !order.ReceiptVerified {
		return failure.Conflict("payment receipt has not been verified") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.afterStatusChange(ctx, order, next)

	return nil
}

// UploadReceipt attaches a payment proof to the caller's own pending order.
// A re-upload replaces the previous file and resets verification.
func (s *serviceImpl) UploadReceipt(ctx context.Context, req dto.UploadReceiptRequest, id string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return res, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return res, failure.NotFound("order not found") // nolint:wrapcheck
	}

	if order.ClientID != user {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	if !order.RequiresReceipt() {
		return res, failure.BadRequestFromString("cash orders do not carry a payment receipt") // nolint:wrapcheck
	}

	if order.Status != model.StatusPending {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot upload a receipt for a %s order", order.Status)) // nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ReceiptFile, req.Receipt, req.Receipt.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload receipt to S3")

		return res, fmt.Errorf("failed to upload receipt to S3: %w", err)
	}

	previousURL := order.ReceiptURL

	updatedFields := map[string]any{
		model.FieldReceiptURL:      url,
		model.FieldReceiptVerified: false,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to store receipt URL")

		return res, fmt.Errorf("failed to store receipt URL: %w", err)
	}

	order.ReceiptURL = url
	order.ReceiptVerified = false
	res.FromModel(order)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete order from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)

		if previousURL != constant.Empty {
			objectName := s.s3.GetObjectNameFromURL(bucketName, previousURL)
			if objectName == constant.Empty {
				log.Warn().Str("url", previousURL).Msg("failed to extract object name from URL")

				return
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete replaced receipt from S3")
			}
		}
	}()

	return res, nil
}

// VerifyReceipt confirms the payment proof: the status flip and the verified
// flag land in a single UPDATE so the order is never confirmed while marked
// unverified.
func (s *serviceImpl) VerifyReceipt(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyReceipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == constant.Empty {
		return failure.NotFound("order not found") // nolint:wrapcheck
	}

	if !order.RequiresReceipt() {
		return failure.BadRequestFromString("cash orders do not carry a payment receipt") // nolint:wrapcheck
	}

	if order.Status != model.StatusPending {
		return failure.BadRequestFromString(fmt.Sprintf("cannot verify a receipt for a %s order", order.Status)) // nolint:wrapcheck
	}

	if order.ReceiptURL == constant.Empty {
		return failure.BadRequestFromString("no receipt has been uploaded") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:          string(model.StatusConfirmed),
		model.FieldReceiptVerified: true,
		constant.FieldModifiedAt:   timezone.Now(),
		constant.FieldModifiedBy:   user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to verify receipt")

		return fmt.Errorf("failed to verify receipt: %w", err)
	}

	s.afterStatusChange(ctx, order, model.StatusConfirmed)

	return nil
}

func (s *serviceImpl) afterStatusChange(ctx context.Context, order model.Order, next model.Status) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetOrder, order.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete order from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllOrder)
		shared.InvalidateCaches(c, s.cache, cacheCountOrder)

		event := dto.StatusChangedEvent{
			Event:          constant.EventOrderStatusChanged,
			OrderID:        order.ID,
			PreviousStatus: string(order.Status),
			NewStatus:      string(next),
			OccurredAt:     timezone.Now(),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.OrderEvents, kafka.Message{Key: order.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish order status event")
		}
	}()
}
