package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"petcare/config"
	kafkaMocks "petcare/infras/kafka/mocks"
	"petcare/infras/otel/mocks"
	s3Mocks "petcare/infras/s3/mocks"
	orderMocks "petcare/internal/domains/order/mocks"
	"petcare/internal/domains/order/model"
	"petcare/internal/domains/order/model/dto"
	"petcare/internal/domains/order/service"
	cacheMocks "petcare/shared/cache/mocks"
	"petcare/shared/constant"
	"petcare/shared/failure"
	gModel "petcare/shared/model"
)

func pendingOrder(id, clientID, paymentMethod, receiptURL string, verified bool) model.Order {
	return model.Order{
		ID:              id,
		ClientID:        clientID,
		TotalAmount:     150,
		PaymentMethod:   paymentMethod,
		ReceiptURL:      receiptURL,
		ReceiptVerified: verified,
		Status:          model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedBy:  clientID,
			ModifiedBy: clientID,
		},
	}
}

func newOrderService(t *testing.T) (service.Order, *orderMocks.MockOrder, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := orderMocks.NewMockOrder(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.OrderEvents = "order-events"
	cfg.External.S3.BucketName = "petcare"

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockKafka, mockS3, mockOtel), mockRepo, mockS3
}

func TestOrderService_Create(t *testing.T) {
	svc, mockRepo, _ := newOrderService(t)

	tests := []struct {
		name      string
		req       dto.CreateOrderRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateOrderRequest{
				TotalAmount:   150,
				PaymentMethod: model.PaymentGcash,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateOrderRequest{
				TotalAmount:   150,
				PaymentMethod: model.PaymentCash,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "client-1")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	svc, mockRepo, _ := newOrderService(t)

	confirmed := pendingOrder("order-2", "client-1", model.PaymentGcash, "https://cdn/receipt.png", true)
	confirmed.Status = model.StatusConfirmed

	tests := []struct {
		name      string
		req       dto.UpdateStatusRequest
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cash order confirms without a receipt",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "order-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentCash, "", false), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unverified gcash order stays pending",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "order-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "https://cdn/receipt.png", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unverified order can still be cancelled",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusCancelled)},
			id:   "order-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "", false), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "confirmed order moves to processing",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusProcessing)},
			id:   "order-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "invalid transition",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusDelivered)},
			id:   "order-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentCash, "", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "order not found",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Order{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-user")
			err := svc.UpdateStatus(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_UploadReceipt(t *testing.T) {
	svc, mockRepo, mockS3 := newOrderService(t)

	req := dto.UploadReceiptRequest{
		Receipt: &multipart.FileHeader{Filename: "receipt.png"},
	}

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful upload",
			user: "client-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "", false), nil)

				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn/order/receipt.png", nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "re-upload replaces the old file and resets verification",
			user: "client-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "https://cdn/order/old.png", true), nil)

				mockS3.EXPECT().
					UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn/order/new.png", nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, false, fields[model.FieldReceiptVerified])

						return nil
					})

				mockS3.EXPECT().
					GetObjectNameFromURL(gomock.Any(), "https://cdn/order/old.png").
					Return("old.png").
					AnyTimes()

				mockS3.EXPECT().
					DeleteFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "someone else's order",
			user: "client-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "cash order refuses a receipt",
			user: "client-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentCash, "", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "only pending orders accept receipts",
			user: "client-1",
			setupMock: func() {
				order := pendingOrder("order-1", "client-1", model.PaymentGcash, "https://cdn/receipt.png", true)
				order.Status = model.StatusConfirmed

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(order, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			res, err := svc.UploadReceipt(ctx, req, "order-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.False(t, res.ReceiptVerified)
				assert.NotEmpty(t, res.ReceiptURL)
			}
		})
	}
}

func TestOrderService_VerifyReceipt(t *testing.T) {
	svc, mockRepo, _ := newOrderService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "verification confirms the order in one update",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "https://cdn/receipt.png", false), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, string(model.StatusConfirmed), fields[model.FieldStatus])
						assert.Equal(t, true, fields[model.FieldReceiptVerified])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "nothing uploaded yet",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentGcash, "", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "cash orders have nothing to verify",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingOrder("order-1", "client-1", model.PaymentCash, "", false), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "only pending orders can be verified",
			setupMock: func() {
				order := pendingOrder("order-1", "client-1", model.PaymentGcash, "https://cdn/receipt.png", true)
				order.Status = model.StatusConfirmed

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(order, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-user")
			err := svc.VerifyReceipt(ctx, "order-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
