package service_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"petcare/config"
	kafkaMocks "petcare/infras/kafka/mocks"
	"petcare/infras/otel/mocks"
	cageMocks "petcare/internal/domains/cage/mocks"
	resMocks "petcare/internal/domains/reservation/mocks"
	"petcare/internal/domains/reservation/model"
	"petcare/internal/domains/reservation/model/dto"
	"petcare/internal/domains/reservation/service"
	cacheMocks "petcare/shared/cache/mocks"
	"petcare/shared/constant"
	"petcare/shared/failure"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"
)

func stringPtr(s string) *string {
	return &s
}

func pendingReservation(id, cageID, owner string) model.Reservation {
	return model.Reservation{
		ID:           id,
		CageID:       sql.NullString{String: cageID, Valid: cageID != ""},
		PetName:      "Milo",
		PetSpecies:   "cat",
		OwnerName:    "Dana Cruz",
		CheckInDate:  timezone.Now().Add(24 * time.Hour),
		CheckOutDate: timezone.Now().Add(72 * time.Hour),
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockCageRepo := cageMocks.NewMockCage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockCageRepo, cfg, mockCache, mockKafka, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation with a cage",
			req: dto.CreateReservationRequest{
				CageID:       stringPtr("0c3b73e2-9c14-4f44-9c40-0a4a25d51925"),
				PetName:      "Milo",
				PetSpecies:   "cat",
				OwnerName:    "Dana Cruz",
				CheckInDate:  "2026-09-01",
				CheckOutDate: "2026-09-05",
			},
			setupMock: func() {
				mockCageRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "successful creation without a cage",
			req: dto.CreateReservationRequest{
				PetName:      "Rex",
				PetSpecies:   "dog",
				OwnerName:    "Ben Ocampo",
				CheckInDate:  "2026-09-01",
				CheckOutDate: "2026-09-02",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "unknown cage",
			req: dto.CreateReservationRequest{
				CageID:       stringPtr("0c3b73e2-9c14-4f44-9c40-0a4a25d51925"),
				PetName:      "Milo",
				PetSpecies:   "cat",
				OwnerName:    "Dana Cruz",
				CheckInDate:  "2026-09-01",
				CheckOutDate: "2026-09-05",
			},
			setupMock: func() {
				mockCageRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "check-out not after check-in",
			req: dto.CreateReservationRequest{
				PetName:      "Milo",
				PetSpecies:   "cat",
				OwnerName:    "Dana Cruz",
				CheckInDate:  "2026-09-05",
				CheckOutDate: "2026-09-05",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "malformed date",
			req: dto.CreateReservationRequest{
				PetName:      "Milo",
				PetSpecies:   "cat",
				OwnerName:    "Dana Cruz",
				CheckInDate:  "01-09-2026",
				CheckOutDate: "2026-09-05",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

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

func TestReservationService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockCageRepo := cageMocks.NewMockCage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.ReservationEvents = "reservation-events"

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

	svc := service.New(mockRepo, mockCageRepo, cfg, mockCache, mockKafka, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateStatusRequest
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "confirm a pending reservation",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-1", "cage-1", "client-1"), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "confirming an overlapping stay is refused",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-1", "cage-1", "client-1"), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "confirming an unassigned reservation skips the overlap check",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "res-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-2", "", "client-1"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "invalid transition",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusCompleted)},
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-1", "cage-1", "client-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "reservation not found",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			req:  dto.UpdateStatusRequest{Status: string(model.StatusConfirmed)},
			id:   "res-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errors.New("database error"))
			},
			wantErr: true,
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

func TestReservationService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := resMocks.NewMockReservation(ctrl)
	mockCageRepo := cageMocks.NewMockCage(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.ReservationEvents = "reservation-events"

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

	svc := service.New(mockRepo, mockCageRepo, cfg, mockCache, mockKafka, mockOtel)

	completed := pendingReservation("res-3", "cage-1", "client-1")
	completed.Status = model.StatusCompleted

	tests := []struct {
		name      string
		id        string
		user      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner cancels a pending reservation",
			id:   "res-1",
			user: "client-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-1", "cage-1", "client-1"), nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "someone else's reservation",
			id:   "res-1",
			user: "client-2",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("res-1", "cage-1", "client-1"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "completed stay cannot be cancelled",
			id:   "res-3",
			user: "client-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.user)
			err := svc.Cancel(ctx, tt.id)

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
