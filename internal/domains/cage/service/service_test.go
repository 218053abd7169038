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
	"petcare/infras/otel/mocks"
	cageMocks "petcare/internal/domains/cage/mocks"
	"petcare/internal/domains/cage/model"
	"petcare/internal/domains/cage/model/dto"
	"petcare/internal/domains/cage/service"
	resMocks "petcare/internal/domains/reservation/mocks"
	resModel "petcare/internal/domains/reservation/model"
	cacheMocks "petcare/shared/cache/mocks"
	"petcare/shared/constant"
	"petcare/shared/failure"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"
)

func TestCageService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := cageMocks.NewMockCage(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreateCageRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateCageRequest{
				Number:       "A-01",
				CageType:     "standard",
				SizeCategory: model.SizeMedium,
				Capacity:     1,
				DailyRate:    25,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "duplicate cage number",
			req: dto.CreateCageRequest{
				Number:       "A-01",
				CageType:     "standard",
				SizeCategory: model.SizeMedium,
				Capacity:     1,
				DailyRate:    25,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error",
			req: dto.CreateCageRequest{
				Number:       "A-02",
				CageType:     "standard",
				SizeCategory: model.SizeSmall,
				Capacity:     1,
				DailyRate:    18,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

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

func TestCageService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := cageMocks.NewMockCage(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateCageRequest
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateCageRequest{CageType: "isolation"},
			id:   "cage-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cage not found",
			req:  dto.UpdateCageRequest{CageType: "isolation"},
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "renumbering onto a taken number",
			req:  dto.UpdateCageRequest{Number: "B-07"},
			id:   "cage-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Update(ctx, tt.req, tt.id)

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

func TestCageService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := cageMocks.NewMockCage(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mockOtel)

	t.Run("deactivates instead of deleting", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, false, fields[model.FieldActive])

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		err := svc.Delete(ctx, "cage-id-123")

		assert.NoError(t, err)
	})

	t.Run("cage not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		err := svc.Delete(ctx, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestCageService_PermanentDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := cageMocks.NewMockCage(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful permanent delete",
			id:   "cage-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockResRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "refused while reservations reference the cage",
			id:   "cage-id-123",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockResRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "cage not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.PermanentDelete(ctx, tt.id)

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

func TestCageService_Board(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := cageMocks.NewMockCage(ctrl)
	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockResRepo, cfg, mockCache, mockOtel)

	now := timezone.Now()

	cages := []model.Cage{
		{
			ID:           "cage-1",
			Number:       "A-01",
			CageType:     "standard",
			SizeCategory: model.SizeMedium,
			Capacity:     1,
			DailyRate:    25,
			Active:       true,
			Metadata: gModel.Metadata{
				CreatedBy:  "test-user",
				ModifiedBy: "test-user",
			},
		},
		{
			ID:           "cage-2",
			Number:       "A-02",
			CageType:     "standard",
			SizeCategory: model.SizeLarge,
			Capacity:     2,
			DailyRate:    40,
			Active:       true,
		},
	}

	reservations := []resModel.Reservation{
		{
			ID:           "res-1",
			CageID:       sql.NullString{String: "cage-1", Valid: true},
			PetName:      "Milo",
			PetSpecies:   "cat",
			OwnerName:    "Dana Cruz",
			CheckInDate:  now.Add(-24 * time.Hour),
			CheckOutDate: now.Add(24 * time.Hour),
			Status:       resModel.StatusConfirmed,
		},
	}

	t.Run("derives per cage availability", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cages, nil)

		mockResRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(reservations, nil)

		board, err := svc.Board(context.Background())

		assert.NoError(t, err)
		assert.Len(t, board.Cages, 2)
		assert.Equal(t, string(model.AvailabilityOccupied), board.Cages[0].Availability)
		assert.NotNil(t, board.Cages[0].Current)
		assert.Equal(t, string(model.AvailabilityAvailable), board.Cages[1].Availability)
		assert.Nil(t, board.Cages[1].Current)
	})

	t.Run("empty board", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Cage{}, nil)

		board, err := svc.Board(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, board.Cages)
	})

	t.Run("cage lookup error", func(t *testing.T) {
		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := svc.Board(context.Background())

		assert.Error(t, err)
	})
}
