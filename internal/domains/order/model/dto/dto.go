package dto

import (
	"mime/multipart"
	"time"

	"petcare/internal/domains/order/model"
	"petcare/shared"
	gDto "petcare/shared/dto"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	TotalAmount   float64 `json:"total_amount"   validate:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash gcash card"`
}

func (c *CreateOrderRequest) ToModel(user string) model.Order {
	return model.Order{
		ID:            uuid.NewString(),
		ClientID:      user,
		TotalAmount:   c.TotalAmount,
		PaymentMethod: c.PaymentMethod,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped ready_to_pickup delivered completed cancelled"`
}

type UploadReceiptRequest struct {
	Receipt     *multipart.FileHeader `json:"receipt" validate:"required,mimetypes=image/png image/jpg image/jpeg application/pdf,maxfilesize=2"`
	ReceiptFile multipart.File        `json:"-"`
}

type OrderResponse struct {
	ID              string  `json:"id"`
	ClientID        string  `json:"client_id"`
	TotalAmount     float64 `json:"total_amount"`
	PaymentMethod   string  `json:"payment_method"`
	ReceiptURL      string  `json:"receipt_url"`
	ReceiptVerified bool    `json:"receipt_verified"`
	Status          string  `json:"status"`
	gDto.Metadata
}

func (r *OrderResponse) FromModel(model model.Order) {
	r.ID = model.ID
	r.ClientID = model.ClientID
	r.TotalAmount = model.TotalAmount
	r.PaymentMethod = model.PaymentMethod
	r.ReceiptURL = model.ReceiptURL
	r.ReceiptVerified = model.ReceiptVerified
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type GetOrdersResponse struct {
	Orders    []OrderResponse `json:"orders"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetOrdersResponse) FromModels(models []model.Order, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Orders = make([]OrderResponse, len(models))
	for i, mod := range models {
		r.Orders[i].FromModel(mod)
	}
}

type StatusChangedEvent struct {
	Event          string    `json:"event"`
	OrderID        string    `json:"order_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
