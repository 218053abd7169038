package dto

import (
	"database/sql"
	"time"

	"petcare/internal/domains/reservation/model"
	"petcare/shared"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	CageID               *string `json:"cage_id"               validate:"omitempty,uuid4"`
	PetName              string  `json:"pet_name"              validate:"required,max=100"`
	PetSpecies           string  `json:"pet_species"           validate:"required,max=50"`
	OwnerName            string  `json:"owner_name"            validate:"required,max=100"`
	CheckInDate          string  `json:"check_in_date"         validate:"required"`
	CheckOutDate         string  `json:"check_out_date"        validate:"required"`
	BoardingInstructions string  `json:"boarding_instructions" validate:"omitempty"`
}

func (c *CreateReservationRequest) ToModel(user string) (model.Reservation, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return model.Reservation{}, err
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return model.Reservation{}, err
	}

	cageID := sql.NullString{}
	if c.CageID != nil {
		cageID = sql.NullString{String: *c.CageID, Valid: true}
	}

	return model.Reservation{
		ID:                   uuid.NewString(),
		CageID:               cageID,
		PetName:              c.PetName,
		PetSpecies:           c.PetSpecies,
		OwnerName:            c.OwnerName,
		CheckInDate:          checkIn,
		CheckOutDate:         checkOut,
		Status:               model.StatusPending,
		BoardingInstructions: c.BoardingInstructions,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled rejected"`
}

type ReservationResponse struct {
	ID                   string  `json:"id"`
	CageID               *string `json:"cage_id,omitempty"`
	PetName              string  `json:"pet_name"`
	PetSpecies           string  `json:"pet_species"`
	OwnerName            string  `json:"owner_name"`
	CheckInDate          string  `json:"check_in_date"`
	CheckOutDate         string  `json:"check_out_date"`
	Status               string  `json:"status"`
	BoardingInstructions string  `json:"boarding_instructions"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.PetName = model.PetName
	r.PetSpecies = model.PetSpecies
	r.OwnerName = model.OwnerName
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = string(model.Status)
	r.BoardingInstructions = model.BoardingInstructions
	r.Metadata.FromModel(model.Metadata)

	if model.CageID.Valid {
		cageID := model.CageID.String
		r.CageID = &cageID
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type StatusChangedEvent struct {
	Event          string    `json:"event"`
	ReservationID  string    `json:"reservation_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}
