package dto

import (
	"petcare/internal/domains/cage/model"
	resModel "petcare/internal/domains/reservation/model"
	"petcare/shared"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateCageRequest struct {
	Number       string   `json:"number"        validate:"required,max=20"`
	CageType     string   `json:"cage_type"     validate:"required,max=50"`
	SizeCategory string   `json:"size_category" validate:"required,oneof=small medium large extra_large"`
	Capacity     int      `json:"capacity"      validate:"required,min=1"`
	DailyRate    float64  `json:"daily_rate"    validate:"omitempty,min=0"`
	Amenities    []string `json:"amenities"     validate:"omitempty,dive,max=50"`
	Description  string   `json:"description"   validate:"omitempty"`
	Active       *bool    `json:"active"        validate:"omitempty"`
}

func (c *CreateCageRequest) ToModel(user string) model.Cage {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Cage{
		ID:           uuid.NewString(),
		Number:       c.Number,
		CageType:     c.CageType,
		SizeCategory: c.SizeCategory,
		Capacity:     c.Capacity,
		DailyRate:    c.DailyRate,
		Amenities:    pq.StringArray(c.Amenities),
		Description:  c.Description,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCageRequest struct {
	Number       string         `db:"number"        json:"number"        validate:"omitempty,max=20"`
	CageType     string         `db:"cage_type"     json:"cage_type"     validate:"omitempty,max=50"`
	SizeCategory string         `db:"size_category" json:"size_category" validate:"omitempty,oneof=small medium large extra_large"`
	Capacity     *int           `db:"capacity"      json:"capacity"      validate:"omitempty,min=1"`
	DailyRate    *float64       `db:"daily_rate"    json:"daily_rate"    validate:"omitempty,min=0"`
	Amenities    pq.StringArray `db:"amenities"     json:"amenities"     validate:"omitempty,dive,max=50"`
	Description  string         `db:"description"   json:"description"   validate:"omitempty"`
	Active       *bool          `db:"active"        json:"active"        validate:"omitempty"`
}

type CageResponse struct {
	ID           string   `json:"id"`
	Number       string   `json:"number"`
	CageType     string   `json:"cage_type"`
	SizeCategory string   `json:"size_category"`
	Capacity     int      `json:"capacity"`
	DailyRate    float64  `json:"daily_rate"`
	Amenities    []string `json:"amenities"`
	Description  string   `json:"description"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *CageResponse) FromModel(model model.Cage) {
	r.ID = model.ID
	r.Number = model.Number
	r.CageType = model.CageType
	r.SizeCategory = model.SizeCategory
	r.Capacity = model.Capacity
	r.DailyRate = model.DailyRate
	r.Amenities = model.Amenities
	r.Description = model.Description
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetCagesResponse struct {
	Cages     []CageResponse `json:"cages"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetCagesResponse) FromModels(models []model.Cage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cages = make([]CageResponse, len(models))
	for i, mod := range models {
		r.Cages[i].FromModel(mod)
	}
}

type ReservationSummary struct {
	ID           string `json:"id"`
	PetName      string `json:"pet_name"`
	PetSpecies   string `json:"pet_species"`
	OwnerName    string `json:"owner_name"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func summaryFrom(reservation *resModel.Reservation) *ReservationSummary {
	if reservation == nil {
		return nil
	}

	return &ReservationSummary{
		ID:           reservation.ID,
		PetName:      reservation.PetName,
		PetSpecies:   reservation.PetSpecies,
		OwnerName:    reservation.OwnerName,
		CheckInDate:  reservation.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: reservation.CheckOutDate.Format(constant.DateOnlyFormat),
	}
}

type CageView struct {
	CageResponse
	Availability string              `json:"availability"`
	Current      *ReservationSummary `json:"current,omitempty"`
	Next         *ReservationSummary `json:"next,omitempty"`
	Conflict     bool                `json:"conflict,omitempty"`
}

func (v *CageView) FromResolution(cage model.Cage, resolution model.Resolution) {
	v.CageResponse.FromModel(cage)
	v.Availability = string(resolution.Status)
	v.Current = summaryFrom(resolution.Current)
	v.Next = summaryFrom(resolution.Next)
	v.Conflict = resolution.Conflict
}

type BoardResponse struct {
	Cages []CageView `json:"cages"`
}
