package model

import (
	"petcare/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "cages"
	EntityName = "cage"

	FieldID           = "id"
	FieldNumber       = "number"
	FieldCageType     = "cage_type"
	FieldSizeCategory = "size_category"
	FieldCapacity     = "capacity"
	FieldDailyRate    = "daily_rate"
	FieldAmenities    = "amenities"
	FieldDescription  = "description"
	FieldActive       = "active"
)

const (
	SizeSmall      = "small"
	SizeMedium     = "medium"
	SizeLarge      = "large"
	SizeExtraLarge = "extra_large"
)

type Cage struct {
	ID           string         `db:"id"`
	Number       string         `db:"number"`
	CageType     string         `db:"cage_type"`
	SizeCategory string         `db:"size_category"`
	Capacity     int            `db:"capacity"`
	DailyRate    float64        `db:"daily_rate"`
	Amenities    pq.StringArray `db:"amenities"`
	Description  string         `db:"description"`
	Active       bool           `db:"active"`
	model.Metadata
}
