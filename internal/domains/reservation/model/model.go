package model

import (
	"database/sql"
	"time"

	"petcare/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                   = "id"
	FieldCageID               = "cage_id"
	FieldPetName              = "pet_name"
	FieldPetSpecies           = "pet_species"
	FieldOwnerName            = "owner_name"
	FieldCheckInDate          = "check_in_date"
	FieldCheckOutDate         = "check_out_date"
	FieldStatus               = "status"
	FieldBoardingInstructions = "boarding_instructions"
	FieldCreatedBy            = "created_by"
)

type Reservation struct {
	ID                   string         `db:"id"`
	CageID               sql.NullString `db:"cage_id"`
	PetName              string         `db:"pet_name"`
	PetSpecies           string         `db:"pet_species"`
	OwnerName            string         `db:"owner_name"`
	CheckInDate          time.Time      `db:"check_in_date"`
	CheckOutDate         time.Time      `db:"check_out_date"`
	Status               Status         `db:"status"`
	BoardingInstructions string         `db:"boarding_instructions"`
	model.Metadata
}
