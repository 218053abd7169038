package model

import "petcare/shared/model"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldPrice       = "price"
	FieldStock       = "stock"
	FieldPhoto       = "photo"
	FieldDescription = "description"
	FieldActive      = "active"
)

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Category    string  `db:"category"`
	Price       float64 `db:"price"`
	Stock       int     `db:"stock"`
	Photo       string  `db:"photo"`
	Description string  `db:"description"`
	Active      bool    `db:"active"`
	model.Metadata
}
