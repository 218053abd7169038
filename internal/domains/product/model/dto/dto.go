package dto

import (
	"mime/multipart"

	"petcare/internal/domains/product/model"
	"petcare/shared"
	gDto "petcare/shared/dto"
	gModel "petcare/shared/model"
	"petcare/shared/timezone"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name        string                `json:"name"        validate:"required,max=100"`
	Category    string                `json:"category"    validate:"required,max=50"`
	Price       float64               `json:"price"       validate:"required,gt=0"`
	Stock       int                   `json:"stock"       validate:"omitempty,min=0"`
	Photo       *multipart.FileHeader `json:"photo"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile   multipart.File        `json:"-"`
	Description string                `json:"description" validate:"omitempty"`
	Active      *bool                 `json:"active"      validate:"omitempty"`
}

func (c *CreateProductRequest) ToModel(user string, photoURL string) model.Product {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Product{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Price:       c.Price,
		Stock:       c.Stock,
		Photo:       photoURL,
		Description: c.Description,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateProductRequest struct {
	Name        string                `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category    string                `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Price       *float64              `db:"price"       json:"price"       validate:"omitempty,gt=0"`
	Stock       *int                  `db:"stock"       json:"stock"       validate:"omitempty,min=0"`
	Photo       *multipart.FileHeader `json:"photo"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	PhotoFile   multipart.File        `json:"-"`
	Description string                `db:"description" json:"description" validate:"omitempty"`
	Active      *bool                 `db:"active"      json:"active"      validate:"omitempty"`
}

type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Photo       string  `json:"photo"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *ProductResponse) FromModel(model model.Product) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Price = model.Price
	r.Stock = model.Stock
	r.Photo = model.Photo
	r.Description = model.Description
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}
