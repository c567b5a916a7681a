package product

import "errors"

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	// ids of the users holding this product
	Owners []int64 `json:"owners"`
}

type CreateProductRequest struct {
	Label string `json:"label" binding:"required,min=1,max=6"`
}

type UpdateProductRequest struct {
	Label string `json:"label" binding:"required,min=1,max=6"`
}
