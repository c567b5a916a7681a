package picture

import "errors"

var ErrNotFound = errors.New("picture not found")

type Picture struct {
	ID         int64  `json:"id"`
	URL        string `json:"url"`
	Alt        string `json:"alt"`
	PropertyID int64  `json:"id_property"`
}

type CreatePictureRequest struct {
	URL        string `json:"url" binding:"required,url"`
	Alt        string `json:"alt" binding:"required,min=3,max=80"`
	PropertyID int64  `json:"id_property" binding:"required"`
}

type UpdatePictureRequest struct {
	URL        *string `json:"url" binding:"omitempty,url"`
	Alt        *string `json:"alt" binding:"omitempty,min=3,max=80"`
	PropertyID *int64  `json:"id_property"`
}
