package property

import (
	"errors"

	"github.com/ftmlabs/directory-api/internal/domain/picture"
)

var ErrNotFound = errors.New("property not found")

type Property struct {
	ID       int64             `json:"id"`
	Label    string            `json:"label"`
	Lat      string            `json:"lat"`
	Long     string            `json:"long"`
	Pictures []picture.Picture `json:"pictures,omitempty"`
}

// Creating a property also creates its first picture, like the original
// listing flow did.
type CreatePropertyRequest struct {
	Label      string `json:"label" binding:"required,min=3,max=50"`
	Lat        string `json:"lat" binding:"required,latitude"`
	Long       string `json:"long" binding:"required,longitude"`
	PictureURL string `json:"pictureUrl" binding:"required,url"`
	PictureAlt string `json:"pictureAlt" binding:"required,min=3,max=80"`
}

type UpdatePropertyRequest struct {
	Label *string `json:"label" binding:"omitempty,min=3,max=50"`
	Lat   *string `json:"lat" binding:"omitempty,latitude"`
	Long  *string `json:"long" binding:"omitempty,longitude"`
}
