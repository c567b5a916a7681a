package family

import "errors"

var ErrNotFound = errors.New("family not found")

// A family-directory member card.
type Family struct {
	ID         int64  `json:"id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Linkedin   string `json:"linkedin,omitempty"`
	Github     string `json:"github,omitempty"`
	Zone       string `json:"zone"`
	PictureURL string `json:"picture,omitempty"`
}

type CreateFamilyRequest struct {
	Firstname  string `json:"firstname" binding:"required,min=3,max=30,personname"`
	Lastname   string `json:"lastname" binding:"required,min=3,max=30,personname"`
	Linkedin   string `json:"linkedin" binding:"omitempty,url"`
	Github     string `json:"github" binding:"omitempty,url"`
	Zone       string `json:"zone" binding:"required,min=2,max=30"`
	PictureURL string `json:"picture" binding:"omitempty,url"`
}

type UpdateFamilyRequest struct {
	Firstname  *string `json:"firstname" binding:"omitempty,min=3,max=30,personname"`
	Lastname   *string `json:"lastname" binding:"omitempty,min=3,max=30,personname"`
	Linkedin   *string `json:"linkedin" binding:"omitempty,url"`
	Github     *string `json:"github" binding:"omitempty,url"`
	Zone       *string `json:"zone" binding:"omitempty,min=2,max=30"`
	PictureURL *string `json:"picture" binding:"omitempty,url"`
}
