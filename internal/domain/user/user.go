package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Firstname    string    `json:"firstname"`
	Lastname     string    `json:"lastname"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	JobTitle     string    `json:"job_title,omitempty"`
	Language     string    `json:"language,omitempty"`
	Role         string    `json:"role"`
	CompanyID    *int64    `json:"company_id,omitempty"`
	Products     []string  `json:"products,omitempty"` // labels of owned products, loaded on by-id reads
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Signup payload. New users always start as prospects, the role is never
// caller supplied here.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,strongpassword"`
	Firstname    string `json:"firstname" binding:"required,min=3,max=30,personname"`
	Lastname     string `json:"lastname" binding:"required,min=3,max=30,personname"`
	PhoneNumber  string `json:"phone_number" binding:"omitempty,e164"`
	JobTitle     string `json:"job_title" binding:"omitempty,min=3,max=50,personname"`
	Language     string `json:"language" binding:"omitempty,oneof=french english"`
	CompanySIRET string `json:"companySIRET" binding:"omitempty,len=14,number"`
}

type UpdateUserRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,strongpassword"`
	Firstname   *string `json:"firstname" binding:"omitempty,min=3,max=30,personname"`
	Lastname    *string `json:"lastname" binding:"omitempty,min=3,max=30,personname"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,e164"`
	JobTitle    *string `json:"job_title" binding:"omitempty,min=3,max=50,personname"`
	Language    *string `json:"language" binding:"omitempty,oneof=french english"`
	Role        *string `json:"role" binding:"omitempty,oneof=superadmin admin user prospect"`
}
