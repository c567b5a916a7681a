package notification

import "errors"

var ErrNotFound = errors.New("notification preference not found")

// Per-user notification preferences for a zone / vertical trade pair.
type Notification struct {
	ID            int64  `json:"id"`
	Zone          string `json:"zone"`
	VerticalTrade string `json:"vertical_trade"`
	SMS           bool   `json:"sms"`
	Email         bool   `json:"email"`
	UserID        int64  `json:"id_user"`
}

type CreateNotificationRequest struct {
	Zone          string `json:"zone" binding:"required,min=3,max=30"`
	VerticalTrade string `json:"vertical_trade" binding:"required,min=3,max=30"`
	SMS           *bool  `json:"sms" binding:"required"`
	Email         *bool  `json:"email" binding:"required"`
	UserID        int64  `json:"id_user" binding:"required"`
}

type UpdateNotificationRequest struct {
	Zone          *string `json:"zone" binding:"omitempty,min=3,max=30"`
	VerticalTrade *string `json:"vertical_trade" binding:"omitempty,min=3,max=30"`
	SMS           *bool   `json:"sms"`
	Email         *bool   `json:"email"`
}
