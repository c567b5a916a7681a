package company

import "errors"

var ErrNotFound = errors.New("company not found")

type Company struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	SIRETNumber string `json:"SIRET_number"`
	VATNumber   string `json:"VAT_number,omitempty"`
	City        string `json:"city"`
	ZipCode     string `json:"zip_code"`
	Street      string `json:"street"`
	Country     string `json:"country"`
}

type CreateCompanyRequest struct {
	Label       string `json:"label" binding:"required,min=3,max=30"`
	SIRETNumber string `json:"SIRET_number" binding:"required,len=14,number"`
	VATNumber   string `json:"VAT_number" binding:"required,frvat"`
	City        string `json:"city" binding:"required,min=3,max=30,personname"`
	ZipCode     string `json:"zip_code" binding:"required,len=5"`
	Street      string `json:"street" binding:"required,min=5,max=80"`
	Country     string `json:"country" binding:"required,iso3166_1_alpha2"`
}

type UpdateCompanyRequest struct {
	Label       *string `json:"label" binding:"omitempty,min=3,max=30"`
	SIRETNumber *string `json:"SIRET_number" binding:"omitempty,len=14,number"`
	VATNumber   *string `json:"VAT_number" binding:"omitempty,frvat"`
	City        *string `json:"city" binding:"omitempty,min=3,max=30,personname"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,len=5"`
	Street      *string `json:"street" binding:"omitempty,min=5,max=80"`
	Country     *string `json:"country" binding:"omitempty,iso3166_1_alpha2"`
}
