package entities

import "coworking/internal/db"

type LocationRequest struct {
	Name        string `json:"name" validate:"required,max=150"`
	Address     string `json:"address" validate:"max=255"`
	City        string `json:"city" validate:"max=100"`
	Country     string `json:"country" validate:"max=100"`
	PostalCode  string `json:"postal_code" validate:"max=20"`
	Description string `json:"description"`
}

func (r *LocationRequest) Model() *db.Location {
	return &db.Location{
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		Country:     r.Country,
		PostalCode:  r.PostalCode,
		Description: r.Description,
	}
}

type LocationUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	PostalCode  *string `json:"postal_code" validate:"omitempty,max=20"`
	Description *string `json:"description"`
}

func (u *LocationUpdate) Apply(l *db.Location) {
	setString(&l.Name, u.Name)
	setString(&l.Address, u.Address)
	setString(&l.City, u.City)
	setString(&l.Country, u.Country)
	setString(&l.PostalCode, u.PostalCode)
	setString(&l.Description, u.Description)
}

type LocationFilter struct {
	City string
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
