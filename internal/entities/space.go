package entities

import "coworking/internal/db"

type SpaceRequest struct {
	LocationID    int     `json:"location_id" validate:"required,gt=0"`
	SpaceTypeID   int     `json:"space_type_id" validate:"required,gt=0"`
	Name          string  `json:"name" validate:"required,max=150"`
	Description   string  `json:"description"`
	Capacity      int     `json:"capacity" validate:"required,gte=1"`
	PricePerHour  float64 `json:"price_per_hour" validate:"gte=0"`
	OpeningTime   string  `json:"opening_time" validate:"required,hhmm"`
	ClosingTime   string  `json:"closing_time" validate:"required,hhmm"`
	AvailableDays []int   `json:"available_days" validate:"weekdays"`
	IsActive      *bool   `json:"is_active"`
}

func (r *SpaceRequest) Model() *db.Space {
	s := &db.Space{
		LocationID:    r.LocationID,
		SpaceTypeID:   r.SpaceTypeID,
		Name:          r.Name,
		Description:   r.Description,
		Capacity:      r.Capacity,
		PricePerHour:  r.PricePerHour,
		OpeningTime:   r.OpeningTime,
		ClosingTime:   r.ClosingTime,
		AvailableDays: r.AvailableDays,
		IsActive:      true,
	}
	setBool(&s.IsActive, r.IsActive)
	return s
}

type SpaceUpdate struct {
	LocationID    *int     `json:"location_id" validate:"omitempty,gt=0"`
	SpaceTypeID   *int     `json:"space_type_id" validate:"omitempty,gt=0"`
	Name          *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description   *string  `json:"description"`
	Capacity      *int     `json:"capacity" validate:"omitempty,gte=1"`
	PricePerHour  *float64 `json:"price_per_hour" validate:"omitempty,gte=0"`
	OpeningTime   *string  `json:"opening_time" validate:"omitempty,hhmm"`
	ClosingTime   *string  `json:"closing_time" validate:"omitempty,hhmm"`
	AvailableDays []int    `json:"available_days" validate:"omitempty,weekdays"`
	IsActive      *bool    `json:"is_active"`
}

func (u *SpaceUpdate) Apply(s *db.Space) {
	setInt(&s.LocationID, u.LocationID)
	setInt(&s.SpaceTypeID, u.SpaceTypeID)
	setString(&s.Name, u.Name)
	setString(&s.Description, u.Description)
	setInt(&s.Capacity, u.Capacity)
	setFloat(&s.PricePerHour, u.PricePerHour)
	setString(&s.OpeningTime, u.OpeningTime)
	setString(&s.ClosingTime, u.ClosingTime)
	if u.AvailableDays != nil {
		s.AvailableDays = u.AvailableDays
	}
	setBool(&s.IsActive, u.IsActive)
}

type SpaceFilter struct {
	LocationID  int
	SpaceTypeID int
	MinCapacity int
	Active      *bool
}

type SpaceServicesRequest struct {
	ServiceIDs []int `json:"service_ids" validate:"required,min=1,dive,gt=0"`
}
