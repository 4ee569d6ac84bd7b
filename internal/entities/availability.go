package entities

import "coworking/internal/db"

type AvailabilityRequest struct {
	SpaceID     int    `json:"space_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,isodate"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	IsAvailable *bool  `json:"is_available"`
	Notes       string `json:"notes" validate:"max=1000"`
}

func (r *AvailabilityRequest) Model() *db.Availability {
	a := &db.Availability{
		SpaceID:     r.SpaceID,
		Date:        r.Date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsAvailable: true,
		Notes:       r.Notes,
	}
	setBool(&a.IsAvailable, r.IsAvailable)
	return a
}

type AvailabilityUpdate struct {
	Date        *string `json:"date" validate:"omitempty,isodate"`
	StartTime   *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime     *string `json:"end_time" validate:"omitempty,hhmm"`
	IsAvailable *bool   `json:"is_available"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

func (u *AvailabilityUpdate) Apply(a *db.Availability) {
	setString(&a.Date, u.Date)
	setString(&a.StartTime, u.StartTime)
	setString(&a.EndTime, u.EndTime)
	setBool(&a.IsAvailable, u.IsAvailable)
	setString(&a.Notes, u.Notes)
}

type AvailabilityFilter struct {
	SpaceID int
	Date    string
}
