package entities

import "coworking/internal/db"

type BookingRequest struct {
	SpaceID     int    `json:"space_id" validate:"required,gt=0"`
	BookingDate string `json:"booking_date" validate:"required,isodate"`
	StartTime   string `json:"start_time" validate:"required,hhmm"`
	EndTime     string `json:"end_time" validate:"required,hhmm"`
	ServiceIDs  []int  `json:"service_ids" validate:"omitempty,dive,gt=0"`
	Notes       string `json:"notes" validate:"max=1000"`
}

type BookingCheckResponse struct {
	Available  bool    `json:"available"`
	Message    string  `json:"message"`
	Hours      float64 `json:"hours,omitempty"`
	TotalPrice float64 `json:"total_price,omitempty"`
}

type BookingResult struct {
	Booking     *db.Booking `json:"booking"`
	CheckoutURL string      `json:"checkout_url,omitempty"`
}

type BookingFilter struct {
	UserID  int
	SpaceID int
	Status  string
	Date    string
}
