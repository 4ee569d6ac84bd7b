package db

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

const (
	PaymentUnpaid   = "unpaid"
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Location struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PostalCode  string    `json:"postal_code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SpaceType struct {
	ID          int       `json:"id"`
	TypeName    string    `json:"type_name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Space struct {
	ID            int       `json:"id"`
	LocationID    int       `json:"location_id"`
	SpaceTypeID   int       `json:"space_type_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Capacity      int       `json:"capacity"`
	PricePerHour  float64   `json:"price_per_hour"`
	OpeningTime   string    `json:"opening_time"`
	ClosingTime   string    `json:"closing_time"`
	AvailableDays []int     `json:"available_days"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	LocationName  string              `json:"location_name,omitempty"`
	SpaceTypeName string              `json:"space_type_name,omitempty"`
	Services      []AdditionalService `json:"services,omitempty"`
}

type AdditionalService struct {
	ID          int       `json:"id"`
	ServiceName string    `json:"service_name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Availability struct {
	ID          int       `json:"id"`
	SpaceID     int       `json:"space_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Booking struct {
	ID                    int       `json:"id"`
	Code                  string    `json:"code"`
	UserID                int       `json:"user_id"`
	SpaceID               int       `json:"space_id"`
	BookingDate           string    `json:"booking_date"`
	StartTime             string    `json:"start_time"`
	EndTime               string    `json:"end_time"`
	Status                string    `json:"status"`
	TotalPrice            float64   `json:"total_price"`
	Notes                 string    `json:"notes"`
	PaymentStatus         string    `json:"payment_status"`
	StripeSessionID       string    `json:"-"`
	StripePaymentIntentID string    `json:"-"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`

	SpaceName string           `json:"space_name,omitempty"`
	UserEmail string           `json:"user_email,omitempty"`
	Services  []BookingService `json:"services,omitempty"`
}

// IsActive reports whether the booking still holds its time slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

type BookingService struct {
	ServiceID   int     `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
}
