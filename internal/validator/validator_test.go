package validator

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "coworking/internal/errors"
)

type sample struct {
	Name      string  `json:"name" validate:"required,max=10"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Date      string  `json:"date" validate:"required,isodate"`
	StartTime string  `json:"start_time" validate:"required,hhmm"`
	Days      []int   `json:"available_days" validate:"weekdays"`
	Price     float64 `json:"price" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	err := v.Struct(&sample{
		Name:      "Desk",
		Date:      "2026-10-19",
		StartTime: "09:30",
		Days:      []int{1, 2, 3, 4, 5},
	})
	assert.NoError(t, err)
}

func TestStruct_ReportsEveryField(t *testing.T) {
	v := New()
	err := v.Struct(&sample{
		Name:      "",
		Email:     "nope",
		Date:      "19/10/2026",
		StartTime: "9:30",
		Days:      []int{7},
		Price:     -1,
	})
	require.Error(t, err)

	httpErr := apperrors.As(err)
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	byField := map[string]string{}
	for _, f := range httpErr.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "name is required", byField["name"])
	assert.Equal(t, "email must be a valid email address", byField["email"])
	assert.Equal(t, "date must be a date in YYYY-MM-DD format", byField["date"])
	assert.Equal(t, "start_time must be in HH:MM 24-hour format", byField["start_time"])
	assert.Contains(t, byField["available_days"], "between 0 (Sunday) and 6 (Saturday)")
	assert.Equal(t, "price must be greater than or equal to 0", byField["price"])
}

func TestStruct_EmptyWeekdays(t *testing.T) {
	v := New()
	err := v.Struct(&sample{Name: "Desk", Date: "2026-10-19", StartTime: "09:00"})
	require.Error(t, err)
	assert.Equal(t, "available_days", apperrors.As(err).Fields[0].Field)
}
