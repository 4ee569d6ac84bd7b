//go:build integration

package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"coworking/internal/db"
)

// startPostgres runs a throwaway PostgreSQL and returns a migrated connection.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("coworking"),
		postgres.WithUsername("coworking"),
		postgres.WithPassword("coworking"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(ctr)
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Open(ctx, db.PoolConfig{
		URL:            dsn,
		MaxOpenConns:   5,
		MaxIdleConns:   2,
		ConnectTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(ctx, conn))
	// the schema is idempotent
	require.NoError(t, db.Migrate(ctx, conn))
	return conn
}

type fixture struct {
	user    *db.User
	space   *db.Space
	service *db.AdditionalService
}

func seed(t *testing.T, conn *sql.DB) fixture {
	t.Helper()
	ctx := context.Background()

	u := &db.User{FirstName: "Ana", LastName: "Silva", Email: "Ana@Example.com", PasswordHash: "x", Role: db.RoleUser}
	require.NoError(t, NewUserRepository(conn).Create(ctx, u))

	loc := &db.Location{Name: "Downtown Hub", Address: "1 Main St", City: "Lisbon", Country: "Portugal", PostalCode: "1000-001"}
	require.NoError(t, NewLocationRepository(conn).Create(ctx, loc))

	st := &db.SpaceType{TypeName: "Meeting Room"}
	require.NoError(t, NewSpaceTypeRepository(conn).Create(ctx, st))

	sp := &db.Space{
		LocationID:    loc.ID,
		SpaceTypeID:   st.ID,
		Name:          "Room A",
		Capacity:      8,
		PricePerHour:  25,
		OpeningTime:   "08:00",
		ClosingTime:   "20:00",
		AvailableDays: []int{1, 2, 3, 4, 5},
		IsActive:      true,
	}
	spaces := NewSpaceRepository(conn)
	require.NoError(t, spaces.Create(ctx, sp))

	svc := &db.AdditionalService{ServiceName: "Projector", Price: 10}
	require.NoError(t, NewAdditionalServiceRepository(conn).Create(ctx, svc))
	require.NoError(t, spaces.AddServices(ctx, sp.ID, []int{svc.ID}))

	return fixture{user: u, space: sp, service: svc}
}

func TestIntegration_BookingLifecycle(t *testing.T) {
	conn := startPostgres(t)
	f := seed(t, conn)
	ctx := context.Background()

	assert.Equal(t, "ana@example.com", f.user.Email)

	bookings := NewBookingRepository(conn)
	payments := NewPaymentRepository(conn)

	b := &db.Booking{
		Code:          "BK-INTEG-1",
		UserID:        f.user.ID,
		SpaceID:       f.space.ID,
		BookingDate:   "2030-03-04",
		StartTime:     "10:00",
		EndTime:       "12:00",
		Status:        db.BookingPending,
		TotalPrice:    60,
		PaymentStatus: db.PaymentUnpaid,
	}
	require.NoError(t, bookings.Create(ctx, b, []db.BookingService{{ServiceID: f.service.ID, Price: 10}}))
	require.NotZero(t, b.ID)

	overlapping := *b
	overlapping.Code = "BK-INTEG-2"
	overlapping.StartTime = "11:00"
	overlapping.EndTime = "13:00"
	assert.ErrorIs(t, bookings.Create(ctx, &overlapping, nil), ErrSlotTaken)

	adjacent := *b
	adjacent.Code = "BK-INTEG-3"
	adjacent.StartTime = "12:00"
	adjacent.EndTime = "13:00"
	require.NoError(t, bookings.Create(ctx, &adjacent, nil))

	active, err := bookings.ListActiveForSpaceDate(ctx, f.space.ID, "2030-03-04")
	require.NoError(t, err)
	assert.Len(t, active, 2)

	require.NoError(t, payments.SetCheckoutSession(ctx, b.ID, "cs_test_1"))
	id, err := payments.MarkPaidBySessionID(ctx, "cs_test_1", "pi_test_1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, db.BookingConfirmed, got.Status)
	assert.Equal(t, db.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, "Room A", got.SpaceName)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "Projector", got.Services[0].ServiceName)

	_, err = payments.MarkRefundedByPaymentIntentID(ctx, "pi_test_1")
	require.NoError(t, err)
	got, err = bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, db.BookingCancelled, got.Status)
	assert.Equal(t, db.PaymentRefunded, got.PaymentStatus)

	_, err = payments.MarkRefundedByPaymentIntentID(ctx, "pi_test_1")
	assert.ErrorIs(t, err, ErrNotFound, "already refunded")
	_, err = payments.MarkRefundedByPaymentIntentID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	got, err = bookings.GetByID(ctx, adjacent.ID)
	require.NoError(t, err)
	assert.Equal(t, db.BookingPending, got.Status)

	// the cancelled booking frees its slot
	overlapping.Code = "BK-INTEG-4"
	assert.NoError(t, bookings.Create(ctx, &overlapping, nil))
}

func TestIntegration_Constraints(t *testing.T) {
	conn := startPostgres(t)
	f := seed(t, conn)
	ctx := context.Background()

	dupUser := &db.User{FirstName: "A", LastName: "S", Email: "ANA@example.com", PasswordHash: "x", Role: db.RoleUser}
	assert.ErrorIs(t, NewUserRepository(conn).Create(ctx, dupUser), ErrDuplicate)

	dupSpace := *f.space
	dupSpace.ID = 0
	assert.ErrorIs(t, NewSpaceRepository(conn).Create(ctx, &dupSpace), ErrDuplicate)

	_, err := NewLocationRepository(conn).GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIntegration_HistoryDoesNotBlockDeletes(t *testing.T) {
	conn := startPostgres(t)
	f := seed(t, conn)
	ctx := context.Background()

	bookings := NewBookingRepository(conn)
	done := &db.Booking{
		Code:          "BK-HIST-1",
		UserID:        f.user.ID,
		SpaceID:       f.space.ID,
		BookingDate:   "2030-03-04",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Status:        db.BookingCompleted,
		TotalPrice:    35,
		PaymentStatus: db.PaymentPaid,
	}
	require.NoError(t, bookings.Create(ctx, done, []db.BookingService{{ServiceID: f.service.ID, Price: 10}}))

	spaces := NewSpaceRepository(conn)
	n, err := spaces.CountActiveBookings(ctx, f.space.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, spaces.Delete(ctx, f.space.ID))
	_, err = bookings.GetByID(ctx, done.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, NewUserRepository(conn).Delete(ctx, f.user.ID))
}
