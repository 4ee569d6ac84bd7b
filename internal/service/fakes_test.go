package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"coworking/internal/db"
	"coworking/internal/entities"
	"coworking/internal/repository"
	"coworking/internal/utils"
)

type fakeLocationRepo struct {
	items  map[int]*db.Location
	spaces map[int]int
	nextID int
}

func newFakeLocationRepo(items ...db.Location) *fakeLocationRepo {
	r := &fakeLocationRepo{items: map[int]*db.Location{}, spaces: map[int]int{}}
	for i := range items {
		l := items[i]
		r.items[l.ID] = &l
		if l.ID > r.nextID {
			r.nextID = l.ID
		}
	}
	return r
}

func (r *fakeLocationRepo) Create(_ context.Context, l *db.Location) error {
	r.nextID++
	l.ID = r.nextID
	cp := *l
	r.items[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) List(_ context.Context, _ entities.LocationFilter) ([]db.Location, error) {
	var out []db.Location
	for _, l := range r.items {
		out = append(out, *l)
	}
	return out, nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id int) (*db.Location, error) {
	l, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLocationRepo) ExistsByName(_ context.Context, name string, excludeID int) (bool, error) {
	for _, l := range r.items {
		if l.ID != excludeID && strings.EqualFold(l.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeLocationRepo) Update(_ context.Context, l *db.Location) error {
	if _, ok := r.items[l.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *l
	r.items[l.ID] = &cp
	return nil
}

func (r *fakeLocationRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeLocationRepo) CountSpaces(_ context.Context, id int) (int, error) {
	return r.spaces[id], nil
}

type fakeSpaceTypeRepo struct {
	items  map[int]*db.SpaceType
	spaces map[int]int
	nextID int
}

func newFakeSpaceTypeRepo() *fakeSpaceTypeRepo {
	return &fakeSpaceTypeRepo{items: map[int]*db.SpaceType{}, spaces: map[int]int{}}
}

func (r *fakeSpaceTypeRepo) Create(_ context.Context, st *db.SpaceType) error {
	r.nextID++
	st.ID = r.nextID
	cp := *st
	r.items[st.ID] = &cp
	return nil
}

func (r *fakeSpaceTypeRepo) List(_ context.Context) ([]db.SpaceType, error) {
	var out []db.SpaceType
	for _, st := range r.items {
		out = append(out, *st)
	}
	return out, nil
}

func (r *fakeSpaceTypeRepo) GetByID(_ context.Context, id int) (*db.SpaceType, error) {
	st, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (r *fakeSpaceTypeRepo) ExistsByName(_ context.Context, name string, excludeID int) (bool, error) {
	for _, st := range r.items {
		if st.ID != excludeID && strings.EqualFold(st.TypeName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSpaceTypeRepo) Update(_ context.Context, st *db.SpaceType) error {
	cp := *st
	r.items[st.ID] = &cp
	return nil
}

func (r *fakeSpaceTypeRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeSpaceTypeRepo) CountSpaces(_ context.Context, id int) (int, error) {
	return r.spaces[id], nil
}

type fakeServiceRepo struct {
	items  map[int]*db.AdditionalService
	spaces map[int]int
	nextID int
}

func newFakeServiceRepo(items ...db.AdditionalService) *fakeServiceRepo {
	r := &fakeServiceRepo{items: map[int]*db.AdditionalService{}, spaces: map[int]int{}}
	for i := range items {
		s := items[i]
		r.items[s.ID] = &s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeServiceRepo) Create(_ context.Context, s *db.AdditionalService) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]db.AdditionalService, error) {
	var out []db.AdditionalService
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int) (*db.AdditionalService, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) GetByIDs(_ context.Context, ids []int) ([]db.AdditionalService, error) {
	var out []db.AdditionalService
	for _, id := range ids {
		if s, ok := r.items[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) ExistsByName(_ context.Context, name string, excludeID int) (bool, error) {
	for _, s := range r.items {
		if s.ID != excludeID && strings.EqualFold(s.ServiceName, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeServiceRepo) Update(_ context.Context, s *db.AdditionalService) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeServiceRepo) CountSpaces(_ context.Context, id int) (int, error) {
	return r.spaces[id], nil
}

type fakeSpaceRepo struct {
	items    map[int]*db.Space
	links    map[int]map[int]bool
	services *fakeServiceRepo
	active   map[int]int
	nextID   int
}

func newFakeSpaceRepo(services *fakeServiceRepo, items ...db.Space) *fakeSpaceRepo {
	r := &fakeSpaceRepo{
		items:    map[int]*db.Space{},
		links:    map[int]map[int]bool{},
		services: services,
		active:   map[int]int{},
	}
	for i := range items {
		s := items[i]
		r.items[s.ID] = &s
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeSpaceRepo) Create(_ context.Context, s *db.Space) error {
	r.nextID++
	s.ID = r.nextID
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSpaceRepo) List(_ context.Context, _ entities.SpaceFilter) ([]db.Space, error) {
	var out []db.Space
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSpaceRepo) GetByID(_ context.Context, id int) (*db.Space, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSpaceRepo) ExistsByName(_ context.Context, locationID int, name string, excludeID int) (bool, error) {
	for _, s := range r.items {
		if s.ID != excludeID && s.LocationID == locationID && strings.EqualFold(s.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSpaceRepo) Update(_ context.Context, s *db.Space) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSpaceRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeSpaceRepo) CountActiveBookings(_ context.Context, id int) (int, error) {
	return r.active[id], nil
}

func (r *fakeSpaceRepo) ListServices(_ context.Context, spaceID int) ([]db.AdditionalService, error) {
	var ids []int
	for id := range r.links[spaceID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return r.services.GetByIDs(context.Background(), ids)
}

func (r *fakeSpaceRepo) AssociatedServiceIDs(_ context.Context, spaceID int, serviceIDs []int) ([]int, error) {
	var out []int
	for _, id := range serviceIDs {
		if r.links[spaceID][id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *fakeSpaceRepo) AddServices(_ context.Context, spaceID int, serviceIDs []int) error {
	if r.links[spaceID] == nil {
		r.links[spaceID] = map[int]bool{}
	}
	for _, id := range serviceIDs {
		r.links[spaceID][id] = true
	}
	return nil
}

func (r *fakeSpaceRepo) RemoveService(_ context.Context, spaceID, serviceID int) error {
	if !r.links[spaceID][serviceID] {
		return repository.ErrNotFound
	}
	delete(r.links[spaceID], serviceID)
	return nil
}

type fakeAvailabilityRepo struct {
	items    map[int]*db.Availability
	bookings *fakeBookingRepo
	nextID   int
}

func newFakeAvailabilityRepo(items ...db.Availability) *fakeAvailabilityRepo {
	r := &fakeAvailabilityRepo{items: map[int]*db.Availability{}}
	for i := range items {
		a := items[i]
		r.items[a.ID] = &a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeAvailabilityRepo) Create(_ context.Context, a *db.Availability) error {
	r.nextID++
	a.ID = r.nextID
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAvailabilityRepo) List(_ context.Context, filter entities.AvailabilityFilter) ([]db.Availability, error) {
	var out []db.Availability
	for _, a := range r.items {
		if filter.SpaceID != 0 && a.SpaceID != filter.SpaceID {
			continue
		}
		if filter.Date != "" && a.Date != filter.Date {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *fakeAvailabilityRepo) GetByID(_ context.Context, id int) (*db.Availability, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAvailabilityRepo) ListForSpaceDate(ctx context.Context, spaceID int, date string) ([]db.Availability, error) {
	return r.List(ctx, entities.AvailabilityFilter{SpaceID: spaceID, Date: date})
}

func (r *fakeAvailabilityRepo) Update(_ context.Context, a *db.Availability) error {
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAvailabilityRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeAvailabilityRepo) CountOverlappingBookings(ctx context.Context, spaceID int, date, start, end string) (int, error) {
	if r.bookings == nil {
		return 0, nil
	}
	active, _ := r.bookings.ListActiveForSpaceDate(ctx, spaceID, date)
	n := 0
	for _, b := range active {
		if utils.Overlaps(start, end, b.StartTime, b.EndTime) {
			n++
		}
	}
	return n, nil
}

type fakeBookingRepo struct {
	mu     sync.Mutex
	items  map[int]*db.Booking
	nextID int
}

func newFakeBookingRepo(items ...db.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{items: map[int]*db.Booking{}}
	for i := range items {
		b := items[i]
		r.items[b.ID] = &b
		if b.ID > r.nextID {
			r.nextID = b.ID
		}
	}
	return r
}

func (r *fakeBookingRepo) Create(_ context.Context, b *db.Booking, services []db.BookingService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.items {
		if other.SpaceID == b.SpaceID && other.BookingDate == b.BookingDate && other.IsActive() &&
			utils.Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			return repository.ErrSlotTaken
		}
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	b.Services = services
	cp := *b
	r.items[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int) (*db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetBySessionID(_ context.Context, sessionID string) (*db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.items {
		if b.StripeSessionID == sessionID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBookingRepo) List(_ context.Context, filter entities.BookingFilter) ([]db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Booking
	for _, b := range r.items {
		if filter.UserID != 0 && b.UserID != filter.UserID {
			continue
		}
		if filter.SpaceID != 0 && b.SpaceID != filter.SpaceID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Date != "" && b.BookingDate != filter.Date {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookingRepo) ListActiveForSpaceDate(_ context.Context, spaceID int, date string) ([]db.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []db.Booking
	for _, b := range r.items {
		if b.SpaceID == spaceID && b.BookingDate == date && b.IsActive() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int, status, paymentStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	b.PaymentStatus = paymentStatus
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fakePaymentRepo mirrors the SQL in payment_repo.go on top of fakeBookingRepo.
type fakePaymentRepo struct {
	bookings *fakeBookingRepo
}

func (r *fakePaymentRepo) SetCheckoutSession(_ context.Context, bookingID int, sessionID string) error {
	r.bookings.mu.Lock()
	defer r.bookings.mu.Unlock()
	b, ok := r.bookings.items[bookingID]
	if !ok {
		return repository.ErrNotFound
	}
	b.StripeSessionID = sessionID
	b.PaymentStatus = db.PaymentPending
	return nil
}

func (r *fakePaymentRepo) MarkPaidBySessionID(_ context.Context, sessionID, paymentIntentID string) (int, error) {
	r.bookings.mu.Lock()
	defer r.bookings.mu.Unlock()
	if sessionID == "" {
		return 0, repository.ErrNotFound
	}
	for _, b := range r.bookings.items {
		if b.StripeSessionID == sessionID {
			b.PaymentStatus = db.PaymentPaid
			b.StripePaymentIntentID = paymentIntentID
			if b.Status == db.BookingPending {
				b.Status = db.BookingConfirmed
			}
			return b.ID, nil
		}
	}
	return 0, repository.ErrNotFound
}

func (r *fakePaymentRepo) MarkRefundedByPaymentIntentID(_ context.Context, paymentIntentID string) (int, error) {
	r.bookings.mu.Lock()
	defer r.bookings.mu.Unlock()
	if paymentIntentID == "" {
		return 0, repository.ErrNotFound
	}
	for _, b := range r.bookings.items {
		if b.StripePaymentIntentID == paymentIntentID && b.PaymentStatus != db.PaymentRefunded {
			b.Status = db.BookingCancelled
			b.PaymentStatus = db.PaymentRefunded
			return b.ID, nil
		}
	}
	return 0, repository.ErrNotFound
}

type fakeUserRepo struct {
	items  map[int]*db.User
	active map[int]int
	nextID int
}

func newFakeUserRepo(items ...db.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[int]*db.User{}, active: map[int]int{}}
	for i := range items {
		u := items[i]
		r.items[u.ID] = &u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *db.User) error {
	for _, other := range r.items {
		if other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*db.User, error) {
	u, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range r.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string, excludeID int) (bool, error) {
	for _, u := range r.items {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]db.User, error) {
	var out []db.User
	for _, u := range r.items {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *db.User) error {
	cp := *u
	r.items[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int, passwordHash string) error {
	u, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeUserRepo) CountActiveBookings(_ context.Context, id int) (int, error) {
	return r.active[id], nil
}

type fakeGateway struct {
	checkoutErr error
	refundErr   error
	event       *PaymentEvent
	parseErr    error

	checkouts []CheckoutRequest
	refunds   []string
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	g.checkouts = append(g.checkouts, req)
	if g.checkoutErr != nil {
		return nil, g.checkoutErr
	}
	return &CheckoutSession{ID: "cs_test_" + req.BookingCode, URL: "https://checkout.test/" + req.BookingCode}, nil
}

func (g *fakeGateway) RefundPayment(_ context.Context, paymentIntentID string) error {
	g.refunds = append(g.refunds, paymentIntentID)
	return g.refundErr
}

func (g *fakeGateway) ParseWebhook(_ []byte, _ string) (*PaymentEvent, error) {
	if g.parseErr != nil {
		return nil, g.parseErr
	}
	if g.event == nil {
		return nil, errors.New("no event")
	}
	return g.event, nil
}

type fakeJobRepo struct {
	finished  []int
	abandoned []int
	before    time.Time
	today     string
	now       string
	updated   map[string][]int
}

func (r *fakeJobRepo) GetConfirmedBookingIDsPastEnd(_ context.Context, today, now string) ([]int, error) {
	r.today, r.now = today, now
	return r.finished, nil
}

func (r *fakeJobRepo) GetAwaitingPaymentBookingIDsCreatedBefore(_ context.Context, before time.Time) ([]int, error) {
	r.before = before
	return r.abandoned, nil
}

func (r *fakeJobRepo) UpdateBookingStatuses(_ context.Context, ids []int, newStatus string) (int64, error) {
	if r.updated == nil {
		r.updated = map[string][]int{}
	}
	r.updated[newStatus] = append(r.updated[newStatus], ids...)
	return int64(len(ids)), nil
}

type sentEmail struct {
	to, subject, html string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *fakeEmailSender) SendEmail(_ context.Context, toEmail, _, subject, _, html string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{to: toEmail, subject: subject, html: html})
	return nil
}

type fakeSMSSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *fakeSMSSender) SendSMS(_ context.Context, toNumber, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, toNumber+": "+body)
	return nil
}
