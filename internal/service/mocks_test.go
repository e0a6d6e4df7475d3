package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mkarhu/sauna-booking/internal/model"
	"github.com/mkarhu/sauna-booking/internal/queue"
	"github.com/mkarhu/sauna-booking/internal/repository"
)

// memBookingStore is an in-memory BookingStore used by the stateful tests.
type memBookingStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Booking
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{items: make(map[uint64]model.Booking)}
}

func (s *memBookingStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (s *memBookingStore) List(_ context.Context, limit, offset int) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0, len(s.items))
	for _, b := range s.items {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memBookingStore) ListByDate(_ context.Context, date string) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0)
	for _, b := range s.items {
		if b.Date == date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (s *memBookingStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *memBookingStore) Create(_ context.Context, b *model.Booking) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *b
	stored.ID = s.nextID
	s.items[stored.ID] = stored
	return &stored, nil
}

func (s *memBookingStore) Update(_ context.Context, id uint64, p model.BookingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	if p.GuestName != nil {
		b.GuestName = *p.GuestName
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Time != nil {
		b.Time = *p.Time
	}
	if p.Duration != nil {
		b.Duration = *p.Duration
	}
	if p.RoomNumber != nil {
		b.RoomNumber = *p.RoomNumber
	}
	if p.People != nil {
		b.People = *p.People
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	s.items[id] = b
	return nil
}

func (s *memBookingStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// memSaunaStore is an in-memory append-only status log.
type memSaunaStore struct {
	mu  sync.Mutex
	log []model.SaunaStatus
}

func (s *memSaunaStore) Current(_ context.Context) (*model.SaunaStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.log) == 0 {
		return nil, nil
	}
	cur := s.log[len(s.log)-1]
	return &cur, nil
}

func (s *memSaunaStore) Append(_ context.Context, status string, reason *string, bookingID *uint64) (*model.SaunaStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := model.SaunaStatus{
		ID:        uint64(len(s.log) + 1),
		Status:    status,
		Reason:    reason,
		BookingID: bookingID,
	}
	s.log = append(s.log, row)
	return &row, nil
}

// capturePublisher records published events in order.
type capturePublisher struct {
	mu     sync.Mutex
	events []queue.BookingEvent
}

func (p *capturePublisher) PublishBookingEvent(_ context.Context, event queue.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) all() []queue.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.BookingEvent(nil), p.events...)
}

// mockSaunaStore is an expectation-based SaunaStatusStore for tests that
// assert exactly which status transitions happen.
type mockSaunaStore struct {
	mock.Mock
}

func (m *mockSaunaStore) Current(ctx context.Context) (*model.SaunaStatus, error) {
	args := m.Called(ctx)
	cur, _ := args.Get(0).(*model.SaunaStatus)
	return cur, args.Error(1)
}

func (m *mockSaunaStore) Append(ctx context.Context, status string, reason *string, bookingID *uint64) (*model.SaunaStatus, error) {
	args := m.Called(ctx, status, reason, bookingID)
	cur, _ := args.Get(0).(*model.SaunaStatus)
	return cur, args.Error(1)
}

// memUserStore is an in-memory UserStore.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{items: make(map[uint64]model.User)}
}

func (s *memUserStore) Create(_ context.Context, username, passwordHash, role string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Username == username {
			return 0, repository.ErrUsernameExists
		}
	}
	s.nextID++
	s.items[s.nextID] = model.User{ID: s.nextID, Username: username, PasswordHash: passwordHash, Role: role}
	return s.nextID, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &u, nil
}

func (s *memUserStore) List(_ context.Context, limit, offset int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.User, 0, len(s.items))
	for _, u := range s.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memUserStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *memUserStore) Update(_ context.Context, id uint64, p model.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	if p.Username != nil {
		for oid, other := range s.items {
			if oid != id && other.Username == *p.Username {
				return repository.ErrUsernameExists
			}
		}
		u.Username = *p.Username
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	s.items[id] = u
	return nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id uint64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.PasswordHash = passwordHash
	s.items[id] = u
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

// memProductStore is an in-memory ProductStore.
type memProductStore struct {
	mu     sync.Mutex
	nextID uint64
	items  map[uint64]model.Product
}

func newMemProductStore() *memProductStore {
	return &memProductStore{items: make(map[uint64]model.Product)}
}

func (s *memProductStore) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func (s *memProductStore) List(_ context.Context, limit, offset int) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *memProductStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *memProductStore) Create(_ context.Context, p *model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := *p
	stored.ID = s.nextID
	s.items[stored.ID] = stored
	return &stored, nil
}

func (s *memProductStore) Update(_ context.Context, id uint64, p model.ProductPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Stock != nil {
		item.Stock = *p.Stock
	}
	if p.ImageURL != nil {
		item.ImageURL = p.ImageURL
	}
	s.items[id] = item
	return nil
}

func (s *memProductStore) Delete(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}
