// Package memory is an in-memory implementation of the entity stores. It is
// safe for concurrent use and is intended for tests and local development
// (DB_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"

	"github.com/google/uuid"
)

type table[T any] struct {
	rows map[uuid.UUID]T
	seq  map[uuid.UUID]int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[uuid.UUID]T), seq: make(map[uuid.UUID]int64)}
}

// ordered returns rows in insertion order.
func (t table[T]) ordered() []T {
	ids := make([]uuid.UUID, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

type Store struct {
	mu      sync.RWMutex
	nextSeq int64

	users        table[models.User]
	services     table[models.Service]
	packages     table[models.Package]
	appointments table[models.Appointment]
	feedback     table[models.Feedback]
	inventory    table[models.InventoryItem]
}

var _ repository.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		users:        newTable[models.User](),
		services:     newTable[models.Service](),
		packages:     newTable[models.Package](),
		appointments: newTable[models.Appointment](),
		feedback:     newTable[models.Feedback](),
		inventory:    newTable[models.InventoryItem](),
	}
}

func insert[T any](s *Store, t table[T], id *uuid.UUID, created, updated *time.Time, row func() T) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
	s.nextSeq++
	t.seq[*id] = s.nextSeq
	t.rows[*id] = row()
}

func get[T any](t table[T], id uuid.UUID) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func remove[T any](t table[T], id uuid.UUID) error {
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	delete(t.seq, id)
	return nil
}

// save overwrites an existing row or inserts a new one.
func save[T any](s *Store, t table[T], id uuid.UUID, updated *time.Time, row func() T) {
	*updated = time.Now()
	if _, ok := t.seq[id]; !ok {
		s.nextSeq++
		t.seq[id] = s.nextSeq
	}
	t.rows[id] = row()
}

// Users

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users.rows {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	insert(s, s.users, &user.ID, &user.CreatedAt, &user.UpdatedAt, func() models.User { return *user })
	return nil
}

func (s *Store) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.users, id)
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.ordered(), nil
}

func (s *Store) SaveUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users.rows {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	save(s, s.users, user.ID, &user.UpdatedAt, func() models.User { return *user })
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.users, id)
}

// Services

func (s *Store) CreateService(_ context.Context, service *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.services.rows {
		if existing.ServiceCode == service.ServiceCode {
			return repository.ErrDuplicate
		}
	}
	insert(s, s.services, &service.ID, &service.CreatedAt, &service.UpdatedAt, func() models.Service { return *service })
	return nil
}

func (s *Store) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.services, id)
}

func (s *Store) GetServiceByCode(_ context.Context, code string) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, service := range s.services.rows {
		if service.ServiceCode == code {
			return &service, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) ListServices(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.services.ordered(), nil
}

func (s *Store) CountServices(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.services.rows)), nil
}

func (s *Store) SaveService(_ context.Context, service *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.services.rows {
		if id != service.ID && existing.ServiceCode == service.ServiceCode {
			return repository.ErrDuplicate
		}
	}
	save(s, s.services, service.ID, &service.UpdatedAt, func() models.Service { return *service })
	return nil
}

func (s *Store) DeleteService(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.services, id)
}

// Packages

func (s *Store) CreatePackage(_ context.Context, pkg *models.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	insert(s, s.packages, &pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt, func() models.Package { return *pkg })
	return nil
}

func (s *Store) GetPackage(_ context.Context, id uuid.UUID) (*models.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.packages, id)
}

func (s *Store) ListPackages(_ context.Context) ([]models.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.packages.ordered(), nil
}

func (s *Store) SavePackage(_ context.Context, pkg *models.Package) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	save(s, s.packages, pkg.ID, &pkg.UpdatedAt, func() models.Package { return *pkg })
	return nil
}

func (s *Store) DeletePackage(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.packages, id)
}

// Appointments

func (s *Store) CreateAppointment(_ context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	insert(s, s.appointments, &appt.ID, &appt.CreatedAt, &appt.UpdatedAt, func() models.Appointment { return *appt })
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.appointments, id)
}

func sortAppointments(appts []models.Appointment) []models.Appointment {
	sort.SliceStable(appts, func(i, j int) bool {
		if !appts[i].Date.Equal(appts[j].Date) {
			return appts[i].Date.Before(appts[j].Date)
		}
		return appts[i].Time < appts[j].Time
	})
	return appts
}

func (s *Store) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortAppointments(s.appointments.ordered()), nil
}

func (s *Store) ListAppointmentsByUser(_ context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appointment{}
	for _, appt := range s.appointments.ordered() {
		if appt.UserID == userID {
			out = append(out, appt)
		}
	}
	return sortAppointments(out), nil
}

func (s *Store) SaveAppointment(_ context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	save(s, s.appointments, appt.ID, &appt.UpdatedAt, func() models.Appointment { return *appt })
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.appointments, id)
}

// Feedback

func (s *Store) CreateFeedback(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	insert(s, s.feedback, &fb.ID, &fb.CreatedAt, &fb.UpdatedAt, func() models.Feedback { return *fb })
	return nil
}

func (s *Store) GetFeedback(_ context.Context, id uuid.UUID) (*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.feedback, id)
}

// newestFirst filters feedback in reverse insertion order.
func (s *Store) newestFirst(keep func(models.Feedback) bool) []models.Feedback {
	rows := s.feedback.ordered()
	out := []models.Feedback{}
	for i := len(rows) - 1; i >= 0; i-- {
		if keep(rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

func (s *Store) ListFeedback(_ context.Context) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(func(models.Feedback) bool { return true }), nil
}

func (s *Store) ListFeedbackByUser(_ context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(func(fb models.Feedback) bool { return fb.UserID == userID }), nil
}

func (s *Store) ListFeedbackByStatus(_ context.Context, status models.FeedbackStatus) ([]models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFirst(func(fb models.Feedback) bool { return fb.Status == status }), nil
}

func (s *Store) SaveFeedback(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	save(s, s.feedback, fb.ID, &fb.UpdatedAt, func() models.Feedback { return *fb })
	return nil
}

func (s *Store) DeleteFeedback(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.feedback, id)
}

// Inventory

func (s *Store) CreateItem(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	insert(s, s.inventory, &item.ID, &item.CreatedAt, &item.UpdatedAt, func() models.InventoryItem { return *item })
	return nil
}

func (s *Store) GetItem(_ context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return get(s.inventory, id)
}

func (s *Store) ListItems(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory.ordered(), nil
}

func (s *Store) SearchItems(_ context.Context, query string) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	out := []models.InventoryItem{}
	for _, item := range s.inventory.ordered() {
		if strings.Contains(strings.ToLower(item.ItemName), q) ||
			strings.Contains(strings.ToLower(item.Category), q) ||
			strings.Contains(strings.ToLower(item.SupplierName), q) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *Store) SaveItem(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	save(s, s.inventory, item.ID, &item.UpdatedAt, func() models.InventoryItem { return *item })
	return nil
}

func (s *Store) DeleteItem(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return remove(s.inventory, id)
}

func (s *Store) RetrieveStock(_ context.Context, id uuid.UUID, n int) (*models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.inventory.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if item.Quantity < n {
		return nil, repository.ErrInsufficientStock
	}
	item.Quantity -= n
	item.UpdatedAt = time.Now()
	s.inventory.rows[id] = item
	return &item, nil
}
