// Package repository declares the entity stores the services depend on.
// Implementations live in repository/postgres (gorm) and repository/memory.
package repository

import (
	"context"
	"errors"

	"salonhub-backend/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate record")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type ServiceStore interface {
	CreateService(ctx context.Context, service *models.Service) error
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetServiceByCode(ctx context.Context, code string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	CountServices(ctx context.Context) (int64, error)
	SaveService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type PackageStore interface {
	CreatePackage(ctx context.Context, pkg *models.Package) error
	GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error)
	ListPackages(ctx context.Context) ([]models.Package, error)
	SavePackage(ctx context.Context, pkg *models.Package) error
	DeletePackage(ctx context.Context, id uuid.UUID) error
}

type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListAppointmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error)
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type FeedbackStore interface {
	CreateFeedback(ctx context.Context, fb *models.Feedback) error
	GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListFeedback(ctx context.Context) ([]models.Feedback, error)
	ListFeedbackByUser(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error)
	ListFeedbackByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.Feedback, error)
	SaveFeedback(ctx context.Context, fb *models.Feedback) error
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

type InventoryStore interface {
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error)
	ListItems(ctx context.Context) ([]models.InventoryItem, error)
	SearchItems(ctx context.Context, query string) ([]models.InventoryItem, error)
	SaveItem(ctx context.Context, item *models.InventoryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	// RetrieveStock decrements quantity by n only when at least n units are
	// available. It returns ErrInsufficientStock and leaves the row untouched
	// otherwise.
	RetrieveStock(ctx context.Context, id uuid.UUID, n int) (*models.InventoryItem, error)
}

// Store bundles every entity store.
type Store interface {
	UserStore
	ServiceStore
	PackageStore
	AppointmentStore
	FeedbackStore
	InventoryStore
}
