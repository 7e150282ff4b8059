// Package postgres implements the entity stores on PostgreSQL through gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ repository.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AutoMigrate creates or updates the tables of every entity.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Package{},
		&models.Appointment{},
		&models.Feedback{},
		&models.InventoryItem{},
	)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	default:
		return err
	}
}

func deleteByID(db *gorm.DB, model interface{}, id uuid.UUID) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Users

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Save(user).Error)
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.User{}, id)
}

// Services

func (s *Store) CreateService(ctx context.Context, service *models.Service) error {
	return translate(s.db.WithContext(ctx).Create(service).Error)
}

func (s *Store) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (s *Store) GetServiceByCode(ctx context.Context, code string) (*models.Service, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).Where("service_code = ?", code).First(&service).Error; err != nil {
		return nil, translate(err)
	}
	return &service, nil
}

func (s *Store) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	err := s.db.WithContext(ctx).Order("created_at").Find(&services).Error
	return services, err
}

func (s *Store) CountServices(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Service{}).Count(&n).Error
	return n, err
}

func (s *Store) SaveService(ctx context.Context, service *models.Service) error {
	return translate(s.db.WithContext(ctx).Save(service).Error)
}

func (s *Store) DeleteService(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.Service{}, id)
}

// Packages

func (s *Store) CreatePackage(ctx context.Context, pkg *models.Package) error {
	return translate(s.db.WithContext(ctx).Create(pkg).Error)
}

func (s *Store) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error; err != nil {
		return nil, translate(err)
	}
	return &pkg, nil
}

func (s *Store) ListPackages(ctx context.Context) ([]models.Package, error) {
	var pkgs []models.Package
	err := s.db.WithContext(ctx).Order("created_at").Find(&pkgs).Error
	return pkgs, err
}

func (s *Store) SavePackage(ctx context.Context, pkg *models.Package) error {
	return translate(s.db.WithContext(ctx).Save(pkg).Error)
}

func (s *Store) DeletePackage(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.Package{}, id)
}

// Appointments

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return translate(s.db.WithContext(ctx).Create(appt).Error)
}

func (s *Store) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error; err != nil {
		return nil, translate(err)
	}
	return &appt, nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).Order("appoi_date, appoi_time").Find(&appts).Error
	return appts, err
}

func (s *Store) ListAppointmentsByUser(ctx context.Context, userID uuid.UUID) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("appoi_date, appoi_time").Find(&appts).Error
	return appts, err
}

func (s *Store) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return translate(s.db.WithContext(ctx).Save(appt).Error)
}

func (s *Store) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.Appointment{}, id)
}

// Feedback

func (s *Store) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	return translate(s.db.WithContext(ctx).Create(fb).Error)
}

func (s *Store) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var fb models.Feedback
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&fb).Error; err != nil {
		return nil, translate(err)
	}
	return &fb, nil
}

func (s *Store) ListFeedback(ctx context.Context) ([]models.Feedback, error) {
	var items []models.Feedback
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Store) ListFeedbackByUser(ctx context.Context, userID uuid.UUID) ([]models.Feedback, error) {
	var items []models.Feedback
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Store) ListFeedbackByStatus(ctx context.Context, status models.FeedbackStatus) ([]models.Feedback, error) {
	var items []models.Feedback
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Store) SaveFeedback(ctx context.Context, fb *models.Feedback) error {
	return translate(s.db.WithContext(ctx).Save(fb).Error)
}

func (s *Store) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.Feedback{}, id)
}

// Inventory

func (s *Store) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.db.WithContext(ctx).Order("created_at").Find(&items).Error
	return items, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// SearchItems matches query as a literal substring; % and _ are not wildcards.
func (s *Store) SearchItems(ctx context.Context, query string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	like := "%" + likeEscaper.Replace(query) + "%"
	err := s.db.WithContext(ctx).
		Where(`item_name ILIKE ? ESCAPE '\' OR category ILIKE ? ESCAPE '\' OR supplier_name ILIKE ? ESCAPE '\'`, like, like, like).
		Order("created_at").Find(&items).Error
	return items, err
}

func (s *Store) SaveItem(ctx context.Context, item *models.InventoryItem) error {
	return translate(s.db.WithContext(ctx).Save(item).Error)
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return deleteByID(s.db.WithContext(ctx), &models.InventoryItem{}, id)
}

func (s *Store) RetrieveStock(ctx context.Context, id uuid.UUID, n int) (*models.InventoryItem, error) {
	// Guarded decrement: quantity never drops below zero.
	result := s.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ? AND quantity >= ?", id, n).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - ?", n),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetItem(ctx, id); err != nil {
			return nil, err
		}
		return nil, repository.ErrInsufficientStock
	}
	return s.GetItem(ctx, id)
}
