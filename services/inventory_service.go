package services

import (
	"context"
	"errors"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MaxInventoryQuantity = 10000
	MaxInventoryPrice    = 100000
)

type InventoryInput struct {
	ItemName      string  `json:"ItemName" binding:"required"`
	Category      string  `json:"Category" binding:"required"`
	Quantity      *int    `json:"Quantity" binding:"required"`
	Price         float64 `json:"Price" binding:"required"`
	SupplierName  string  `json:"SupplierName" binding:"required"`
	SupplierEmail string  `json:"SupplierEmail" binding:"required"`
}

type RetrieveInput struct {
	Quantity int `json:"quantity" binding:"required"`
}

type InventoryService struct {
	store     repository.InventoryStore
	threshold int
	clock     Clock
	log       logrus.FieldLogger
	metrics   Recorder
}

func NewInventoryService(store repository.InventoryStore, threshold int, clock Clock, log logrus.FieldLogger, metrics Recorder) *InventoryService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &InventoryService{store: store, threshold: threshold, clock: clock, log: log, metrics: metrics}
}

func (s *InventoryService) Threshold() int {
	return s.threshold
}

func validateInventory(in InventoryInput) error {
	errs := fieldErrors{}
	if strings.TrimSpace(in.ItemName) == "" {
		errs.add("ItemName", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		errs.add("Category", "is required")
	}
	switch {
	case in.Quantity == nil:
		errs.add("Quantity", "is required")
	case *in.Quantity < 0:
		errs.add("Quantity", "must not be negative")
	case *in.Quantity > MaxInventoryQuantity:
		errs.add("Quantity", "cannot exceed 10,000")
	}
	switch {
	case in.Price <= 0:
		errs.add("Price", "must be greater than 0")
	case in.Price > MaxInventoryPrice:
		errs.add("Price", "cannot exceed 100,000")
	case !utils.HasAtMostTwoDecimals(in.Price):
		errs.add("Price", "must have at most 2 decimal places")
	}
	if strings.TrimSpace(in.SupplierName) == "" {
		errs.add("SupplierName", "is required")
	}
	if !utils.ValidateEmail(in.SupplierEmail) {
		errs.add("SupplierEmail", "must be a valid email address")
	}
	return errs.err()
}

func (s *InventoryService) Create(ctx context.Context, in InventoryInput) (*models.InventoryItem, error) {
	if err := validateInventory(in); err != nil {
		return nil, err
	}
	item := &models.InventoryItem{
		ItemName:      strings.TrimSpace(in.ItemName),
		Category:      strings.TrimSpace(in.Category),
		Quantity:      *in.Quantity,
		Price:         in.Price,
		SupplierName:  strings.TrimSpace(in.SupplierName),
		SupplierEmail: strings.TrimSpace(in.SupplierEmail),
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"item_id": item.ID, "quantity": item.Quantity}).Info("inventory item created")
	return item, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, notFound(err, "Inventory")
	}
	return item, nil
}

func (s *InventoryService) List(ctx context.Context) ([]models.InventoryItem, error) {
	return s.store.ListItems(ctx)
}

func (s *InventoryService) Search(ctx context.Context, query string) ([]models.InventoryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.store.ListItems(ctx)
	}
	return s.store.SearchItems(ctx, query)
}

// Update replaces every field; all of them are required as on create.
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, in InventoryInput) (*models.InventoryItem, error) {
	if err := validateInventory(in); err != nil {
		return nil, err
	}
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, notFound(err, "Inventory")
	}
	item.ItemName = strings.TrimSpace(in.ItemName)
	item.Category = strings.TrimSpace(in.Category)
	item.Quantity = *in.Quantity
	item.Price = in.Price
	item.SupplierName = strings.TrimSpace(in.SupplierName)
	item.SupplierEmail = strings.TrimSpace(in.SupplierEmail)
	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return notFound(err, "Inventory")
	}
	return nil
}

// Retrieve takes n units out of stock. Requests larger than the available
// quantity are rejected and leave the item unchanged.
func (s *InventoryService) Retrieve(ctx context.Context, id uuid.UUID, n int) (*models.InventoryItem, error) {
	if n <= 0 {
		return nil, invalid("quantity", "must be at least 1")
	}
	item, err := s.store.RetrieveStock(ctx, id, n)
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return nil, invalid("quantity", "exceeds available stock")
	case err != nil:
		return nil, notFound(err, "Inventory")
	}
	s.log.WithFields(logrus.Fields{
		"item_id":   item.ID,
		"retrieved": n,
		"remaining": item.Quantity,
	}).Info("inventory retrieved")
	return item, nil
}

// Alerts derives low-stock notifications from the current inventory.
func (s *InventoryService) Alerts(ctx context.Context) ([]models.LowStockAlert, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	alerts := DeriveLowStockAlerts(items, s.threshold, s.clock())
	s.metrics.LowStockItems(len(alerts))
	return alerts, nil
}
