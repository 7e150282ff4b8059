package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var serviceCodeRegex = regexp.MustCompile(`^` + models.ServiceCodePrefix + `\d+$`)

// Availability is the "available" flag as clients send it: a JSON bool or
// one of "Yes", "No", "true", "false".
type Availability string

func (a *Availability) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*a = Availability(strconv.FormatBool(b))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("available must be a boolean or Yes/No")
	}
	*a = Availability(s)
	return nil
}

// Bool parses the flag; ok is false for unrecognised values.
func (a Availability) Bool() (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(string(a))) {
	case "yes", "true", "1":
		return true, true
	case "no", "false", "0":
		return false, true
	}
	return false, false
}

type CreateServiceInput struct {
	ServiceCode string       `json:"service_ID" form:"service_ID"`
	Category    string       `json:"category" form:"category" binding:"required"`
	SubCategory string       `json:"subCategory" form:"subCategory" binding:"required"`
	Description string       `json:"description" form:"description"`
	Duration    string       `json:"duration" form:"duration" binding:"required"`
	Price       float64      `json:"price" form:"price" binding:"required"`
	Available   Availability `json:"available" form:"available"`
	Image       string       `json:"-" form:"-"`
}

type UpdateServiceInput struct {
	Category    *string       `json:"category" form:"category"`
	SubCategory *string       `json:"subCategory" form:"subCategory"`
	Description *string       `json:"description" form:"description"`
	Duration    *string       `json:"duration" form:"duration"`
	Price       *float64      `json:"price" form:"price"`
	Available   *Availability `json:"available" form:"available"`
	Image       string        `json:"-" form:"-"`
}

// CatalogService manages the salon's service menu.
type CatalogService struct {
	store repository.ServiceStore
	log   logrus.FieldLogger
}

func NewCatalogService(store repository.ServiceStore, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{store: store, log: log}
}

// NormalizeServiceCode turns "42" into "service42" and leaves prefixed codes
// alone.
func NormalizeServiceCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || strings.HasPrefix(code, models.ServiceCodePrefix) {
		return code
	}
	return models.ServiceCodePrefix + code
}

func validateServiceFields(errs fieldErrors, category, subCategory, duration string, price float64) {
	if strings.TrimSpace(category) == "" {
		errs.add("category", "is required")
	}
	if strings.TrimSpace(subCategory) == "" {
		errs.add("subCategory", "is required")
	}
	if err := utils.ValidateDuration(duration); err != nil {
		errs.add("duration", err.Error())
	}
	if price <= 0 {
		errs.add("price", "must be greater than 0")
	}
}

func (s *CatalogService) Create(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	errs := fieldErrors{}
	validateServiceFields(errs, in.Category, in.SubCategory, in.Duration, in.Price)
	code := NormalizeServiceCode(in.ServiceCode)
	if code != "" && !serviceCodeRegex.MatchString(code) {
		errs.add("service_ID", "must look like service<N>")
	}
	available := true
	if in.Available != "" {
		v, ok := in.Available.Bool()
		if !ok {
			errs.add("available", "must be Yes or No")
		}
		available = v
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	service := &models.Service{
		ServiceCode: code,
		Category:    strings.TrimSpace(in.Category),
		SubCategory: strings.TrimSpace(in.SubCategory),
		Description: strings.TrimSpace(in.Description),
		Duration:    strings.TrimSpace(in.Duration),
		Price:       in.Price,
		Available:   available,
		Image:       in.Image,
	}
	if code != "" {
		if err := s.store.CreateService(ctx, service); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, &ConflictError{Message: fmt.Sprintf("Service %s already exists", code)}
			}
			return nil, fmt.Errorf("create service: %w", err)
		}
	} else if err := s.createWithNextCode(ctx, service); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"service_id": service.ID, "service_code": service.ServiceCode}).Info("service created")
	return service, nil
}

// createWithNextCode assigns service<N+1>, moving past codes already taken.
func (s *CatalogService) createWithNextCode(ctx context.Context, service *models.Service) error {
	count, err := s.store.CountServices(ctx)
	if err != nil {
		return fmt.Errorf("count services: %w", err)
	}
	const attempts = 20
	for i := int64(1); i <= attempts; i++ {
		service.ServiceCode = models.ServiceCodePrefix + strconv.FormatInt(count+i, 10)
		err = s.store.CreateService(ctx, service)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	service, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, "Service")
	}
	return service, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.store.ListServices(ctx)
}

// Update changes the editable fields. The canonical service code is fixed
// once assigned since feedback refers to it.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, in UpdateServiceInput) (*models.Service, error) {
	service, err := s.store.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, "Service")
	}

	category, sub, duration, price := service.Category, service.SubCategory, service.Duration, service.Price
	if in.Category != nil {
		category = strings.TrimSpace(*in.Category)
	}
	if in.SubCategory != nil {
		sub = strings.TrimSpace(*in.SubCategory)
	}
	if in.Duration != nil {
		duration = strings.TrimSpace(*in.Duration)
	}
	if in.Price != nil {
		price = *in.Price
	}
	errs := fieldErrors{}
	validateServiceFields(errs, category, sub, duration, price)
	available := service.Available
	if in.Available != nil {
		v, ok := in.Available.Bool()
		if !ok {
			errs.add("available", "must be Yes or No")
		}
		available = v
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	service.Category, service.SubCategory, service.Duration, service.Price = category, sub, duration, price
	service.Available = available
	if in.Description != nil {
		service.Description = strings.TrimSpace(*in.Description)
	}
	if in.Image != "" {
		service.Image = in.Image
	}
	if err := s.store.SaveService(ctx, service); err != nil {
		return nil, fmt.Errorf("save service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteService(ctx, id); err != nil {
		return notFound(err, "Service")
	}
	return nil
}
