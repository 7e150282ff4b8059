package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreatePackageInput struct {
	Name         string      `json:"p_name" binding:"required"`
	Description  string      `json:"description"`
	Services     []uuid.UUID `json:"services"`
	BasePrice    float64     `json:"base_price"`
	DiscountRate float64     `json:"discount_rate"`
	StartDate    string      `json:"start_date" binding:"required"`
	EndDate      string      `json:"end_date" binding:"required"`
	PackageType  string      `json:"package_type" binding:"required"`
	Category     string      `json:"category" binding:"required"`
}

type UpdatePackageInput struct {
	Name         *string      `json:"p_name"`
	Description  *string      `json:"description"`
	Services     *[]uuid.UUID `json:"services"`
	BasePrice    *float64     `json:"base_price"`
	DiscountRate *float64     `json:"discount_rate"`
	StartDate    *string      `json:"start_date"`
	EndDate      *string      `json:"end_date"`
	PackageType  *string      `json:"package_type"`
	Category     *string      `json:"category"`
}

type PackageService struct {
	store    repository.PackageStore
	services repository.ServiceStore
	clock    Clock
	log      logrus.FieldLogger
}

func NewPackageService(store repository.PackageStore, services repository.ServiceStore, clock Clock, log logrus.FieldLogger) *PackageService {
	return &PackageService{store: store, services: services, clock: clock, log: log}
}

// decorate fills the derived pricing fields against today's date.
func (s *PackageService) decorate(p *models.Package) {
	p.FinalPrice = ComputeFinalPrice(p.BasePrice, p.DiscountRate)
	p.Status = ComputePackageStatus(p.StartDate, p.EndDate, s.clock())
}

func parsePackageDate(errs fieldErrors, field, raw string, loc *time.Location) time.Time {
	t, err := utils.ParseDate(strings.TrimSpace(raw), loc)
	if err != nil {
		errs.add(field, err.Error())
	}
	return t
}

func validatePackageText(errs fieldErrors, name, packageType, category string) {
	if strings.TrimSpace(name) == "" {
		errs.add("p_name", "is required")
	}
	if strings.TrimSpace(packageType) == "" {
		errs.add("package_type", "is required")
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(category)); n < 2 || n > 30 {
		errs.add("category", "must be between 2 and 30 characters")
	}
}

func (s *PackageService) validateServices(ctx context.Context, errs fieldErrors, ids []uuid.UUID) error {
	for _, id := range ids {
		_, err := s.services.GetService(ctx, id)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			errs.add("services", fmt.Sprintf("service %s does not exist", id))
		case err != nil:
			return fmt.Errorf("service store: %w", err)
		}
	}
	return nil
}

func (s *PackageService) Create(ctx context.Context, in CreatePackageInput) (*models.Package, error) {
	loc := s.clock().Location()
	errs := fieldErrors{}
	validatePackageText(errs, in.Name, in.PackageType, in.Category)
	start := parsePackageDate(errs, "start_date", in.StartDate, loc)
	end := parsePackageDate(errs, "end_date", in.EndDate, loc)
	validatePricing(errs, in.BasePrice, in.DiscountRate, start, end)
	if err := s.validateServices(ctx, errs, in.Services); err != nil {
		return nil, err
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	pkg := &models.Package{
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Services:     models.UUIDList(in.Services),
		BasePrice:    in.BasePrice,
		DiscountRate: in.DiscountRate,
		StartDate:    start,
		EndDate:      end,
		PackageType:  strings.TrimSpace(in.PackageType),
		Category:     strings.TrimSpace(in.Category),
	}
	if pkg.Services == nil {
		pkg.Services = models.UUIDList{}
	}
	if err := s.store.CreatePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	s.decorate(pkg)
	s.log.WithFields(logrus.Fields{"package_id": pkg.ID, "final_price": pkg.FinalPrice}).Info("package created")
	return pkg, nil
}

func (s *PackageService) Get(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	pkg, err := s.store.GetPackage(ctx, id)
	if err != nil {
		return nil, notFound(err, "Package")
	}
	s.decorate(pkg)
	return pkg, nil
}

func (s *PackageService) List(ctx context.Context) ([]models.Package, error) {
	pkgs, err := s.store.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		s.decorate(&pkgs[i])
	}
	return pkgs, nil
}

// CountActive returns how many packages are on offer today.
func (s *PackageService) CountActive(ctx context.Context) (int, error) {
	pkgs, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range pkgs {
		if p.Status == models.PackageActive {
			n++
		}
	}
	return n, nil
}

func (s *PackageService) Update(ctx context.Context, id uuid.UUID, in UpdatePackageInput) (*models.Package, error) {
	pkg, err := s.store.GetPackage(ctx, id)
	if err != nil {
		return nil, notFound(err, "Package")
	}

	loc := s.clock().Location()
	errs := fieldErrors{}
	name, packageType, category := pkg.Name, pkg.PackageType, pkg.Category
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if in.PackageType != nil {
		packageType = strings.TrimSpace(*in.PackageType)
	}
	if in.Category != nil {
		category = strings.TrimSpace(*in.Category)
	}
	validatePackageText(errs, name, packageType, category)

	base, rate, start, end := pkg.BasePrice, pkg.DiscountRate, pkg.StartDate, pkg.EndDate
	if in.BasePrice != nil {
		base = *in.BasePrice
	}
	if in.DiscountRate != nil {
		rate = *in.DiscountRate
	}
	if in.StartDate != nil {
		start = parsePackageDate(errs, "start_date", *in.StartDate, loc)
	}
	if in.EndDate != nil {
		end = parsePackageDate(errs, "end_date", *in.EndDate, loc)
	}
	if !start.IsZero() {
		start = utils.DateIn(start, loc)
	}
	if !end.IsZero() {
		end = utils.DateIn(end, loc)
	}
	validatePricing(errs, base, rate, start, end)
	if in.Services != nil {
		if err := s.validateServices(ctx, errs, *in.Services); err != nil {
			return nil, err
		}
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	pkg.Name, pkg.PackageType, pkg.Category = name, packageType, category
	pkg.BasePrice, pkg.DiscountRate, pkg.StartDate, pkg.EndDate = base, rate, start, end
	if in.Description != nil {
		pkg.Description = strings.TrimSpace(*in.Description)
	}
	if in.Services != nil {
		pkg.Services = models.UUIDList(*in.Services)
	}
	if err := s.store.SavePackage(ctx, pkg); err != nil {
		return nil, fmt.Errorf("save package: %w", err)
	}
	s.decorate(pkg)
	return pkg, nil
}

func (s *PackageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeletePackage(ctx, id); err != nil {
		return notFound(err, "Package")
	}
	return nil
}
