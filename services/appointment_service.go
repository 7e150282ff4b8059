package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateAppointmentInput struct {
	ClientName       string               `json:"client_name" binding:"required"`
	ClientEmail      string               `json:"client_email" binding:"required"`
	ClientPhone      string               `json:"client_phone" binding:"required"`
	Stylist          string               `json:"stylist" binding:"required"`
	Services         models.DelimitedList `json:"services" binding:"required"`
	PackageID        string               `json:"packages"`
	CustomizePackage string               `json:"customize_package"`
	Date             string               `json:"appoi_date" binding:"required"`
	Time             string               `json:"appoi_time" binding:"required"`
}

type UpdateAppointmentInput struct {
	ClientName       *string               `json:"client_name"`
	ClientEmail      *string               `json:"client_email"`
	ClientPhone      *string               `json:"client_phone"`
	Stylist          *string               `json:"stylist"`
	Services         *models.DelimitedList `json:"services"`
	PackageID        *string               `json:"packages"`
	CustomizePackage *string               `json:"customize_package"`
	Date             *string               `json:"appoi_date"`
	Time             *string               `json:"appoi_time"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// appointmentFlow maps each status to the single forward step allowed from it.
var appointmentFlow = map[models.AppointmentStatus]models.AppointmentStatus{
	models.AppointmentProcessing: models.AppointmentPending,
	models.AppointmentPending:    models.AppointmentConfirmed,
	models.AppointmentConfirmed:  models.AppointmentCompleted,
}

func ParseAppointmentStatus(s string) (models.AppointmentStatus, bool) {
	for _, st := range []models.AppointmentStatus{
		models.AppointmentProcessing,
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	} {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

func IsTerminal(s models.AppointmentStatus) bool {
	return s == models.AppointmentCompleted || s == models.AppointmentCancelled
}

// CanTransition reports whether an appointment may move from one status to
// another: one step forward, or to Cancelled while not yet terminal.
func CanTransition(from, to models.AppointmentStatus) bool {
	if IsTerminal(from) {
		return false
	}
	if to == models.AppointmentCancelled {
		return true
	}
	return appointmentFlow[from] == to
}

type AppointmentService struct {
	store    repository.AppointmentStore
	packages repository.PackageStore
	clock    Clock
	log      logrus.FieldLogger
	metrics  Recorder
}

func NewAppointmentService(store repository.AppointmentStore, packages repository.PackageStore, clock Clock, log logrus.FieldLogger, metrics Recorder) *AppointmentService {
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &AppointmentService{store: store, packages: packages, clock: clock, log: log, metrics: metrics}
}

func (s *AppointmentService) Create(ctx context.Context, actor Actor, in CreateAppointmentInput) (*models.Appointment, error) {
	errs := fieldErrors{}
	now := s.clock()
	validateClient(errs, in.ClientName, in.ClientEmail, in.ClientPhone, in.Stylist)
	if len(in.Services) == 0 {
		errs.add("services", "at least one service is required")
	}
	date, clock := validateSlot(errs, in.Date, in.Time, now)
	pkgID := s.validatePackage(ctx, errs, in.PackageID)
	if err := errs.err(); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		UserID:           actor.UserID,
		ClientName:       strings.TrimSpace(in.ClientName),
		ClientEmail:      strings.TrimSpace(in.ClientEmail),
		ClientPhone:      in.ClientPhone,
		Stylist:          strings.TrimSpace(in.Stylist),
		Services:         in.Services,
		PackageID:        pkgID,
		CustomizePackage: strings.TrimSpace(in.CustomizePackage),
		Date:             date,
		Time:             clock,
		Status:           models.AppointmentProcessing,
	}
	if err := s.store.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	s.metrics.AppointmentCreated()
	s.log.WithFields(logrus.Fields{
		"appointment_id": appt.ID,
		"user_id":        appt.UserID,
		"date":           appt.Date.Format(utils.DateLayout),
	}).Info("appointment booked")
	return appt, nil
}

func validateClient(errs fieldErrors, name, email, phone, stylist string) {
	if strings.TrimSpace(name) == "" {
		errs.add("client_name", "is required")
	}
	if !utils.ValidateEmail(email) {
		errs.add("client_email", "must be a valid email address")
	}
	if !utils.ValidatePhone(phone) {
		errs.add("client_phone", "must be exactly 10 digits")
	}
	if strings.TrimSpace(stylist) == "" {
		errs.add("stylist", "is required")
	}
}

// validateSlot rejects dates before today and, for today, times earlier than
// the current minute.
func validateSlot(errs fieldErrors, rawDate, rawTime string, now time.Time) (time.Time, string) {
	date, err := utils.ParseDate(strings.TrimSpace(rawDate), now.Location())
	if err != nil {
		errs.add("appoi_date", err.Error())
		return time.Time{}, ""
	}
	if date.Before(utils.BeginningOfDay(now)) {
		errs.add("appoi_date", "must be today or later")
		return date, ""
	}
	rawTime = strings.TrimSpace(rawTime)
	slot, err := utils.CombineDateClock(date, rawTime)
	if err != nil {
		errs.add("appoi_time", err.Error())
		return date, ""
	}
	if utils.SameDay(date, now) && slot.Before(now.Truncate(time.Minute)) {
		errs.add("appoi_time", "must not be in the past")
	}
	return date, slot.Format(utils.ClockLayout)
}

func (s *AppointmentService) validatePackage(ctx context.Context, errs fieldErrors, raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		errs.add("packages", "must be a valid package id")
		return nil
	}
	if _, err := s.packages.GetPackage(ctx, id); err != nil {
		errs.add("packages", "package does not exist")
		return nil
	}
	return &id
}

// load fetches an appointment the actor may act on.
func (s *AppointmentService) load(ctx context.Context, actor Actor, id uuid.UUID) (*models.Appointment, error) {
	appt, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, notFound(err, "Appointment")
	}
	if !actor.CanAccess(appt.UserID) {
		return nil, &ForbiddenError{Message: "Not allowed to access this appointment"}
	}
	return appt, nil
}

func (s *AppointmentService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Appointment, error) {
	return s.load(ctx, actor, id)
}

func (s *AppointmentService) List(ctx context.Context, actor Actor) ([]models.Appointment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.store.ListAppointments(ctx)
}

func (s *AppointmentService) ListByUser(ctx context.Context, actor Actor, userID uuid.UUID) ([]models.Appointment, error) {
	if !actor.CanAccess(userID) {
		return nil, &ForbiddenError{Message: "Not allowed to view these appointments"}
	}
	return s.store.ListAppointmentsByUser(ctx, userID)
}

// Update edits booking details. Status is never changed here and finished
// or cancelled appointments are frozen.
func (s *AppointmentService) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateAppointmentInput) (*models.Appointment, error) {
	appt, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if IsTerminal(appt.Status) {
		return nil, &ConflictError{Message: fmt.Sprintf("Appointment is %s and can no longer be changed", appt.Status)}
	}

	name, email, phone, stylist := appt.ClientName, appt.ClientEmail, appt.ClientPhone, appt.Stylist
	if in.ClientName != nil {
		name = strings.TrimSpace(*in.ClientName)
	}
	if in.ClientEmail != nil {
		email = strings.TrimSpace(*in.ClientEmail)
	}
	if in.ClientPhone != nil {
		phone = *in.ClientPhone
	}
	if in.Stylist != nil {
		stylist = strings.TrimSpace(*in.Stylist)
	}

	errs := fieldErrors{}
	validateClient(errs, name, email, phone, stylist)
	if in.Services != nil && len(*in.Services) == 0 {
		errs.add("services", "at least one service is required")
	}
	date, clock := appt.Date, appt.Time
	if in.Date != nil || in.Time != nil {
		rawDate, rawTime := appt.Date.Format(utils.DateLayout), appt.Time
		if in.Date != nil {
			rawDate = *in.Date
		}
		if in.Time != nil {
			rawTime = *in.Time
		}
		date, clock = validateSlot(errs, rawDate, rawTime, s.clock())
	}
	pkgID := appt.PackageID
	if in.PackageID != nil {
		pkgID = s.validatePackage(ctx, errs, *in.PackageID)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	appt.ClientName, appt.ClientEmail, appt.ClientPhone, appt.Stylist = name, email, phone, stylist
	if in.Services != nil {
		appt.Services = *in.Services
	}
	if in.CustomizePackage != nil {
		appt.CustomizePackage = strings.TrimSpace(*in.CustomizePackage)
	}
	appt.Date, appt.Time, appt.PackageID = date, clock, pkgID
	if err := s.store.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// UpdateStatus moves an appointment along its lifecycle. Setting the current
// status again is accepted and changes nothing.
func (s *AppointmentService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, raw string) (*models.Appointment, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	status, ok := ParseAppointmentStatus(strings.TrimSpace(raw))
	if !ok {
		return nil, invalid("status", "must be one of: Processing, Pending, Confirmed, Completed, Cancelled")
	}
	appt, err := s.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, notFound(err, "Appointment")
	}
	if appt.Status == status {
		return appt, nil
	}
	if !CanTransition(appt.Status, status) {
		return nil, &ConflictError{Message: fmt.Sprintf("Cannot change appointment status from %s to %s", appt.Status, status)}
	}
	from := appt.Status
	appt.Status = status
	if err := s.store.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"appointment_id": appt.ID,
		"from":           from,
		"to":             status,
	}).Info("appointment status changed")
	return appt, nil
}

func (s *AppointmentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.load(ctx, actor, id); err != nil {
		return err
	}
	if err := s.store.DeleteAppointment(ctx, id); err != nil {
		return notFound(err, "Appointment")
	}
	return nil
}
