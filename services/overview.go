package services

import (
	"context"
	"fmt"

	"salonhub-backend/models"
	"salonhub-backend/utils"
)

const (
	upcomingWindowDays = 7
	maxUpcoming        = 7
)

type DashboardOverview struct {
	TotalAppointments    int                   `json:"totalAppointments"`
	AppointmentsByStatus map[string]int        `json:"appointmentsByStatus"`
	PendingFeedback      int                   `json:"pendingFeedback"`
	ActivePackages       int                   `json:"activePackages"`
	LowStockItems        int                   `json:"lowStockItems"`
	UpcomingAppointments []UpcomingAppointment `json:"upcomingAppointments"`
}

type UpcomingAppointment struct {
	ClientName string `json:"clientName"`
	Stylist    string `json:"stylist"`
	Time       string `json:"time"`
	Date       string `json:"date"` // "Today", "Tomorrow", "3 days"
}

// OverviewService aggregates the admin dashboard counters.
type OverviewService struct {
	appointments *AppointmentService
	feedback     *FeedbackService
	packages     *PackageService
	inventory    *InventoryService
	clock        Clock
}

func NewOverviewService(appointments *AppointmentService, feedback *FeedbackService, packages *PackageService, inventory *InventoryService, clock Clock) *OverviewService {
	return &OverviewService{
		appointments: appointments,
		feedback:     feedback,
		packages:     packages,
		inventory:    inventory,
		clock:        clock,
	}
}

func (s *OverviewService) Overview(ctx context.Context, actor Actor) (*DashboardOverview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	appts, err := s.appointments.List(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("appointments: %w", err)
	}
	pending, err := s.feedback.CountPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("feedback: %w", err)
	}
	active, err := s.packages.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("packages: %w", err)
	}
	alerts, err := s.inventory.Alerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}

	out := &DashboardOverview{
		TotalAppointments:    len(appts),
		AppointmentsByStatus: map[string]int{},
		PendingFeedback:      pending,
		ActivePackages:       active,
		LowStockItems:        len(alerts),
		UpcomingAppointments: []UpcomingAppointment{},
	}
	for _, st := range []models.AppointmentStatus{
		models.AppointmentProcessing,
		models.AppointmentPending,
		models.AppointmentConfirmed,
		models.AppointmentCompleted,
		models.AppointmentCancelled,
	} {
		out.AppointmentsByStatus[string(st)] = 0
	}

	today := utils.BeginningOfDay(s.clock())
	for _, a := range appts {
		out.AppointmentsByStatus[string(a.Status)]++
		if IsTerminal(a.Status) || len(out.UpcomingAppointments) >= maxUpcoming {
			continue
		}
		days := utils.DaysBetween(today, utils.DateIn(a.Date, today.Location()))
		if days < 0 || days >= upcomingWindowDays {
			continue
		}
		out.UpcomingAppointments = append(out.UpcomingAppointments, UpcomingAppointment{
			ClientName: a.ClientName,
			Stylist:    a.Stylist,
			Time:       a.Time,
			Date:       dayLabel(days),
		})
	}
	return out, nil
}

func dayLabel(days int) string {
	switch days {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
