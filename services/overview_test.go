package services

import (
	"testing"

	"salonhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview(t *testing.T) {
	env := newTestEnv(t)
	owner := customerActor()

	book := func(date, clock string) *models.Appointment {
		in := validAppointment()
		in.Date, in.Time = date, clock
		appt, err := env.appointments.Create(env.ctx, owner, in)
		require.NoError(t, err)
		return appt
	}
	book("2025-03-14", "16:00")
	book("2025-03-15", "09:00")
	book("2025-03-18", "11:00")
	book("2025-03-21", "10:00") // outside the 7 day window
	cancelled := book("2025-03-16", "10:00")
	_, err := env.appointments.UpdateStatus(env.ctx, adminActor, cancelled.ID, "Cancelled")
	require.NoError(t, err)

	_, err = env.packages.Create(env.ctx, validPackage())
	require.NoError(t, err)
	_, err = env.feedback.Create(env.ctx, owner, validFeedback("service1"))
	require.NoError(t, err)
	_, err = env.inventory.Create(env.ctx, validInventory(2))
	require.NoError(t, err)

	overview := NewOverviewService(env.appointments, env.feedback, env.packages, env.inventory, env.clock)

	_, err = overview.Overview(env.ctx, owner)
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)

	got, err := overview.Overview(env.ctx, adminActor)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalAppointments)
	assert.Equal(t, 4, got.AppointmentsByStatus["Processing"])
	assert.Equal(t, 1, got.AppointmentsByStatus["Cancelled"])
	assert.Equal(t, 0, got.AppointmentsByStatus["Completed"])
	assert.Equal(t, 1, got.PendingFeedback)
	assert.Equal(t, 1, got.ActivePackages)
	assert.Equal(t, 1, got.LowStockItems)

	require.Len(t, got.UpcomingAppointments, 3)
	assert.Equal(t, "Today", got.UpcomingAppointments[0].Date)
	assert.Equal(t, "16:00", got.UpcomingAppointments[0].Time)
	assert.Equal(t, "Tomorrow", got.UpcomingAppointments[1].Date)
	assert.Equal(t, "4 days", got.UpcomingAppointments[2].Date)
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Today", dayLabel(0))
	assert.Equal(t, "Tomorrow", dayLabel(1))
	assert.Equal(t, "6 days", dayLabel(6))
}
