package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AppointmentController struct {
	Appointments *services.AppointmentService
	Log          logrus.FieldLogger
}

func (ac *AppointmentController) Create(c *gin.Context) {
	var input services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	appt, err := ac.Appointments.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (ac *AppointmentController) List(c *gin.Context) {
	list, err := ac.Appointments.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *AppointmentController) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId", "user")
	if !ok {
		return
	}
	list, err := ac.Appointments.ListByUser(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ac *AppointmentController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "appointment")
	if !ok {
		return
	}
	appt, err := ac.Appointments.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "appointment")
	if !ok {
		return
	}
	var input services.UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	appt, err := ac.Appointments.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "appointment")
	if !ok {
		return
	}
	var input services.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	appt, err := ac.Appointments.UpdateStatus(c.Request.Context(), actorFrom(c), id, input.Status)
	if err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (ac *AppointmentController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "appointment")
	if !ok {
		return
	}
	if err := ac.Appointments.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, ac.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
