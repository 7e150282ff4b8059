package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedbackController struct {
	Feedback *services.FeedbackService
	Log      logrus.FieldLogger
}

func (fc *FeedbackController) Create(c *gin.Context) {
	var input services.CreateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	fb, err := fc.Feedback.Create(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (fc *FeedbackController) List(c *gin.Context) {
	list, err := fc.Feedback.List(c.Request.Context())
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (fc *FeedbackController) ListApproved(c *gin.Context) {
	list, err := fc.Feedback.ListApproved(c.Request.Context())
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (fc *FeedbackController) ListByUser(c *gin.Context) {
	userID, ok := paramID(c, "userId", "user")
	if !ok {
		return
	}
	list, err := fc.Feedback.ListByUser(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (fc *FeedbackController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "feedback")
	if !ok {
		return
	}
	fb, err := fc.Feedback.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (fc *FeedbackController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "feedback")
	if !ok {
		return
	}
	var input services.UpdateFeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	fb, err := fc.Feedback.Update(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (fc *FeedbackController) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id", "feedback")
	if !ok {
		return
	}
	var input services.FeedbackStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	fb, err := fc.Feedback.SetStatus(c.Request.Context(), actorFrom(c), id, input.Status)
	if err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}

func (fc *FeedbackController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "feedback")
	if !ok {
		return
	}
	if err := fc.Feedback.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, fc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully"})
}
