package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and reported without detail.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		conflict   *services.ConflictError
		forbidden  *services.ForbiddenError
	)
	switch {
	case errors.As(err, &validation):
		utils.RespondWithError(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		utils.RespondWithError(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		utils.RespondWithError(c, http.StatusConflict, conflict.Error())
	case errors.As(err, &forbidden):
		utils.RespondWithError(c, http.StatusForbidden, forbidden.Error())
	default:
		log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("request failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func respondBindError(c *gin.Context, err error) {
	verr := &services.ValidationError{Fields: utils.BindingErrors(err)}
	utils.RespondWithError(c, http.StatusBadRequest, verr.Error())
}

// actorFrom reads the identity set by utils.AuthMiddleware.
func actorFrom(c *gin.Context) services.Actor {
	id, _ := uuid.Parse(c.GetString(utils.ContextUserID))
	return services.Actor{UserID: id, Role: c.GetString(utils.ContextRole)}
}

// paramID parses a uuid path parameter, answering 400 when malformed.
func paramID(c *gin.Context, name, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+entity+" ID format")
		return uuid.Nil, false
	}
	return id, true
}
