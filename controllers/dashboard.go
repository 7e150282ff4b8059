package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardController struct {
	Overview *services.OverviewService
	Log      logrus.FieldLogger
}

func (dc *DashboardController) GetOverview(c *gin.Context) {
	overview, err := dc.Overview.Overview(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, dc.Log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
