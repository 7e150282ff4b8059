package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PackageController struct {
	Packages *services.PackageService
	Log      logrus.FieldLogger
}

func (pc *PackageController) Create(c *gin.Context) {
	var input services.CreatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	pkg, err := pc.Packages.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	c.JSON(http.StatusCreated, pkg)
}

func (pc *PackageController) List(c *gin.Context) {
	list, err := pc.Packages.List(c.Request.Context())
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (pc *PackageController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "package")
	if !ok {
		return
	}
	pkg, err := pc.Packages.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (pc *PackageController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "package")
	if !ok {
		return
	}
	var input services.UpdatePackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	pkg, err := pc.Packages.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, pc.Log, err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

func (pc *PackageController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "package")
	if !ok {
		return
	}
	if err := pc.Packages.Delete(c.Request.Context(), id); err != nil {
		respondError(c, pc.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Package deleted successfully"})
}
