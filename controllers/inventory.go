package controllers

import (
	"net/http"

	"salonhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type InventoryController struct {
	Inventory *services.InventoryService
	Log       logrus.FieldLogger
}

func (ic *InventoryController) Create(c *gin.Context) {
	var input services.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := ic.Inventory.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (ic *InventoryController) List(c *gin.Context) {
	items, err := ic.Inventory.List(c.Request.Context())
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ic *InventoryController) Search(c *gin.Context) {
	items, err := ic.Inventory.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ic *InventoryController) Notifications(c *gin.Context) {
	alerts, err := ic.Inventory.Alerts(c.Request.Context())
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (ic *InventoryController) Get(c *gin.Context) {
	id, ok := paramID(c, "id", "inventory")
	if !ok {
		return
	}
	item, err := ic.Inventory.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "inventory")
	if !ok {
		return
	}
	var input services.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := ic.Inventory.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) Retrieve(c *gin.Context) {
	id, ok := paramID(c, "id", "inventory")
	if !ok {
		return
	}
	var input services.RetrieveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}
	item, err := ic.Inventory.Retrieve(c.Request.Context(), id, input.Quantity)
	if err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ic *InventoryController) Delete(c *gin.Context) {
	id, ok := paramID(c, "id", "inventory")
	if !ok {
		return
	}
	if err := ic.Inventory.Delete(c.Request.Context(), id); err != nil {
		respondError(c, ic.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}
