package services

import (
	"time"

	"salonhub-backend/models"
)

// DefaultLowStockThreshold is the quantity at or below which an item is
// reported as low on stock.
const DefaultLowStockThreshold = 10

// DeriveLowStockAlerts builds one unread alert per item whose quantity is at
// or below threshold. Alerts are recomputed from every snapshot.
func DeriveLowStockAlerts(items []models.InventoryItem, threshold int, now time.Time) []models.LowStockAlert {
	alerts := []models.LowStockAlert{}
	for _, item := range items {
		if item.Quantity > threshold {
			continue
		}
		alerts = append(alerts, models.LowStockAlert{
			ItemID:    item.ID,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			Read:      false,
			Timestamp: now,
		})
	}
	return alerts
}
