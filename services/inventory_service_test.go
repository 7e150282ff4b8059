package services

import (
	"sync"
	"testing"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInventory(qty int) InventoryInput {
	return InventoryInput{
		ItemName:      "Argan Shampoo",
		Category:      "Hair care",
		Quantity:      intPtr(qty),
		Price:         12.5,
		SupplierName:  "Beauty Supply Co",
		SupplierEmail: "orders@beautysupply.com",
	}
}

func TestDeriveLowStockAlertsBoundary(t *testing.T) {
	items := []models.InventoryItem{
		{ID: uuid.New(), ItemName: "at threshold", Quantity: 10},
		{ID: uuid.New(), ItemName: "above threshold", Quantity: 11},
		{ID: uuid.New(), ItemName: "empty", Quantity: 0},
	}

	alerts := DeriveLowStockAlerts(items, DefaultLowStockThreshold, testNow)

	require.Len(t, alerts, 2)
	assert.Equal(t, "at threshold", alerts[0].ItemName)
	assert.Equal(t, "empty", alerts[1].ItemName)
	for _, a := range alerts {
		assert.False(t, a.Read)
		assert.Equal(t, testNow, a.Timestamp)
	}
}

func TestDeriveLowStockAlertsEmpty(t *testing.T) {
	alerts := DeriveLowStockAlerts(nil, DefaultLowStockThreshold, testNow)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestInventoryCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*InventoryInput)
		field  string
	}{
		{"negative quantity", func(in *InventoryInput) { in.Quantity = intPtr(-1) }, "Quantity"},
		{"quantity too large", func(in *InventoryInput) { in.Quantity = intPtr(10001) }, "Quantity"},
		{"missing quantity", func(in *InventoryInput) { in.Quantity = nil }, "Quantity"},
		{"zero price", func(in *InventoryInput) { in.Price = 0 }, "Price"},
		{"price too large", func(in *InventoryInput) { in.Price = 100000.01 }, "Price"},
		{"three decimals", func(in *InventoryInput) { in.Price = 1.005 }, "Price"},
		{"bad supplier email", func(in *InventoryInput) { in.SupplierEmail = "not-an-email" }, "SupplierEmail"},
		{"blank name", func(in *InventoryInput) { in.ItemName = "  " }, "ItemName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInventory(5)
			tt.mutate(&in)
			_, err := env.inventory.Create(env.ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	items, err := env.inventory.List(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestInventoryAcceptsLimits(t *testing.T) {
	env := newTestEnv(t)
	in := validInventory(10000)
	in.Price = 100000
	item, err := env.inventory.Create(env.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 10000, item.Quantity)
}

func TestInventoryRetrieve(t *testing.T) {
	env := newTestEnv(t)
	item, err := env.inventory.Create(env.ctx, validInventory(12))
	require.NoError(t, err)

	updated, err := env.inventory.Retrieve(env.ctx, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Quantity)

	alerts, err := env.inventory.Alerts(env.ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, item.ID, alerts[0].ItemID)
}

func TestInventoryAlertsRecordLowStockGauge(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.inventory.Create(env.ctx, validInventory(3))
	require.NoError(t, err)
	_, err = env.inventory.Create(env.ctx, validInventory(50))
	require.NoError(t, err)

	_, err = env.inventory.Alerts(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, env.rec.lowStock)

	env.rec.lowStock = -1
	_, err = env.inventory.Alerts(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, env.rec.lowStock)
}

func TestInventoryRetrieveRejectsOverdraw(t *testing.T) {
	env := newTestEnv(t)
	item, err := env.inventory.Create(env.ctx, validInventory(3))
	require.NoError(t, err)

	_, err = env.inventory.Retrieve(env.ctx, item.ID, 4)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "exceeds available stock", verr.Fields["quantity"])

	_, err = env.inventory.Retrieve(env.ctx, item.ID, 0)
	require.ErrorAs(t, err, &verr)

	got, err := env.inventory.Get(env.ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Quantity)
}

func TestInventoryRetrieveUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.inventory.Retrieve(env.ctx, uuid.New(), 1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "Inventory not found", nf.Error())
}

func TestInventoryConcurrentRetrieveNeverGoesNegative(t *testing.T) {
	env := newTestEnv(t)
	item, err := env.inventory.Create(env.ctx, validInventory(10))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.inventory.Retrieve(env.ctx, item.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	got, err := env.inventory.Get(env.ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, 0, got.Quantity)
}

func TestInventorySearchAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	item, err := env.inventory.Create(env.ctx, validInventory(40))
	require.NoError(t, err)

	found, err := env.inventory.Search(env.ctx, "argan")
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := env.inventory.Search(env.ctx, "nail polish")
	require.NoError(t, err)
	assert.Empty(t, none)

	in := validInventory(5)
	in.ItemName = "Argan Shampoo 1L"
	updated, err := env.inventory.Update(env.ctx, item.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Argan Shampoo 1L", updated.ItemName)

	require.NoError(t, env.inventory.Delete(env.ctx, item.ID))
	var nf *NotFoundError
	require.ErrorAs(t, env.inventory.Delete(env.ctx, item.ID), &nf)
}
