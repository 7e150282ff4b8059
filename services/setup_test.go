package services

import (
	"context"
	"testing"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository/memory"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

type recorder struct {
	created   int
	moderated map[string]int
	lowStock  int
}

func (r *recorder) AppointmentCreated() { r.created++ }
func (r *recorder) FeedbackModerated(status string) {
	if r.moderated == nil {
		r.moderated = map[string]int{}
	}
	r.moderated[status]++
}
func (r *recorder) LowStockItems(n int) { r.lowStock = n }

type testEnv struct {
	ctx   context.Context
	store *memory.Store
	log   *logrus.Logger
	hook  *test.Hook
	clock Clock
	rec   *recorder

	users        *UserService
	catalog      *CatalogService
	packages     *PackageService
	appointments *AppointmentService
	feedback     *FeedbackService
	inventory    *InventoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	store := memory.New()
	clock := FixedClock(testNow)
	rec := &recorder{}
	return &testEnv{
		ctx:          context.Background(),
		store:        store,
		log:          log,
		hook:         hook,
		clock:        clock,
		rec:          rec,
		users:        NewUserService(store, log),
		catalog:      NewCatalogService(store, log),
		packages:     NewPackageService(store, store, clock, log),
		appointments: NewAppointmentService(store, store, clock, log, rec),
		feedback:     NewFeedbackService(store, NewServiceRefResolver(store, log), clock, log, rec),
		inventory:    NewInventoryService(store, DefaultLowStockThreshold, clock, log, rec),
	}
}

var (
	adminActor = Actor{UserID: uuid.New(), Role: models.RoleAdmin}
)

func customerActor() Actor {
	return Actor{UserID: uuid.New(), Role: models.RoleCustomer}
}

func (e *testEnv) addService(t *testing.T, code, category, sub string) *models.Service {
	t.Helper()
	svc := &models.Service{
		ServiceCode: code,
		Category:    category,
		SubCategory: sub,
		Duration:    "1h",
		Price:       50,
		Available:   true,
	}
	require.NoError(t, e.store.CreateService(e.ctx, svc))
	return svc
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }
