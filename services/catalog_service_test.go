package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServiceInput() CreateServiceInput {
	return CreateServiceInput{
		Category:    "Hair",
		SubCategory: "Coloring",
		Description: "Full head color",
		Duration:    "1h 30m",
		Price:       80,
	}
}

func TestCatalogAssignsSequentialCodes(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.catalog.Create(env.ctx, validServiceInput())
	require.NoError(t, err)
	second, err := env.catalog.Create(env.ctx, validServiceInput())
	require.NoError(t, err)

	assert.Equal(t, "service1", first.ServiceCode)
	assert.Equal(t, "service2", second.ServiceCode)
	assert.True(t, first.Available)
}

func TestCatalogSkipsTakenCodes(t *testing.T) {
	env := newTestEnv(t)
	env.addService(t, "service2", "Nails", "Manicure")

	svc, err := env.catalog.Create(env.ctx, validServiceInput())
	require.NoError(t, err)
	assert.Equal(t, "service3", svc.ServiceCode)
}

func TestCatalogNormalizesSuppliedCode(t *testing.T) {
	env := newTestEnv(t)

	in := validServiceInput()
	in.ServiceCode = "42"
	svc, err := env.catalog.Create(env.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "service42", svc.ServiceCode)

	_, err = env.catalog.Create(env.ctx, in)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	in.ServiceCode = "abc"
	_, err = env.catalog.Create(env.ctx, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "service_ID")
}

func TestCatalogValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*CreateServiceInput)
		field  string
	}{
		{"bare number duration", func(in *CreateServiceInput) { in.Duration = "90" }, "duration"},
		{"zero duration", func(in *CreateServiceInput) { in.Duration = "0h 0m" }, "duration"},
		{"free service", func(in *CreateServiceInput) { in.Price = 0 }, "price"},
		{"missing category", func(in *CreateServiceInput) { in.Category = "" }, "category"},
		{"unknown availability", func(in *CreateServiceInput) { in.Available = "maybe" }, "available"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validServiceInput()
			tt.mutate(&in)
			_, err := env.catalog.Create(env.ctx, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestAvailabilityAcceptsBoolOrWords(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`"Yes"`, true},
		{`"no"`, false},
	}
	for _, tt := range tests {
		var a Availability
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &a), tt.raw)
		got, ok := a.Bool()
		assert.True(t, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}

	var a Availability
	assert.Error(t, json.Unmarshal([]byte(`12`), &a))
}

func TestCatalogUpdateKeepsCode(t *testing.T) {
	env := newTestEnv(t)
	svc, err := env.catalog.Create(env.ctx, validServiceInput())
	require.NoError(t, err)

	no := Availability("No")
	updated, err := env.catalog.Update(env.ctx, svc.ID, UpdateServiceInput{
		Price:     floatPtr(95),
		Available: &no,
	})
	require.NoError(t, err)
	assert.Equal(t, svc.ServiceCode, updated.ServiceCode)
	assert.Equal(t, 95.0, updated.Price)
	assert.False(t, updated.Available)

	require.NoError(t, env.catalog.Delete(env.ctx, svc.ID))
	var nf *NotFoundError
	require.ErrorAs(t, env.catalog.Delete(env.ctx, svc.ID), &nf)
	assert.Equal(t, "Service not found", nf.Error())
}
