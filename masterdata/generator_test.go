package masterdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synthgl/genengine/masterdata"
)

func TestBuildProducesRequestedCounts(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pool := masterdata.Build(42, masterdata.Counts{
		Vendors: 10, Customers: 10, Materials: 5, Assets: 3, Employees: 8,
	}, start, end)

	assert.Len(t, pool.Vendors, 10)
	assert.Len(t, pool.Customers, 10)
	assert.Len(t, pool.Materials, 5)
	assert.Len(t, pool.Assets, 3)
	assert.Len(t, pool.Employees, 8)
}

func TestBuildDeterministic(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	a := masterdata.Build(7, masterdata.Counts{Vendors: 5}, start, end)
	b := masterdata.Build(7, masterdata.Counts{Vendors: 5}, start, end)

	for i := range a.Vendors {
		assert.Equal(t, a.Vendors[i].ID, b.Vendors[i].ID)
		assert.Equal(t, a.Vendors[i].Name, b.Vendors[i].Name)
	}
}

func TestRegistryActiveVendorAt(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	pool := masterdata.Build(1, masterdata.Counts{Vendors: 20}, start, end)
	reg := &masterdata.Registry{Pool: pool}

	// Validity starts are spread over the first quarter of the horizon
	// (days 0-91 here), so every vendor has started by day 91.
	_, ok := reg.ActiveVendorAt(start.AddDate(0, 0, 91), 0)
	assert.True(t, ok)
}
