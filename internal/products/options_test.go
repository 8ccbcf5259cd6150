package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"steeldesk/pkg/models"
)

func TestBuildOptionsDistinctSorted(t *testing.T) {
	opts := BuildOptions([]models.Product{
		{Category: "Rod", Type: "MS", Warehouse: "Main", SupplierName: "Chittagong Steel"},
		{Category: "Angle", Type: "MS", Warehouse: "Main", SupplierName: "Dhaka Traders"},
		{Category: "Rod", Type: "GI", Warehouse: "", SupplierName: "Chittagong Steel"},
	})

	assert.Equal(t, []string{"Angle", "Rod"}, opts.Categories)
	assert.Equal(t, []string{"GI", "MS"}, opts.Types)
	assert.Equal(t, []string{"Main"}, opts.Warehouses, "empty values are skipped")
	assert.Equal(t, []string{"Chittagong Steel", "Dhaka Traders"}, opts.Suppliers)
}

func TestBuildOptionsEmptyListing(t *testing.T) {
	opts := BuildOptions(nil)
	assert.Empty(t, opts.Categories)
	assert.Empty(t, opts.Types)
	assert.Empty(t, opts.Warehouses)
	assert.Empty(t, opts.Suppliers)
}

func TestMergeKeepsExistingValues(t *testing.T) {
	first := BuildOptions([]models.Product{
		{Category: "Rod", Warehouse: "Main"},
	})
	merged := first.Merge([]models.Product{
		{Category: "Sheet", Warehouse: "Yard"},
	})

	assert.Equal(t, []string{"Rod", "Sheet"}, merged.Categories)
	assert.Equal(t, []string{"Main", "Yard"}, merged.Warehouses)

	// The original set is unchanged; options belong to the session that
	// built them.
	assert.Equal(t, []string{"Rod"}, first.Categories)
}

func TestMergeDeduplicates(t *testing.T) {
	first := BuildOptions([]models.Product{{Category: "Rod"}})
	merged := first.Merge([]models.Product{{Category: "Rod"}, {Category: "Rod"}})
	assert.Equal(t, []string{"Rod"}, merged.Categories)
}
