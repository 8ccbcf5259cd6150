package products

import (
	"sort"

	"steeldesk/pkg/models"
)

// Options holds the per-session suggestion lists for the inventory form:
// distinct categories, types, warehouses and supplier names seen in server
// data. They are owned by the running command, not accumulated in any
// process-global list.
type Options struct {
	Categories []string
	Types      []string
	Warehouses []string
	Suppliers  []string
}

// BuildOptions derives the suggestion lists from a server product listing.
func BuildOptions(prods []models.Product) Options {
	categories := map[string]struct{}{}
	types := map[string]struct{}{}
	warehouses := map[string]struct{}{}
	suppliers := map[string]struct{}{}

	for _, p := range prods {
		add(categories, p.Category)
		add(types, p.Type)
		add(warehouses, p.Warehouse)
		add(suppliers, p.SupplierName)
	}

	return Options{
		Categories: sorted(categories),
		Types:      sorted(types),
		Warehouses: sorted(warehouses),
		Suppliers:  sorted(suppliers),
	}
}

// Merge folds more server data into the session's option sets.
func (o Options) Merge(prods []models.Product) Options {
	merged := BuildOptions(prods)
	merged.Categories = union(o.Categories, merged.Categories)
	merged.Types = union(o.Types, merged.Types)
	merged.Warehouses = union(o.Warehouses, merged.Warehouses)
	merged.Suppliers = union(o.Suppliers, merged.Suppliers)
	return merged
}

func add(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func union(a, b []string) []string {
	set := map[string]struct{}{}
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		set[v] = struct{}{}
	}
	return sorted(set)
}
