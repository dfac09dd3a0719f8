package manager

import (
	"context"
	"fmt"

	"inmofeed/internal/models"
	"inmofeed/internal/tenant"
)

var defaultSortOptions = []models.Option{
	{Value: "price_asc", Label: "Price (low to high)"},
	{Value: "price_desc", Label: "Price (high to low)"},
	{Value: "newest", Label: "Newest first"},
	{Value: "updated", Label: "Recently updated"},
}

var defaultPricesSale = []int64{
	5000000, 10000000, 15000000, 20000000, 30000000,
	50000000, 75000000, 100000000, 200000000, 500000000,
}

var defaultPricesRental = []int64{
	50000, 75000, 100000, 150000, 200000, 300000, 500000, 1000000,
}

var perPageChoices = []int{12, 24, 48, 96}

// FilterOptions assembles everything a search form needs for the tenant.
// Managed lists from the tenant config win over provider-sourced ones;
// the provider is only consulted when a list is not curated. A disabled
// feed still yields the static choices so forms render.
func (m *Manager) FilterOptions(ctx context.Context, params map[string]interface{}) *models.FilterOptions {
	options := &models.FilterOptions{
		ListingTypes: []models.Option{
			{Value: models.ListingSale, Label: "For Sale"},
			{Value: models.ListingRental, Label: "For Rent"},
		},
		SortOptions:  defaultSortOptions,
		DefaultSort:  m.tenant.Search.Sort,
		Bedrooms:     countOptions(maxOr(m.tenant.Search.MaxBedrooms, 5)),
		Bathrooms:    countOptions(maxOr(m.tenant.Search.MaxBathrooms, 4)),
		PricesSale:   pricesOr(m.tenant.Search.PricesSale, defaultPricesSale),
		PricesRental: pricesOr(m.tenant.Search.PricesRental, defaultPricesRental),
		PerPage:      perPageChoices,
	}

	options.PropertyTypes = managedOptions(m.tenant.ManagedPropertyTypes)
	if len(options.PropertyTypes) == 0 && m.enabled {
		options.PropertyTypes = m.PropertyTypes(ctx, params)
	}

	options.Features = managedOptions(m.tenant.ManagedFeatures)
	options.ShowFeatures = len(options.Features) > 0

	if m.enabled {
		options.Locations = m.Locations(ctx, params)
	} else {
		options.Locations = []models.Option{}
	}
	options.ShowLocations = len(options.Locations) > 0

	return options
}

func managedOptions(managed []tenant.ManagedOption) []models.Option {
	options := make([]models.Option, 0, len(managed))
	for _, opt := range managed {
		if opt.Key == "" {
			continue
		}
		label := opt.Label
		if label == "" {
			label = opt.Key
		}
		options = append(options, models.Option{Value: opt.Key, Label: label})
	}
	return options
}

// countOptions builds 1..max choices; the last one is open-ended.
func countOptions(max int) []models.Option {
	options := make([]models.Option, 0, max)
	for i := 1; i <= max; i++ {
		label := fmt.Sprintf("%d", i)
		if i == max {
			label += "+"
		}
		options = append(options, models.Option{Value: fmt.Sprintf("%d", i), Label: label})
	}
	return options
}

func maxOr(value, def int) int {
	if value > 0 {
		return value
	}
	return def
}

func pricesOr(values, def []int64) []int64 {
	if len(values) > 0 {
		return values
	}
	return def
}
