package models

// Option is a value/label pair rendered as a select choice in tenant UIs.
// Locations, property types and features all come back in this shape.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions is the aggregate option set a tenant search form needs.
// Managed lists (curated by the tenant) win over provider-sourced ones.
type FilterOptions struct {
	Locations     []Option `json:"locations"`
	PropertyTypes []Option `json:"property_types"`
	Features      []Option `json:"features"`
	ListingTypes  []Option `json:"listing_types"`
	SortOptions   []Option `json:"sort_options"`
	Bedrooms      []Option `json:"bedrooms"`
	Bathrooms     []Option `json:"bathrooms"`
	PricesSale    []int64  `json:"prices_sale"`
	PricesRental  []int64  `json:"prices_rental"`
	PerPage       []int    `json:"per_page"`
	DefaultSort   string   `json:"default_sort"`
	ShowFeatures  bool     `json:"show_features"`
	ShowLocations bool     `json:"show_locations"`
}
