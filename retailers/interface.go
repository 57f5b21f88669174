package retailers

// Retailer defines the interface for all supported storefronts
type Retailer interface {
	// Name returns the display name used in pricing tables
	Name() string
	// SearchURL builds a storefront search link for a free-text product name
	SearchURL(productName string) string
}
