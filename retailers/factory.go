package retailers

import (
	"net/url"
	"strings"
)

// registry of storefronts with a known search page
var registry = []Retailer{
	NewMyntra(),
	NewFlipkart(),
	NewAmazonIndia(),
	NewAjio(),
	NewLifestyle(),
	NewWestside(),
}

// GetRetailer returns the registered retailer for a name (case-insensitive)
func GetRetailer(name string) (Retailer, bool) {
	for _, r := range registry {
		if strings.EqualFold(r.Name(), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return nil, false
}

// SearchURL returns the retailer search link for a product, falling back to a
// web search for retailers without a known storefront
func SearchURL(retailer, productName string) string {
	if r, ok := GetRetailer(retailer); ok {
		return r.SearchURL(productName)
	}
	return "https://www.google.com/search?q=" + url.QueryEscape(strings.TrimSpace(productName+" "+retailer))
}
