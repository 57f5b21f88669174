package retailers

import (
	"net/url"
	"strings"
)

// slugRetailer links to a lowercase, hyphenated path (myntra.com/blue-jeans)
type slugRetailer struct {
	name string
	base string
}

func (s slugRetailer) Name() string { return s.name }

func (s slugRetailer) SearchURL(productName string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(productName)), " ", "-")
	return s.base + url.PathEscape(slug)
}

// queryRetailer links to a search page with the product in a query parameter
type queryRetailer struct {
	name  string
	base  string
	param string
}

func (q queryRetailer) Name() string { return q.name }

func (q queryRetailer) SearchURL(productName string) string {
	return q.base + "?" + q.param + "=" + url.QueryEscape(strings.TrimSpace(productName))
}

func NewMyntra() Retailer {
	return slugRetailer{name: "Myntra", base: "https://www.myntra.com/"}
}

func NewFlipkart() Retailer {
	return queryRetailer{name: "Flipkart", base: "https://www.flipkart.com/search", param: "q"}
}

func NewAmazonIndia() Retailer {
	return queryRetailer{name: "Amazon India", base: "https://www.amazon.in/s", param: "k"}
}

func NewAjio() Retailer {
	return queryRetailer{name: "Ajio", base: "https://www.ajio.com/search/", param: "text"}
}

func NewLifestyle() Retailer {
	return queryRetailer{name: "Lifestyle", base: "https://www.lifestylestores.com/in/en/search/", param: "text"}
}

func NewWestside() Retailer {
	return queryRetailer{name: "Westside", base: "https://www.westside.com/search", param: "q"}
}
