package models

// ItemDescriptor describes a clothing item to price
type ItemDescriptor struct {
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	Retailer        string   `json:"retailer,omitempty"`
	Material        string   `json:"material,omitempty"`
	Season          string   `json:"season,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	DiscountPercent float64  `json:"discount_percent"`
}

// PriceRange is a min/max pair in the estimate currency
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceEstimate is the result of a single price prediction
type PriceEstimate struct {
	CurrentPrice    float64    `json:"current_price"`
	OriginalPrice   float64    `json:"original_price"`
	PriceRange      PriceRange `json:"price_range"`
	DiscountPercent float64    `json:"discount_percent"`
	Currency        string     `json:"currency"`
}

// RetailerQuote is one row of a retailer comparison
type RetailerQuote struct {
	Retailer       string  `json:"retailer"`
	PredictedPrice float64 `json:"predicted_price"`
	Discount       int     `json:"discount"`
	SearchURL      string  `json:"search_url"`
}

// RetailerComparison lists quotes sorted ascending by predicted price
type RetailerComparison struct {
	Product      string          `json:"product"`
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Comparisons  []RetailerQuote `json:"comparisons"`
	BestDeal     RetailerQuote   `json:"best_deal"`
	WorstDeal    RetailerQuote   `json:"worst_deal"`
	Savings      float64         `json:"savings"`
	AveragePrice float64         `json:"average_price"`
	Currency     string          `json:"currency"`
}

// BatchItemResult is the outcome of one item inside a batch prediction
type BatchItemResult struct {
	Index      int             `json:"index"`
	Item       *ItemDescriptor `json:"item,omitempty"`
	Success    bool            `json:"success"`
	Prediction *PriceEstimate  `json:"prediction,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// BatchResult aggregates per-item results
type BatchResult struct {
	TotalItems  int               `json:"total_items"`
	Successful  int               `json:"successful"`
	Failed      int               `json:"failed"`
	Predictions []BatchItemResult `json:"predictions"`
}
