package pricing

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/raushankrgupta/closetly/models"
)

const (
	Currency        = "INR"
	DefaultRetailer = "Myntra"
	DefaultMarkup   = 1.3

	JitterMin = 0.95
	JitterMax = 1.05
	// price range band, ±15% of the current price
	RangeLow  = 0.85
	RangeHigh = 1.15
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidDiscount = errors.New("discount_percent must be in [0, 100)")
)

// Rand is the random source behind sampling. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// GlobalRand is safe for concurrent use
var GlobalRand Rand = globalRand{}

// Predictor produces a price estimate for an item
type Predictor interface {
	Estimate(item models.ItemDescriptor) (models.PriceEstimate, error)
}

// Estimator samples prices inside brand ranges and applies table multipliers.
// Repeated calls with the same item return different prices.
type Estimator struct {
	Tables        *Tables
	Rand          Rand
	DefaultMarkup float64
}

// NewEstimator builds an estimator over the default tables. A nil source
// selects the process-global one.
func NewEstimator(r Rand, markup float64) *Estimator {
	if r == nil {
		r = GlobalRand
	}
	if markup <= 0 {
		markup = DefaultMarkup
	}
	return &Estimator{Tables: DefaultTables, Rand: r, DefaultMarkup: markup}
}

// Validate checks the required fields of an item and fills optional defaults
func Validate(item *models.ItemDescriptor) error {
	item.Brand = strings.TrimSpace(item.Brand)
	item.Category = strings.TrimSpace(item.Category)
	item.Retailer = strings.TrimSpace(item.Retailer)
	if item.Brand == "" {
		return fmt.Errorf("%w: brand", ErrMissingField)
	}
	if item.Category == "" {
		return fmt.Errorf("%w: category", ErrMissingField)
	}
	if item.Retailer == "" {
		item.Retailer = DefaultRetailer
	}
	if item.DiscountPercent < 0 || item.DiscountPercent >= 100 || math.IsNaN(item.DiscountPercent) {
		return ErrInvalidDiscount
	}
	return nil
}

// Estimate draws one price for the item
func (e *Estimator) Estimate(item models.ItemDescriptor) (models.PriceEstimate, error) {
	if err := Validate(&item); err != nil {
		return models.PriceEstimate{}, err
	}

	br := e.Tables.BrandRange(item.Brand)
	base := e.uniform(br.Min, br.Max)
	price := base *
		e.Tables.CategoryMultiplier(item.Category) *
		e.Tables.RetailerMultiplier(item.Retailer) *
		e.uniform(JitterMin, JitterMax)

	return BuildEstimate(price, item.DiscountPercent, e.DefaultMarkup), nil
}

func (e *Estimator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*e.Rand.Float64()
}

// BuildEstimate derives the original price and the ±15% band from a current price
func BuildEstimate(price, discountPercent, markup float64) models.PriceEstimate {
	var original float64
	if discountPercent > 0 {
		original = price / (1 - discountPercent/100)
	} else {
		original = price * markup
	}
	current := Round2(price)
	return models.PriceEstimate{
		CurrentPrice:  current,
		OriginalPrice: Round2(original),
		PriceRange: models.PriceRange{
			Min: Round2(current * RangeLow),
			Max: Round2(current * RangeHigh),
		},
		DiscountPercent: discountPercent,
		Currency:        Currency,
	}
}

// Round2 rounds to two decimal places
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
