package learned

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
)

// DefaultRating is used when an item carries no rating
const DefaultRating = 4.0

// Metrics are holdout scores of a fitted regressor
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
	MAPE float64 `json:"mape"`
}

// Model is the trained price regressor together with its encoders
type Model struct {
	Name            string             `json:"name"`
	Encoder         *Encoder           `json:"encoder"`
	BrandPopularity map[string]float64 `json:"brand_popularity"`
	Ensemble        *Ensemble          `json:"ensemble"`
	Metrics         Metrics            `json:"metrics"`
	Candidates      map[string]Metrics `json:"candidates,omitempty"`
	TrainedAt       time.Time          `json:"trained_at"`

	// DefaultMarkup applies when an item carries no discount
	DefaultMarkup float64 `json:"-"`
}

// Features builds [brand, category, material, retailer, season, rating,
// discount_percent, brand_popularity] for an item
func (m *Model) Features(item models.ItemDescriptor) []float64 {
	rating := DefaultRating
	if item.Rating != nil {
		rating = *item.Rating
	}
	return []float64{
		float64(m.Encoder.Encode("brand", item.Brand)),
		float64(m.Encoder.Encode("category", item.Category)),
		float64(m.Encoder.Encode("material", item.Material)),
		float64(m.Encoder.Encode("retailer", item.Retailer)),
		float64(m.Encoder.Encode("season", item.Season)),
		rating,
		item.DiscountPercent,
		m.BrandPopularity[item.Brand],
	}
}

// Estimate predicts the current price of an item and synthesizes the
// same ±15% band and original price as the sampling estimator
func (m *Model) Estimate(item models.ItemDescriptor) (models.PriceEstimate, error) {
	if err := pricing.Validate(&item); err != nil {
		return models.PriceEstimate{}, err
	}
	price := math.Max(0, m.Ensemble.Predict(m.Features(item)))
	markup := m.DefaultMarkup
	if markup <= 0 {
		markup = pricing.DefaultMarkup
	}
	return pricing.BuildEstimate(price, item.DiscountPercent, markup), nil
}

// Save writes the model artifact as JSON
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model artifact: %w", err)
	}
	return nil
}

// Load reads a model artifact
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	if m.Encoder == nil || m.Ensemble == nil {
		return nil, fmt.Errorf("model artifact %s is incomplete", path)
	}
	return &m, nil
}

// LoadOrTrain loads the artifact at path, running the training pipeline
// once when it does not exist yet
func LoadOrTrain(path string, opts TrainOptions) (*Model, error) {
	m, err := Load(path)
	if err == nil {
		log.Printf("Loaded price model %q from %s (MAE %.2f)", m.Name, path, m.Metrics.MAE)
		return m, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	log.Printf("Price model %s not found, training a new one", path)
	trained, err := Train(opts)
	if err != nil {
		return nil, err
	}
	if err := trained.Save(path); err != nil {
		return nil, err
	}
	return Load(path)
}
