package pricing

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raushankrgupta/closetly/models"
)

var ErrEmptyBatch = errors.New("no items provided")

// EstimateBatch decodes and prices each raw item on its own. A malformed or
// invalid item is reported inline and never aborts its siblings.
func EstimateBatch(p Predictor, items []json.RawMessage) (models.BatchResult, error) {
	if len(items) == 0 {
		return models.BatchResult{}, ErrEmptyBatch
	}

	result := models.BatchResult{
		TotalItems:  len(items),
		Predictions: make([]models.BatchItemResult, 0, len(items)),
	}
	for i, raw := range items {
		var item models.ItemDescriptor
		if err := json.Unmarshal(raw, &item); err != nil {
			record(&result, models.BatchItemResult{Index: i, Error: fmt.Sprintf("invalid item: %v", err)})
			continue
		}
		record(&result, estimateOne(p, i, item))
	}
	return result, nil
}

// EstimateMany is EstimateBatch for already decoded items
func EstimateMany(p Predictor, items []models.ItemDescriptor) (models.BatchResult, error) {
	if len(items) == 0 {
		return models.BatchResult{}, ErrEmptyBatch
	}
	result := models.BatchResult{
		TotalItems:  len(items),
		Predictions: make([]models.BatchItemResult, 0, len(items)),
	}
	for i, item := range items {
		record(&result, estimateOne(p, i, item))
	}
	return result, nil
}

func estimateOne(p Predictor, index int, item models.ItemDescriptor) (res models.BatchItemResult) {
	res.Index = index
	res.Item = &item
	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Prediction = nil
			res.Error = fmt.Sprintf("prediction failed: %v", r)
		}
	}()

	estimate, err := p.Estimate(item)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Success = true
	res.Prediction = &estimate
	return res
}

func record(b *models.BatchResult, r models.BatchItemResult) {
	if r.Success {
		b.Successful++
	} else {
		b.Failed++
	}
	b.Predictions = append(b.Predictions, r)
}
