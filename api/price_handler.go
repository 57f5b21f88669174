package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
	"github.com/raushankrgupta/closetly/utils"
)

// priceError maps estimator validation failures onto 400
func priceError(err error) error {
	if errors.Is(err, pricing.ErrMissingField) || errors.Is(err, pricing.ErrInvalidDiscount) {
		return utils.ValidationError("%s", err.Error())
	}
	return err
}

// PredictHandler prices a single item
func (h *Handler) PredictHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Predict API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var item models.ItemDescriptor
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	if err := pricing.Validate(&item); err != nil {
		utils.RespondError(w, &logMessageBuilder, priceError(err))
		return
	}

	p, err := h.predictor()
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	estimate, err := p.Estimate(item)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, priceError(err))
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("%s %s at %s: %.2f", item.Brand, item.Category, item.Retailer, estimate.CurrentPrice))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"item":       item,
		"prediction": estimate,
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// CompareHandler quotes one product across the comparison retailers
func (h *Handler) CompareHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Compare API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var req struct {
		ProductName string `json:"product_name"`
		Brand       string `json:"brand"`
		Category    string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	cmp := h.Estimator.Compare(req.ProductName, req.Brand, req.Category)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Best deal for %q: %s at %.2f", cmp.Product, cmp.BestDeal.Retailer, cmp.BestDeal.PredictedPrice))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"product":       cmp.Product,
		"brand":         cmp.Brand,
		"category":      cmp.Category,
		"comparisons":   cmp.Comparisons,
		"best_deal":     cmp.BestDeal,
		"worst_deal":    cmp.WorstDeal,
		"savings":       cmp.Savings,
		"average_price": cmp.AveragePrice,
		"currency":      cmp.Currency,
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}

// BatchPredictHandler prices many items, reporting failures per item
func (h *Handler) BatchPredictHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Batch Predict API]")

	if !allowMethod(w, r, &logMessageBuilder, http.MethodPost) {
		return
	}

	var req struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, utils.ValidationError("Invalid request body"))
		return
	}

	p, err := h.predictor()
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}

	result, err := pricing.EstimateBatch(p, req.Items)
	if err != nil {
		if errors.Is(err, pricing.ErrEmptyBatch) {
			err = utils.ValidationError("No items provided")
		}
		utils.RespondError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Items: %d, successful: %d, failed: %d", result.TotalItems, result.Successful, result.Failed))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"total_items": result.TotalItems,
		"successful":  result.Successful,
		"failed":      result.Failed,
		"predictions": result.Predictions,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}

// AvailableOptionsHandler lists the known vocabularies
func (h *Handler) AvailableOptionsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, nil, http.MethodGet) {
		return
	}
	resp := map[string]interface{}{"success": true}
	for k, v := range h.Estimator.Tables.Options() {
		resp[k] = v
	}
	utils.RespondJSON(w, http.StatusOK, resp)
}
