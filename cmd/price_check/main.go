package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/raushankrgupta/closetly/models"
	"github.com/raushankrgupta/closetly/pricing"
)

func main() {
	items := []models.ItemDescriptor{
		{Brand: "Van Heusen", Category: "Shirt", Retailer: "Myntra"},
		{Brand: "Levi's", Category: "Jeans", Retailer: "Flipkart", DiscountPercent: 25},
		{Brand: "Zara", Category: "Dress", Retailer: "Ajio"},
		{Brand: "Raymond", Category: "Suits", Retailer: "Shoppers Stop"},
		{Brand: "Unknown Label", Category: "Hoodie"},
	}

	est := pricing.NewEstimator(nil, 0)
	for _, item := range items {
		fmt.Printf("Item: %s %s at %s\n", item.Brand, item.Category, item.Retailer)
		estimate, err := est.Estimate(item)
		if err != nil {
			log.Printf("Failed to estimate: %v\n", err)
			continue
		}
		b, _ := json.MarshalIndent(estimate, "", "  ")
		fmt.Printf("Estimate: %s\n", string(b))
		fmt.Println("--------------------------------------------------")
	}

	cmp := est.Compare("slim fit shirt", "Allen Solly", "Shirt")
	b, _ := json.MarshalIndent(cmp, "", "  ")
	fmt.Printf("Comparison: %s\n", string(b))
}
