package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/raushankrgupta/closetly/config"
	"github.com/raushankrgupta/closetly/pricing/learned"
)

func main() {
	config.LoadConfig()

	out := flag.String("out", config.PriceModelPath, "path of the model artifact to write")
	samples := flag.Int("samples", 2000, "number of synthetic rows")
	seed := flag.Uint64("seed", 42, "random seed")
	flag.Parse()

	model, err := learned.Train(learned.TrainOptions{Samples: *samples, Seed: *seed})
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	fmt.Printf("%-20s %10s %10s %8s %8s\n", "model", "MAE", "RMSE", "R2", "MAPE")
	for _, name := range model.CandidateNames() {
		m := model.Candidates[name]
		fmt.Printf("%-20s %10.2f %10.2f %8.3f %7.2f%%\n", name, m.MAE, m.RMSE, m.R2, m.MAPE)
	}
	fmt.Printf("\nBest model: %s\n", model.Name)

	if err := model.Save(*out); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	fmt.Printf("Saved to %s\n", *out)
}
