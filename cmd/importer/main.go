package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"sowin-pos/internal/backend"
	"sowin-pos/internal/config"
	"sowin-pos/internal/importer"
	"sowin-pos/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to product CSV sheet")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	api := backend.New(cfg.BackendURL, backend.Options{
		Timeout:     cfg.BackendTimeout,
		MaxFailures: cfg.BreakerMaxFailures,
	})
	imp := importer.NewCSVImporter(f, product.NewREST(api, nil))

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d products: %v", res.Imported, err)
	}

	fmt.Printf("Imported %d products (%d skipped) into %s in %s\n", res.Imported, res.Skipped, cfg.BackendURL, time.Since(start).Truncate(time.Millisecond))
}
