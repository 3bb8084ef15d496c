package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nitishagar/bharatdcim/internal/data"
	"github.com/nitishagar/bharatdcim/internal/logging"
	"github.com/nitishagar/bharatdcim/internal/tariff"
)

// sync-catalog pulls a published tariff catalog and merges it over a local
// seed (the builtin catalog by default), so revised state orders can be
// picked up without a rebuild. The result is validated before it is saved.
func main() {
	var (
		source     = flag.String("source", os.Getenv("TARIFF_CATALOG_URL"), "Catalog URL or file to pull updates from")
		outputPath = flag.String("output", "", "Output file path (default: $TARIFF_CATALOG_FILE or ./data/tariffs.yaml)")
		seedFile   = flag.String("seed", "", "Existing catalog to merge into (default: the output file if present, else builtin)")
		timeout    = flag.Duration("timeout", 30*time.Second, "Timeout for fetching the source")
	)
	flag.Parse()

	log := logging.New("development", os.Getenv("LOG_LEVEL"))

	if *source == "" {
		log.Fatal().Msg("--source or TARIFF_CATALOG_URL is required")
	}
	if *outputPath == "" {
		*outputPath = data.GetDefaultCatalogPath()
		if *outputPath == "" || data.IsRemote(*outputPath) {
			*outputPath = "./data/tariffs.yaml"
		}
	}

	// Load the seed catalog
	seed := data.BuiltinCatalog()
	seedPath := *seedFile
	if seedPath == "" {
		if _, err := os.Stat(*outputPath); err == nil {
			seedPath = *outputPath
		}
	}
	if seedPath != "" {
		cat, err := data.LoadCatalog(seedPath)
		if err != nil {
			log.Fatal().Err(err).Str("seed", seedPath).Msg("failed to load seed catalog")
		}
		seed = cat
		fmt.Printf("Loaded %d schedules from seed %s\n", len(seed.Schedules), seedPath)
	} else {
		fmt.Printf("Using builtin catalog (%d schedules) as seed\n", len(seed.Schedules))
	}

	// Fetch updates
	var update *data.CatalogFile
	if data.IsRemote(*source) {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()
		client := data.NewCatalogClient(os.Getenv("TARIFF_CATALOG_TOKEN"), log)
		cat, err := client.Fetch(ctx, *source)
		if err != nil {
			log.Fatal().Err(err).Str("source", *source).Msg("failed to fetch catalog")
		}
		update = cat
	} else {
		cat, err := data.LoadCatalog(*source)
		if err != nil {
			log.Fatal().Err(err).Str("source", *source).Msg("failed to load catalog")
		}
		update = cat
	}
	fmt.Printf("Fetched %d schedules from %s\n", len(update.Schedules), *source)

	merged, replaced, added := data.MergeCatalogs(seed, update)
	for _, s := range replaced {
		fmt.Printf("  ✓ Updated: %s\n", s)
	}
	for _, s := range added {
		fmt.Printf("  + Added:   %s\n", s)
	}

	// Refuse to write a catalog the registry would reject
	reg, err := tariff.NewRegistry(merged.Schedules, merged.DefaultState)
	if err != nil {
		log.Fatal().Err(err).Msg("merged catalog is invalid; nothing written")
	}

	if err := data.SaveCatalog(merged, *outputPath); err != nil {
		log.Fatal().Err(err).Msg("failed to save catalog")
	}
	fmt.Printf("Saved %d schedules (default %s) to %s\n", reg.Len(), reg.Default().State, *outputPath)
}
