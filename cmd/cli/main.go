package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tariff-engine/internal/billing"
	"tariff-engine/internal/config"
	"tariff-engine/internal/meterdata"
	"tariff-engine/internal/tariff"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "calculate":
		cmdCalculate(os.Args[2:])
	case "validate":
		cmdValidate(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calculate --tariff examples/tariffs/tou.json --data examples/load.csv [--out results/cost.json]")
	fmt.Println("  cli calculate --config examples/config.yaml")
	fmt.Println("  cli validate --tariff examples/tariffs/tou.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - calculate evaluates one tariff against one meter data CSV and prints itemized costs")
	fmt.Println("  - --resolution timestep additionally writes a per-row ledger CSV via --ledger")
	fmt.Println("  - validate checks a tariff document and prints its derived traits and cost buckets")
}

func cmdCalculate(args []string) {
	fs := flag.NewFlagSet("calculate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (alternative to --tariff/--data)")
	tariffPath := fs.String("tariff", "", "Path to tariff document (JSON or YAML)")
	dataPath := fs.String("data", "", "Path to meter data CSV")
	outPath := fs.String("out", "", "Optional path for the itemized cost JSON")
	ledgerPath := fs.String("ledger", "", "Optional path for the per-timestep ledger CSV")
	resolution := fs.String("resolution", "", "Output resolution: bill (default) or timestep")
	startStr := fs.String("start", "", "Optional inclusive start bound (RFC3339 or YYYY-MM-DD)")
	endStr := fs.String("end", "", "Optional inclusive end bound (RFC3339 or YYYY-MM-DD)")
	_ = fs.Parse(args)

	var start, end time.Time
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		*tariffPath = cfg.TariffFile
		*dataPath = cfg.DataFile
		if *resolution == "" {
			*resolution = cfg.Resolution
		}
		if *outPath == "" {
			*outPath = cfg.Output.CostPath
		}
		if *ledgerPath == "" {
			*ledgerPath = cfg.Output.LedgerPath
		}
		start, end, err = cfg.ParseWindow()
		if err != nil {
			panic(err)
		}
	}
	if *tariffPath == "" || *dataPath == "" {
		fmt.Println("--tariff and --data (or --config) are required")
		os.Exit(2)
	}
	if *startStr != "" {
		start = mustParseTime(*startStr)
	}
	if *endStr != "" {
		end = mustParseTime(*endStr)
	}

	trf, err := tariff.Load(*tariffPath)
	if err != nil {
		panic(err)
	}
	series, err := meterdata.LoadCSV(*dataPath)
	if err != nil {
		panic(err)
	}

	engine := billing.New()
	result, err := engine.Apply(trf, series, billing.Options{
		Start:      start,
		End:        end,
		Resolution: billing.Resolution(*resolution),
	})
	if err != nil {
		panic(err)
	}

	printCost(result.Cost, trf.Currency)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			panic(err)
		}
		raw, err := json.MarshalIndent(result.Cost, "", "  ")
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(*outPath, raw, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote cost JSON to %s\n", *outPath)
	}
	if *ledgerPath != "" && len(result.Ledger) > 0 {
		if err := os.MkdirAll(filepath.Dir(*ledgerPath), 0o755); err != nil {
			panic(err)
		}
		if err := billing.WriteLedgerCSV(*ledgerPath, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote %d ledger rows to %s\n", len(result.Ledger), *ledgerPath)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	tariffPath := fs.String("tariff", "", "Path to tariff document (JSON or YAML)")
	_ = fs.Parse(args)

	if *tariffPath == "" {
		fmt.Println("--tariff is required")
		os.Exit(2)
	}
	trf, err := tariff.Load(*tariffPath)
	if err != nil {
		fmt.Printf("INVALID: %v\n", err)
		os.Exit(1)
	}

	traits := make([]string, 0)
	for trait := range trf.Traits() {
		traits = append(traits, string(trait))
	}
	sort.Strings(traits)

	fmt.Printf("OK: %s (%d charges)\n", *tariffPath, len(trf.Charges))
	fmt.Printf("billing_period=%s demand_window=%s traits=%v\n", trf.BillingPeriod, trf.DemandWindow, traits)
	for i := range trf.Charges {
		key := billing.KeyFor(&trf.Charges[i])
		fmt.Printf("  bucket: %s\n", key.DisplayName(trf.Service))
	}
}

func printCost(cost billing.Cost, currency string) {
	if currency == "" {
		currency = "$"
	}
	fmt.Printf("%-40s %12s\n", "item", "cost")
	for _, item := range cost.Items {
		fmt.Printf("%-40s %12.4f\n", item.Name, item.Cost)
	}
	fmt.Printf("%-40s %12.4f %s\n", "total", cost.Cost, currency)
}

func mustParseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC()
		}
	}
	panic(fmt.Errorf("unrecognised time %q", s))
}
