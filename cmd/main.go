// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"namecheck/internal/address"
	"namecheck/internal/api"
	"namecheck/internal/batch"
	"namecheck/internal/classify"
	"namecheck/internal/config"
	"namecheck/internal/dictionary"
	"namecheck/internal/observability"
	"namecheck/internal/version"
	namevalidator "namecheck/internal/validators/name"

	"namecheck/internal/formatters"
	_ "namecheck/internal/formatters/csvfmt"
	_ "namecheck/internal/formatters/json"
	_ "namecheck/internal/formatters/text"
)

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = config.LoadConfig("")
	}
	return cfg
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func main() {
	// Credentials for the address service may live in a local .env file.
	_ = godotenv.Load()

	inputFile := flag.String("file", "", "Path to a CSV or XLSX file of records to classify")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	singleName := flag.String("name", "", "Classify a single name and exit")
	uniqueID := flag.String("id", "", "Unique id for the single name (default: row_1)")
	genderHint := flag.String("gender", "", "Gender hint for the single name: M or F")
	partyTypeHint := flag.String("party-type", "", "Party type hint: O (organization) or I (individual)")
	parseInd := flag.String("parse-ind", "", "Parse indicator: Y to parse the name, N to use it as-is")
	outputFormat := flag.String("format", "", "Output format: text, json, csv (default: text)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	dictPath := flag.String("dict", "", "Directory containing name dictionary CSV files")
	strictMode := flag.Bool("strict", false, "Reject names when dictionaries are unavailable instead of failing open")
	workers := flag.Int("workers", 0, "Number of concurrent classification workers (default: 4)")
	maxRecords := flag.Int("max-records", 0, "Maximum number of records to read from the input file")
	serve := flag.Bool("serve", false, "Run the HTTP API server")
	port := flag.Int("port", 0, "API server port (default: 8080)")
	street := flag.String("street", "", "Street address to standardize (requires USPS credentials)")
	city := flag.String("city", "", "City for address standardization")
	state := flag.String("state", "", "State for address standardization")
	zip := flag.String("zip", "", "ZIP code for address standardization")
	verbose := flag.Bool("verbose", false, "Display detailed information for each record")
	debug := flag.Bool("debug", false, "Enable debug logging of pipeline operations")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	cfg := loadConfiguration(*configFile)

	// Flags override file configuration.
	if *outputFormat == "" {
		*outputFormat = cfg.Defaults.Format
	}
	if *dictPath == "" {
		*dictPath = cfg.Dictionary.Path
	}
	if *workers <= 0 {
		*workers = cfg.Batch.Workers
	}
	if *maxRecords <= 0 {
		*maxRecords = cfg.Batch.MaxRecords
	}
	if *port <= 0 {
		*port = cfg.Server.Port
	}
	if cfg.Defaults.Verbose {
		*verbose = true
	}
	if cfg.Defaults.Debug {
		*debug = true
	}
	if cfg.Defaults.NoColor {
		*noColor = true
	}

	level := observability.ObservabilityOff
	if *verbose {
		level = observability.ObservabilityMetrics
	}
	if *debug {
		level = observability.ObservabilityDebug
	}
	observer := observability.NewStandardObserver(level, os.Stderr)

	mode := dictionary.ModePermissive
	if *strictMode || cfg.Dictionary.Mode == "strict" {
		mode = dictionary.ModeStrict
	}
	store := dictionary.NewStore(mode, observer)
	if *dictPath != "" {
		if !store.LoadDir(*dictPath) {
			fmt.Fprintf(os.Stderr, "Warning: no dictionaries loaded from %s\n", *dictPath)
		}
	}

	var enricher namevalidator.Enricher
	if store.Loaded() {
		enricher = namevalidator.NewDictionaryEnricher(store)
	}
	validator := namevalidator.NewValidator(store, enricher, observer)
	classifier := classify.NewClassifier(store, validator, observer)
	coordinator := batch.NewCoordinator(classifier, *workers, observer)

	switch {
	case *serve:
		server := api.NewServer(coordinator, store, *maxRecords, observer)
		fmt.Fprintf(os.Stderr, "namecheck %s listening on :%d\n", version.Version, *port)
		if err := server.Run(*port); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *street != "" || *zip != "":
		runAddress(cfg, observer, *street, *city, *state, *zip)

	case *singleName != "" || *inputFile != "":
		records, err := collectRecords(*singleName, *uniqueID, *genderHint, *partyTypeHint, *parseInd, *inputFile, *maxRecords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		summary := coordinator.Process(context.Background(), records)
		if *inputFile != "" {
			summary.FilesProcessed = 1
		}
		if err := writeOutput(summary, *outputFormat, *outputFile, *verbose, *noColor); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if summary.SuccessfulCount < summary.ProcessedCount {
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "Error: provide -name, -file, -serve, or address flags")
		flag.Usage()
		os.Exit(2)
	}
}

// collectRecords builds the input set from either a single -name invocation
// or an input file.
func collectRecords(name, id, gender, partyType, parseInd, file string, maxRecords int) ([]classify.Record, error) {
	if name != "" {
		if id == "" {
			id = "row_1"
		}
		return []classify.Record{{
			UniqueID:       id,
			Name:           name,
			GenderHint:     gender,
			PartyTypeHint:  partyType,
			ParseIndicator: parseInd,
		}}, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	return batch.ReadRecords(f, file, maxRecords)
}

// writeOutput renders a summary with the selected formatter to stdout or a
// file. Colors are disabled automatically for files and pipes.
func writeOutput(summary batch.Summary, format, outputFile string, verbose, noColor bool) error {
	formatter, exists := formatters.Get(strings.ToLower(format))
	if !exists {
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(formatters.List(), ", "))
	}

	if outputFile != "" || !isTerminal(os.Stdout) {
		noColor = true
	}

	output, err := formatter.Format(summary, formatters.FormatterOptions{
		Verbose: verbose,
		NoColor: noColor,
	})
	if err != nil {
		return err
	}

	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(output), 0o644)
	}
	fmt.Println(output)
	return nil
}

// runAddress calls the USPS address standardization service. It is a sibling
// utility; name classification never depends on it.
func runAddress(cfg *config.Config, observer *observability.StandardObserver, street, city, state, zip string) {
	clientID := os.Getenv("USPS_CLIENT_ID")
	clientSecret := os.Getenv("USPS_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: USPS_CLIENT_ID and USPS_CLIENT_SECRET must be set (flags or .env)")
		os.Exit(1)
	}

	client := address.NewClient(address.Options{
		BaseURL:           cfg.Address.BaseURL,
		TokenURL:          cfg.Address.TokenURL,
		ClientID:          clientID,
		ClientSecret:      clientSecret,
		RequestsPerSecond: cfg.Address.RequestsPerSecond,
		Timeout:           time.Duration(cfg.Address.TimeoutSeconds) * time.Second,
	}, observer)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := client.ValidateAddress(ctx, street, city, state, zip)
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))
	if !result.Success {
		os.Exit(1)
	}
}
