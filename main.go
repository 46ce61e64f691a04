package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"offer-enrichment/config"
	"offer-enrichment/scraper/hellowork"
	"offer-enrichment/services"
	"offer-enrichment/storage"
	"offer-enrichment/utils"
)

// counter is implemented by the SQL sinks.
type counter interface {
	Count() (int, error)
}

func main() {
	input := flag.String("input", "", "raw offers CSV (overrides INPUT_PATH)")
	output := flag.String("output", "", "enriched offers CSV (overrides OUTPUT_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		utils.NewLogger().Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputPath = *output
	}

	logger := utils.NewLoggerWithLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	logger.Info("=== Offer Enrichment Pipeline starting ===")
	logger.Info("Config: input %s | output %s | cluster %s (K=%d) | labels %s | workers %d",
		cfg.InputPath, cfg.OutputPath, cfg.ClusterAlgorithm, cfg.ClusterCount, cfg.LabelPolicy, cfg.Workers)

	if cfg.ScrapeEnabled {
		if err := collect(ctx, cfg, logger); err != nil {
			return err
		}
	}

	raw, err := storage.ReadRawOffers(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	logger.Info("Loaded %d raw offers from %s", len(raw), cfg.InputPath)

	result, err := services.NewPipeline(cfg, logger).Run(raw)
	if err != nil {
		return err
	}

	sinks := []storage.OfferWriter{storage.NewEnrichedCSVWriter(cfg.OutputPath)}
	defer func() {
		for _, s := range sinks {
			_ = s.Close()
		}
	}()
	if cfg.PostgresEnabled {
		pg, err := storage.NewPostgresWriter(ctx, cfg.DSN(), cfg.MaxRetries, logger)
		if err != nil {
			logger.Error("Make sure PostgreSQL is running: docker compose up -d")
			return err
		}
		sinks = append(sinks, pg)
	}
	if cfg.SQLitePath != "" {
		lite, err := storage.NewSQLiteWriter(cfg.SQLitePath, logger)
		if err != nil {
			return err
		}
		sinks = append(sinks, lite)
	}

	for _, s := range sinks {
		if err := s.Write(result.Offers, result.Report.RunID); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if c, ok := s.(counter); ok {
			n, err := c.Count()
			if err != nil {
				return err
			}
			if n != len(result.Offers) {
				return fmt.Errorf("write output: stored %d rows, expected %d", n, len(result.Offers))
			}
		}
	}
	logger.Info("Enriched table written to %s", cfg.OutputPath)

	insights := services.NewInsightService(logger)
	insights.Print(insights.Generate(result.Offers, result.Report))

	fmt.Printf("  Done. Raw CSV → %s | Enriched CSV → %s\n\n", cfg.InputPath, cfg.OutputPath)
	return nil
}

// collect scrapes HelloWork and replaces the raw input file.
func collect(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	offers, err := hellowork.New(cfg, logger).Scrape(ctx)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}
	if len(offers) == 0 {
		return fmt.Errorf("scrape: no offers collected")
	}

	var w storage.RawOfferWriter
	w, err = storage.NewCSVWriter(cfg.InputPath)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.WriteRaw(offers); err != nil {
		return fmt.Errorf("scrape: write raw CSV: %w", err)
	}
	logger.Info("Scraped %d offers, saved to %s", len(offers), cfg.InputPath)
	return nil
}
