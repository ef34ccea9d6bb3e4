package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localleads/leads-cli/internal/config"
	"github.com/localleads/leads-cli/internal/enrich"
	"github.com/localleads/leads-cli/internal/pipeline"
	"github.com/localleads/leads-cli/internal/store"
	anthropicpkg "github.com/localleads/leads-cli/pkg/anthropic"
	"github.com/localleads/leads-cli/pkg/places"
	"github.com/localleads/leads-cli/pkg/websearch"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leads-cli",
	Short: "Local business lead generation",
	Long:  "Finds local businesses via Google Maps, scores them as outreach leads, and enriches the best ones with AI sales intelligence.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func initStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// newPipeline wires the Maps client, the enrichment client and the run store
// into a ready pipeline. The web-search gatherer is only attached when a
// search key is configured.
func newPipeline(st store.Store, opts ...pipeline.Option) *pipeline.Pipeline {
	mapsClient := places.NewClient(cfg.Maps.Key,
		places.WithBaseURL(cfg.Maps.BaseURL),
		places.WithRateLimit(cfg.Maps.RequestsPerSec),
		places.WithHTTPClient(&http.Client{Timeout: 15 * time.Second}),
	)

	var gatherer enrich.ContextGatherer = enrich.NoGatherer{}
	if cfg.Search.Key != "" {
		gatherer = enrich.NewSearchGatherer(websearch.NewClient(cfg.Search.Key,
			websearch.WithBaseURL(cfg.Search.BaseURL),
			websearch.WithMaxResults(cfg.Search.MaxSnippets),
		))
	}

	enricher := enrich.New(anthropicpkg.NewClient(cfg.Anthropic.Key), gatherer,
		enrich.WithModel(cfg.Anthropic.Model),
		enrich.WithMaxTokens(cfg.Anthropic.MaxTokens),
		enrich.WithRateLimit(cfg.Enrich.RequestsPerSec),
	)

	opts = append(opts,
		pipeline.WithStore(st),
		pipeline.WithDetailFetchers(cfg.Maps.DetailFetchers),
	)
	return pipeline.New(mapsClient, enricher, opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
