package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/localleads/leads-cli/internal/export"
	"github.com/localleads/leads-cli/internal/model"
	"github.com/localleads/leads-cli/internal/pipeline"
)

var (
	searchLocation   string
	searchRadius     int
	searchType       string
	searchMinRating  float64
	searchMinReviews int
	searchEnrich     bool
	searchMax        int
	searchCSV        bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for business leads around a location",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		params := model.SearchParams{
			Location:     searchLocation,
			RadiusKm:     searchRadius,
			BusinessType: searchType,
			MinRating:    searchMinRating,
			MinReviews:   searchMinReviews,
			MaxResults:   searchMax,
			Enrich:       searchEnrich,
		}

		progress := func(done, total int) {
			fmt.Fprintf(os.Stderr, "Enriched %d/%d leads\n", done, total)
		}

		p := newPipeline(st, pipeline.WithProgress(progress))
		result, err := p.Run(ctx, params)
		if err != nil {
			return err
		}

		if searchCSV {
			name := export.Filename(params.Location)
			f, err := os.Create(name)
			if err != nil {
				return eris.Wrapf(err, "create %s", name)
			}
			defer f.Close() //nolint:errcheck
			if err := export.WriteCSV(f, result.Leads); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %d leads to %s\n", len(result.Leads), name)
			return nil
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "city, address or area to search around (required)")
	searchCmd.Flags().IntVar(&searchRadius, "radius", 0, "search radius in km (1-50, default 5)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "business type keyword, e.g. plumber, restaurant")
	searchCmd.Flags().Float64Var(&searchMinRating, "min-rating", 0, "drop businesses rated below this")
	searchCmd.Flags().IntVar(&searchMinReviews, "min-reviews", 0, "drop businesses with fewer reviews than this")
	searchCmd.Flags().BoolVar(&searchEnrich, "enrich", false, "generate AI sales intelligence for the top leads")
	searchCmd.Flags().IntVar(&searchMax, "max-results", 0, "cap on returned leads (default 8)")
	searchCmd.Flags().BoolVar(&searchCSV, "csv", false, "write results to a CSV file instead of JSON on stdout")
	_ = searchCmd.MarkFlagRequired("location")

	rootCmd.AddCommand(searchCmd)
}
