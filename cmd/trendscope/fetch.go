package main

import (
	"fmt"

	"github.com/spacesedan/trendscope/internal/app"
	"github.com/spacesedan/trendscope/internal/models"
	"github.com/spacesedan/trendscope/internal/processing"
	"github.com/spacesedan/trendscope/internal/providers"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch news for a keyword from the configured providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		keyword, _ := cmd.Flags().GetString("keyword")
		source, _ := cmd.Flags().GetString("source")
		limit, _ := cmd.Flags().GetInt("limit")
		hours, _ := cmd.Flags().GetInt("hours")
		file, _ := cmd.Flags().GetString("file")
		analyze, _ := cmd.Flags().GetBool("analyze")
		pretty, _ := cmd.Flags().GetBool("pretty")

		var fetcher processing.Fetcher = app.BuildAggregator(cfg, nil)
		if file != "" {
			fetcher = providers.NewAggregator(0, nil, providers.NewFileProvider(file))
		}

		records, err := fetcher.Fetch(cmd.Context(), source, providers.Query{Keyword: keyword, Limit: limit, Hours: hours})
		if err != nil {
			return fmt.Errorf("fetch %q from %s: %w", keyword, source, err)
		}
		if records == nil {
			records = []models.NewsRecord{}
		}

		if !analyze {
			return writeJSON(cmd.OutOrStdout(), records, pretty)
		}

		pipeline, err := app.BuildPipeline(cfg, profile, nil)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), pipeline.Analyze(keyword, records), pretty)
	},
}

func init() {
	fetchCmd.Flags().StringP("keyword", "k", "", "keyword or ticker to search for")
	fetchCmd.Flags().StringP("source", "s", providers.SourceAll, "provider name or all")
	fetchCmd.Flags().Int("limit", 10, "maximum records per provider")
	fetchCmd.Flags().Int("hours", 24, "look-back window in hours")
	fetchCmd.Flags().String("file", "", "read records from a JSON file instead of the network")
	fetchCmd.Flags().Bool("analyze", false, "analyse the fetched records and print the report")
	fetchCmd.Flags().Bool("pretty", false, "indent the JSON output")
	_ = fetchCmd.MarkFlagRequired("keyword")
}
