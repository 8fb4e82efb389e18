package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spacesedan/trendscope/internal/app"
	"github.com/spacesedan/trendscope/internal/db"
	"github.com/spacesedan/trendscope/internal/providers"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyse a JSON batch of news records",
	Long: `Reads a JSON array of news records (or a {"data": [...]} envelope) from
file, or from stdin when file is omitted or "-", and prints the report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		records, err := providers.DecodeRecords(in)
		if err != nil {
			return err
		}

		pipeline, err := app.BuildPipeline(cfg, profile, nil)
		if err != nil {
			return err
		}

		keyword, _ := cmd.Flags().GetString("keyword")
		savePath, _ := cmd.Flags().GetString("save")
		if savePath != "" {
			store, err := db.OpenSQLiteReportStore(savePath)
			if err != nil {
				return err
			}
			defer store.Close()
			pipeline.WithStore(store)
		}

		report, err := pipeline.Run(cmd.Context(), keyword, records)
		if err != nil {
			return err
		}
		pretty, _ := cmd.Flags().GetBool("pretty")
		return writeJSON(cmd.OutOrStdout(), report, pretty)
	},
}

func init() {
	analyzeCmd.Flags().StringP("keyword", "k", "", "keyword the batch was collected for")
	analyzeCmd.Flags().String("save", "", "also store the report in this SQLite file")
	analyzeCmd.Flags().Bool("pretty", false, "indent the JSON output")
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
