package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pawstays/petpolicy-cli/internal/pipeline"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Normalize scraped pet-policy values into typed attribute rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		fb, err := initFallback()
		if err != nil {
			return err
		}

		stats, err := pipeline.New(cfg, st, fb).Run(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
