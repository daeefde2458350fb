package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pawstays/petpolicy-cli/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Dump the canonical tag vocabularies as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := map[string]any{
			"species_tags":  vocab.SpeciesTags,
			"breed_tags":    vocab.BreedTags,
			"amenity_tags":  vocab.AmenityTags,
			"fee_intervals": vocab.Intervals,
			"currencies":    vocab.Currencies,
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return eris.Wrap(err, "vocab: encode")
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}
