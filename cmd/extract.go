package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pawstays/petpolicy-cli/internal/chain"
	"github.com/pawstays/petpolicy-cli/internal/fetch"
	"github.com/pawstays/petpolicy-cli/internal/hash"
	"github.com/pawstays/petpolicy-cli/internal/model"
	"github.com/pawstays/petpolicy-cli/internal/slug"
	"github.com/pawstays/petpolicy-cli/internal/store"
)

var extractFlags struct {
	contextFile string
	url         string
	save        bool
	force       bool
	hotelName   string
	city        string
	state       string
	countryCode string
	address     string
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured pet-policy facts from a hotel page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := zap.L()

		webContext, err := loadContext(cmd)
		if err != nil {
			return err
		}
		contentHash := hash.Context(webContext)

		if extractFlags.url != "" {
			if c := chain.FromURL(extractFlags.url); c != "" {
				log.Info("detected chain", zap.String("chain", c))
			}
		}

		var st store.Store
		if extractFlags.save {
			if extractFlags.url == "" {
				return eris.New("--url is required with --save")
			}
			st, err = initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			// Unchanged pages skip re-extraction entirely.
			if !extractFlags.force {
				id, prevHash, ok, err := st.CheckURLExists(ctx, extractFlags.url)
				if err != nil {
					return err
				}
				if ok && prevHash == contentHash {
					log.Info("page unchanged, skipping extraction",
						zap.Int64("record_id", id),
						zap.String("hash", contentHash))
					return nil
				}
			}
		}

		petInfo, err := initPetInfo()
		if err != nil {
			return err
		}

		result, err := petInfo.Extract(ctx, webContext)
		if err != nil {
			return err
		}

		if st != nil {
			rec := model.HotelRecord{
				URL:          extractFlags.url,
				HotelName:    extractFlags.hotelName,
				City:         extractFlags.city,
				State:        extractFlags.state,
				CountryCode:  extractFlags.countryCode,
				AddressLine1: extractFlags.address,
				Hash:         contentHash,
				WebSlug: slug.Combined(extractFlags.countryCode, extractFlags.state,
					extractFlags.city, extractFlags.hotelName, extractFlags.address),
			}
			id, err := st.SaveRawExtraction(ctx, rec)
			if err != nil {
				return err
			}
			if err := st.SaveWebContext(ctx, id, webContext); err != nil {
				return err
			}
			if err := st.SavePetAttributes(ctx, id, result); err != nil {
				return err
			}
			log.Info("extraction saved",
				zap.Int64("record_id", id),
				zap.String("slug", rec.WebSlug))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// loadContext reads the page context from a file when given one, otherwise
// fetches the live page.
func loadContext(cmd *cobra.Command) (string, error) {
	if extractFlags.contextFile != "" {
		raw, err := os.ReadFile(extractFlags.contextFile)
		if err != nil {
			return "", eris.Wrap(err, "read context file")
		}
		return string(raw), nil
	}
	if extractFlags.url == "" {
		return "", eris.New("either --context-file or --url is required")
	}
	fc := fetch.New(fetch.Options{
		UserAgent:  cfg.Scrape.UserAgent,
		Timeout:    time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Anthropic.MaxRetries,
	})
	return fc.Page(cmd.Context(), extractFlags.url)
}

func init() {
	extractCmd.Flags().StringVar(&extractFlags.contextFile, "context-file", "", "path to scraped page context")
	extractCmd.Flags().StringVar(&extractFlags.url, "url", "", "source page URL, fetched when no context file is given")
	extractCmd.Flags().BoolVar(&extractFlags.save, "save", false, "persist the raw extraction record")
	extractCmd.Flags().BoolVar(&extractFlags.force, "force", false, "re-extract even when the page content is unchanged")
	extractCmd.Flags().StringVar(&extractFlags.hotelName, "hotel-name", "", "hotel name for the saved record")
	extractCmd.Flags().StringVar(&extractFlags.city, "city", "", "city for the saved record")
	extractCmd.Flags().StringVar(&extractFlags.state, "state", "", "state code for the saved record")
	extractCmd.Flags().StringVar(&extractFlags.countryCode, "country-code", "", "country code for the saved record")
	extractCmd.Flags().StringVar(&extractFlags.address, "address", "", "address line for the saved record")
	rootCmd.AddCommand(extractCmd)
}
