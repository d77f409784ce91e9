package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/brogergvhs/noveld/internal/backends"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/ui"

	"github.com/spf13/cobra"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show fiction metadata: title, identifier, authors, cover, chapter count",
		RunE:  runInfo,
	}

	infoCmd.Flags().StringVar(&flagURL, "url", "", "fiction page URL")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(_ *cobra.Command, _ []string) error {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		DefaultURL:   flagURL,
	})
	if err != nil {
		return err
	}
	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	logSvc := ui.NewLogger(cfg.Debug)
	client, err := newClient(cfg, logSvc)
	if err != nil {
		return err
	}

	ctx := context.Background()
	backend, err := backends.Resolve(ctx, client, cfg.DefaultURL)
	if err != nil {
		return err
	}

	title, err := backend.Title()
	if err != nil {
		return err
	}
	id, err := backend.ImmutableIdentifier()
	if err != nil {
		return err
	}

	fmt.Printf("Site:       %s\n", backend.Name())
	fmt.Printf("Title:      %s\n", title)
	fmt.Printf("Identifier: %s\n", id)

	if authors, err := backend.Authors(); err == nil {
		fmt.Printf("Authors:    %s\n", strings.Join(authors, ", "))
	}
	if cover, err := backend.CoverURL(); err == nil {
		fmt.Printf("Cover:      %s\n", cover)
	}
	if list, err := backend.GetChapterList(ctx); err == nil {
		fmt.Printf("Chapters:   %d\n", len(list))
	}

	return nil
}
