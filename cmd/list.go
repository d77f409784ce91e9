package cmd

import (
	"context"
	"fmt"

	"github.com/brogergvhs/noveld/internal/backends"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/ui"

	"github.com/spf13/cobra"
)

var flagListCached string

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the chapters of a fiction without downloading content",
		RunE:  runList,
	}

	listCmd.Flags().StringVar(&flagURL, "url", "", "fiction page URL")
	listCmd.Flags().StringVar(&flagListCached, "diff", "", "directory of previously downloaded chapters to diff against")

	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
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

	list, err := backend.GetChapterList(ctx)
	if err != nil {
		return err
	}

	for _, e := range list {
		fmt.Printf("%4d  %s\n", e.Index, e.Title)
	}
	fmt.Printf("\n%d chapters.\n", len(list))

	if flagListCached == "" {
		return nil
	}

	cached, err := loadCachedList(flagListCached)
	if err != nil {
		return err
	}

	changes := novel.DiffChapterLists(cached, list)
	if len(changes) == 0 {
		fmt.Println("Local copy matches the source listing.")
		return nil
	}

	fmt.Printf("\n%d changes on the source since the local download:\n", len(changes))
	for _, ch := range changes {
		switch ch.Kind {
		case novel.ChangeRemoved:
			fmt.Printf("  removed  %4d  %s\n", ch.Index, ch.OldTitle)
		case novel.ChangeAdded:
			fmt.Printf("  added    %4d  %s\n", ch.Index, ch.NewTitle)
		case novel.ChangeRetitled:
			fmt.Printf("  retitled %4d  %s -> %s\n", ch.Index, ch.OldTitle, ch.NewTitle)
		case novel.ChangeReplaced:
			fmt.Printf("  replaced %4d  %s -> %s (refetch to disambiguate)\n", ch.Index, ch.OldTitle, ch.NewTitle)
		}
	}
	return nil
}
