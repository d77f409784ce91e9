package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/brogergvhs/noveld/internal/backends"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/sanitize"
	"github.com/brogergvhs/noveld/internal/ui"

	"github.com/spf13/cobra"
)

var (
	flagLearnChapter int
	flagSamples      int
	flagCorpusDir    string
)

func init() {
	learnCmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn anti-theft decoy sentences by re-fetching one chapter and diffing the samples",
		Long: `Some sites inject varying decoy sentences into chapter text to watermark
scraped copies. learn fetches the same chapter repeatedly, diffs the samples
against each other and appends recurring differences to the site's decoy
corpus, which the downloader then strips at parse time.`,
		RunE: runLearn,
	}

	learnCmd.Flags().StringVar(&flagURL, "url", "", "fiction page URL")
	learnCmd.Flags().IntVar(&flagLearnChapter, "chapter", 1, "chapter index to sample")
	learnCmd.Flags().IntVar(&flagSamples, "samples", 0, "number of samples to fetch")
	learnCmd.Flags().StringVar(&flagCorpusDir, "corpus-dir", "", "directory holding per-site corpus files")

	rootCmd.AddCommand(learnCmd)
}

func runLearn(_ *cobra.Command, _ []string) error {
	cfg, _, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		DefaultURL:   flagURL,
		Samples:      flagSamples,
		CorpusDir:    flagCorpusDir,
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

	urls, err := backend.ChapterURLs(ctx)
	if err != nil {
		return err
	}
	if flagLearnChapter < 1 || flagLearnChapter > len(urls) {
		return fmt.Errorf("chapter %d out of range (1-%d)", flagLearnChapter, len(urls))
	}
	target := urls[flagLearnChapter-1]

	delay := time.Duration(cfg.DelayMS) * time.Millisecond
	samples := make([]string, 0, cfg.Samples)
	failed := 0

	for i := 1; i <= cfg.Samples; i++ {
		if i > 1 && delay > 0 {
			time.Sleep(delay)
		}
		logSvc.Infof("Sample %d/%d\n", i, cfg.Samples)

		c, err := backend.GetChapter(ctx, target)
		if err != nil {
			// a failed sample shrinks the pool but doesn't abort the run
			logSvc.Warnf("Sample %d failed: %v\n", i, err)
			failed++
			continue
		}
		samples = append(samples, c.Content)
	}

	if len(samples) < 2 {
		return fmt.Errorf("only %d of %d samples fetched, need at least 2", len(samples), cfg.Samples)
	}

	found := sanitize.Learn(samples)

	corpus, err := sanitize.Load(cfg.CorpusDir, backend.Name())
	if err != nil {
		return err
	}
	added := corpus.Add(found...)
	if added > 0 {
		if err := corpus.Save(cfg.CorpusDir); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Printf("Samples:       %d ok, %d failed\n", len(samples), failed)
	fmt.Printf("New sentences: %d\n", added)
	fmt.Printf("Corpus size:   %d (%s)\n", corpus.Len(), backend.Name())
	return nil
}
