package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/brogergvhs/noveld/internal/backends"
	"github.com/brogergvhs/noveld/internal/config"
	"github.com/brogergvhs/noveld/internal/novel"
	"github.com/brogergvhs/noveld/internal/ui"
	"github.com/brogergvhs/noveld/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagURL     string
	flagChapter string
	flagRange   string
	flagList    string

	// runtime
	flagOutput string
	flagDelay  int
	flagDryRun bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download chapters as clean HTML files. Uses defaults from the selected config, overwritten by CLI flags",
		RunE:  runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagURL, "url", "", "fiction page URL")
	downloadCmd.Flags().StringVar(&flagChapter, "chapter", "", "download a single chapter by index (e.g. 5)")
	downloadCmd.Flags().StringVar(&flagRange, "range", "", "download a range of chapters by index (e.g. 5-12)")
	downloadCmd.Flags().StringVar(&flagList, "list", "", "download specific chapter indices (e.g. 1,3,5)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder for chapter files")
	downloadCmd.Flags().IntVar(&flagDelay, "delay", 0, "delay between chapter fetches in milliseconds")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don’t download")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(_ *cobra.Command, _ []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagOutput,
		DelayMS:      flagDelay,
		DefaultURL:   flagURL,
		DefaultRange: flagRange,
		DefaultList:  flagList,
		Cookie:       flagCookie,
		CookieFile:   flagCookieFile,
		UserAgent:    flagUserAgent,
	})
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	fmt.Println("Full config:")
	cfg.Print()
	fmt.Println()

	if cfg.DefaultURL == "" {
		return fmt.Errorf("missing --url and no default_url in config")
	}

	client, err := newClient(cfg, logSvc)
	if err != nil {
		return err
	}

	ctx := context.Background()
	util.SetupInterruptHandler(cfg.Output)

	backend, err := backends.Resolve(ctx, client, cfg.DefaultURL)
	if err != nil {
		return err
	}

	title, err := backend.Title()
	if err != nil {
		return err
	}
	fmt.Printf("Fiction: %s (%s)\n", title, backend.Name())

	urls, err := backend.ChapterURLs(ctx)
	if err != nil {
		return err
	}

	selected, err := selectIndexes(len(urls), flagChapter, cfg.DefaultRange, cfg.DefaultList)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no chapters selected")
	}

	if flagDryRun {
		fmt.Printf("Dry-run: %d chapters selected.\n\n", len(selected))
		for _, i := range selected {
			fmt.Printf("%4d) %s\n", i, urls[i-1])
		}
		return nil
	}

	pm := ui.NewProgressManager()
	handle := pm.Register(title)
	handle.SetTotal(len(selected))

	stats := &ui.Stats{}
	start := time.Now()
	delay := time.Duration(cfg.DelayMS) * time.Millisecond

	chapters := make([]novel.Chapter, 0, len(selected))
	for n, i := range selected {
		if n > 0 && delay > 0 {
			time.Sleep(delay)
		}

		c, err := backend.GetChapter(ctx, urls[i-1])
		if err != nil {
			pm.Close()
			return fmt.Errorf("chapter %d: %w", i, err)
		}
		chapters = append(chapters, c)

		stats.TotalChapters.Add(1)
		stats.TotalBytes.Add(int64(len(c.Content)))
		handle.Update(n+1, stats.TotalBytes.Load())
	}

	slices.SortFunc(chapters, backend.Ordering())
	for _, c := range chapters {
		if err := writeChapter(c, cfg.Output); err != nil {
			pm.Close()
			return err
		}
	}

	handle.MarkDone()
	pm.Close()

	fmt.Println()
	fmt.Println("Download Summary:")
	fmt.Printf("Chapters: %d\n", stats.TotalChapters.Load())
	fmt.Printf("Text:     %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Printf("Time:     %s\n", time.Since(start).Round(time.Second))
	fmt.Println("\nAll done.")

	return nil
}

func writeChapter(c novel.Chapter, out string) error {
	final := c.FilePath(out)
	part := final + ".part"

	if err := os.WriteFile(part, []byte(novel.Marshal(c)), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", part, err)
	}
	return os.Rename(part, final)
}

// selectIndexes resolves the chapter/range/list flags into 1-based
// indexes. Without any selection flag, every chapter is selected.
func selectIndexes(total int, chapter, rng, list string) ([]int, error) {
	if chapter != "" {
		idx, err := strconv.Atoi(strings.TrimSpace(chapter))
		if err != nil || idx <= 0 || idx > total {
			return nil, fmt.Errorf("chapter %q not found (1-%d)", chapter, total)
		}
		return []int{idx}, nil
	}

	if rng != "" {
		parts := strings.Split(rng, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("bad range %q", rng)
		}
		start, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		end, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || start <= 0 || start > end || end > total {
			return nil, fmt.Errorf("bad range %q (1-%d)", rng, total)
		}
		out := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
		return out, nil
	}

	if list != "" {
		var out []int
		for _, p := range strings.Split(list, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			idx, err := strconv.Atoi(p)
			if err != nil || idx <= 0 || idx > total {
				return nil, fmt.Errorf("bad list entry %q (1-%d)", p, total)
			}
			out = append(out, idx)
		}
		return out, nil
	}

	out := make([]int, total)
	for i := range out {
		out[i] = i + 1
	}
	return out, nil
}
