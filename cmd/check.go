package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/overlaykit/internal/fetch"
	"github.com/ziadkadry99/overlaykit/internal/progress"
)

var checkConcurrency int

var checkCmd = &cobra.Command{
	Use:   "check <url>...",
	Short: "Fetch category pages and report how their content is extracted",
	Long: `Fetches each URL with the configured strategy, the way the overlay would,
and reports which main-content container matched. URLs may be relative to
fetch.origin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fs, err := newFetchSetup(cfg)
		if err != nil {
			return err
		}

		results := runCheck(cmd.Context(), fs, args, checkConcurrency, progress.NewReporter(os.Stderr, "Checking"))
		return printCheck(cmd.OutOrStdout(), results)
	},
}

// checkResult is the outcome for one URL.
type checkResult struct {
	URL     string
	Matched string
	Bytes   int
	Err     error
}

// runCheck fetches urls with at most concurrency requests in flight.
// Results keep the order of urls.
func runCheck(ctx context.Context, fs *fetchSetup, urls []string, concurrency int, rep progress.Reporter) []checkResult {
	if ctx == nil {
		ctx = context.Background()
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]checkResult, len(urls))
	var (
		done atomic.Int32
		mu   sync.Mutex
	)
	rep.Start(len(urls))

	p := pool.New().WithMaxGoroutines(concurrency)
	for i, raw := range urls {
		p.Go(func() {
			results[i] = checkOne(ctx, fs, raw)
			n := done.Add(1)
			mu.Lock()
			rep.Update(int(n), raw)
			mu.Unlock()
		})
	}
	p.Wait()
	rep.Finish()
	return results
}

func checkOne(ctx context.Context, fs *fetchSetup, raw string) checkResult {
	res := checkResult{URL: raw}
	target, err := fs.guard.Resolve(raw)
	if err != nil {
		res.Err = err
		return res
	}
	res.URL = target

	if fs.host != nil {
		html, err := fs.fetcher.Fetch(ctx, target)
		res.Matched, res.Bytes, res.Err = "host api", len(html), err
		return res
	}

	ex, err := fetch.NewHTTPFetcher(fs.client, fs.maxBody).FetchExtraction(ctx, target)
	if err != nil {
		res.Err = err
		return res
	}
	res.Matched, res.Bytes = ex.Matched, len(ex.HTML)
	if ex.Fallback() {
		res.Matched = "(whole document)"
	}
	return res
}

func printCheck(w io.Writer, results []checkResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", r.URL, r.Err)
			continue
		}
		fmt.Fprintf(w, "OK    %s: %s (%d bytes)\n", r.URL, r.Matched, r.Bytes)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}

func init() {
	checkCmd.Flags().IntVar(&checkConcurrency, "concurrency", 4, "Maximum concurrent requests")
	rootCmd.AddCommand(checkCmd)
}
