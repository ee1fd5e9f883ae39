package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type batchFailure struct {
	Brief string
	Err   error
}

func newBatchCmd(rt func() *Runtime) *cobra.Command {
	var dir, outDir string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate itineraries for every brief in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be at least 1")
			}
			briefs, err := filepath.Glob(filepath.Join(dir, "*.json"))
			if err != nil {
				return err
			}
			sort.Strings(briefs)
			if len(briefs) == 0 {
				return fmt.Errorf("no *.json briefs found in %s", dir)
			}

			failures := runBatch(cmd.Context(), rt(), briefs, outDir, concurrency)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d of %d itineraries generated\n", len(briefs)-len(failures), len(briefs))
			for _, f := range failures {
				fmt.Fprintf(out, "FAILED %s: %v\n", f.Brief, f.Err)
			}
			if len(failures) > 0 {
				return fmt.Errorf("%d brief(s) failed", len(failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of trip brief JSON files")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory to write itineraries into")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "maximum briefs generated in parallel")
	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

// runBatch generates each brief independently. A failed brief is recorded and
// never cancels the others, so the group functions always return nil.
func runBatch(ctx context.Context, rt *Runtime, briefs []string, outDir string, concurrency int) []batchFailure {
	var (
		mu       sync.Mutex
		failures []batchFailure
	)
	fail := func(path string, err error) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, batchFailure{Brief: path, Err: err})
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)
	for _, path := range briefs {
		g.Go(func() error {
			brief, err := readBrief(path)
			if err != nil {
				fail(path, err)
				return nil
			}
			result, err := rt.Generator.GenerateItinerary(ctx, brief)
			if err != nil {
				rt.Log.Warn("batch brief failed", zap.String("brief", path), zap.Error(err))
				fail(path, err)
				return nil
			}
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".itinerary.json"
			if err := writeJSON(os.Stdout, filepath.Join(outDir, name), result); err != nil {
				fail(path, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].Brief < failures[j].Brief })
	return failures
}
