package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Beaver-Company/helix/pkg/config"
	"github.com/Beaver-Company/helix/pkg/model"
	"github.com/Beaver-Company/helix/pkg/stage"
	"github.com/Beaver-Company/helix/pkg/telemetry"
)

var (
	batchConfigPath string
	batchGlob       string
)

// batchCmd computes every matching snapshot concurrently, one goroutine per
// cluster, mirroring the teacher's Run() use of
// golang.org/x/sync/errgroup.WithContext to fan out independent per-instance
// work and stop at the first failure.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "compute the intermediate state assignment for every snapshot matching a glob, concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(batchConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		paths, err := filepath.Glob(batchGlob)
		if err != nil {
			return fmt.Errorf("glob snapshots: %w", err)
		}
		if len(paths) == 0 {
			return fmt.Errorf("no snapshot matched %q", batchGlob)
		}
		sort.Strings(paths)

		l := telemetry.NewLogger(debug)

		results := make(map[string]model.IntermediateStateOutput, len(paths))
		var mu sync.Mutex

		wg, ctx := errgroup.WithContext(cmd.Context())
		for _, p := range paths {
			p := p
			wg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := loadSnapshot(p)
				if err != nil {
					return fmt.Errorf("%s: load snapshot: %w", p, err)
				}
				input, _ := buildInput(doc, cfg)
				output, _, err := stage.Compute(l.With().Str("snapshot", p).Logger(), input)
				if err != nil {
					return fmt.Errorf("%s: compute intermediate state: %w", p, err)
				}
				mu.Lock()
				results[p] = output
				mu.Unlock()
				return nil
			})
		}
		if err := wg.Wait(); err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchConfigPath, "config", "c", "", "path to the cluster config file, shared by every snapshot")
	batchCmd.Flags().StringVarP(&batchGlob, "snapshots", "s", "", "glob matching one snapshot file per cluster")
	batchCmd.MarkFlagRequired("config")
	batchCmd.MarkFlagRequired("snapshots")
}
