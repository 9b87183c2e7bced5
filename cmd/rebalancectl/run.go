package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/Beaver-Company/helix/pkg/config"
	"github.com/Beaver-Company/helix/pkg/eventbus"
	"github.com/Beaver-Company/helix/pkg/stage"
	"github.com/Beaver-Company/helix/pkg/telemetry"
	"github.com/Beaver-Company/helix/pkg/version"
)

var (
	configPath        string
	snapshotPath      string
	controllerName    string
	controllerVersion string
	debug             bool
	publishSubject    string
	natsURL           string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "compute the intermediate state assignment for one cluster snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		l := telemetry.NewLogger(debug)
		invocationID := telemetry.NewInvocationID()
		l = l.With().Str("invocationId", invocationID).Logger()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		doc, err := loadSnapshot(snapshotPath)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}

		input, mc := buildInput(doc, cfg)

		if err := version.Check(l, controllerName, controllerVersion, mc.LiveInstanceVersions()); err != nil {
			return fmt.Errorf("version compatibility gate: %w", err)
		}

		output, summaries, err := stage.Compute(l, input)
		if err != nil {
			return fmt.Errorf("compute intermediate state: %w", err)
		}

		if debug {
			telemetry.DumpAssignment(l, output)
		}

		var publisher eventbus.Publisher = eventbus.NopPublisher{}
		if publishSubject != "" {
			conn, err := nats.Connect(natsURL)
			if err != nil {
				return fmt.Errorf("connect nats: %w", err)
			}
			defer conn.Close()
			publisher = eventbus.NewNatsPublisher(conn, publishSubject)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		for _, s := range summaries {
			err := publisher.Publish(ctx, eventbus.Summary{
				InvocationID:         invocationID,
				Cluster:              cfg.ClusterName,
				Resource:             string(s.Resource),
				NeedRecovery:         s.NeedRecovery,
				NeedLoadBalance:      s.NeedLoadBalance,
				LoadBalanceThrottled: s.LoadBalanceThrottled,
			})
			if err != nil {
				l.Warn().Err(err).Str("resource", string(s.Resource)).Msg("publish decision summary")
			}
		}

		encoded, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the cluster config file")
	runCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "path to the cluster snapshot file")
	runCmd.Flags().StringVar(&controllerName, "controller-name", "controller", "controller instance name for the version gate")
	runCmd.Flags().StringVar(&controllerVersion, "controller-version", "", "controller version for the version gate")
	runCmd.Flags().BoolVarP(&debug, "debug", "d", false, "dump the computed assignment at debug level")
	runCmd.Flags().StringVar(&publishSubject, "publish", "", "NATS subject to publish decision summaries to (empty disables publishing)")
	runCmd.Flags().StringVar(&natsURL, "nats-url", nats.DefaultURL, "NATS server URL, used only when --publish is set")
	runCmd.MarkFlagRequired("config")
	runCmd.MarkFlagRequired("snapshot")
	runCmd.MarkFlagRequired("controller-version")
}
