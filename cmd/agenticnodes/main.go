package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/its-camilo/AgenticNodes/internal/api"
	"github.com/its-camilo/AgenticNodes/internal/config"
	"github.com/its-camilo/AgenticNodes/internal/domain"
	"github.com/its-camilo/AgenticNodes/internal/logging"
	"github.com/its-camilo/AgenticNodes/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "agenticnodes",
	Short: "Supply-chain simulation client",
	Long:  "Client for the AgenticNodes supply-chain simulation service: submit procurement intents, follow run progress, and negotiate terms.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewParser().LoadFromFile(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.NewCLI(verbose)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [intent]",
	Short: "Run a simulation for a procurement intent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		location, _ := cmd.Flags().GetString("buyer-location")
		disruptions, _ := cmd.Flags().GetBool("simulate-disruptions")
		format, _ := cmd.Flags().GetString("format")

		formatter, err := output.ForFormat(format)
		if err != nil {
			return err
		}
		req, err := domain.NewRunRequest(args[0], location, disruptions || cfg.SimulateDisruptions, cfg.DefaultBuyerLocation)
		if err != nil {
			return err
		}
		return runSimulation(cfg, logger, req, formatter, os.Stderr, os.Stdout)
	},
}

var negotiateCmd = &cobra.Command{
	Use:   "negotiate [trace-id] [message]",
	Short: "Send one negotiation message for a completed run",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		supplier, _ := cmd.Flags().GetString("supplier")
		port, _ := cmd.Flags().GetString("port")

		req, err := domain.NewNegotiateRequest(args[1], supplier, port)
		if err != nil {
			return err
		}

		client := api.NewClient(cfg.ServerURL, logger)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout.Std())
		defer cancel()

		resp, err := client.Negotiate(ctx, args[0], req)
		if err != nil {
			return err
		}

		fmt.Printf("agent: %s\n", resp.AgentReply)
		if len(resp.UpdatedTerms) > 0 {
			fmt.Printf("\nupdated terms (total %s):\n", domain.TotalCost(resp.UpdatedTerms).StringFixed(2))
			for _, t := range resp.UpdatedTerms {
				fmt.Printf("  %-14s %-12s qty %d @ %s = %s %s, lead %dd\n",
					t.Material, t.SupplierID, t.Qty,
					t.UnitPriceEst.StringFixed(2), t.Subtotal.StringFixed(2), t.Currency, t.LeadTimeDays)
			}
		}
		return nil
	},
}

// runSimulation mirrors the interactive flow: subscribe to the progress
// stream first, then issue the bounded job request, then tear down. The
// progress goroutine is joined before the report is written so no stale
// notification can print after the run has resolved.
func runSimulation(cfg *config.Config, logger *zap.Logger, req domain.RunRequest, formatter output.Formatter, progress, out io.Writer) error {
	client := api.NewClient(cfg.ServerURL, logger)
	runID := uuid.NewString()

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var progressDone chan struct{}
	events, err := client.OpenEvents(runCtx)
	if err != nil {
		logger.Warn("event stream unavailable, continuing without progress", zap.Error(err))
	} else {
		defer events.Close()
		progressDone = make(chan struct{})
		go func() {
			defer close(progressDone)
			for n := range events.Notifications() {
				switch n.Type {
				case api.NotificationPhase:
					fmt.Fprintf(progress, "phase: %-24s %s\n", n.Phase.Phase, n.Phase.Message)
				case api.NotificationRouteEval:
					fmt.Fprintf(progress, "route: (%.1f, %.1f) -> (%.1f, %.1f) %s\n",
						n.RouteEval.From.Lat, n.RouteEval.From.Lng,
						n.RouteEval.To.Lat, n.RouteEval.To.Lng, n.RouteEval.Label)
				case api.NotificationNegotiationReady:
					fmt.Fprintln(progress, "negotiation terms are ready; refine them with `agenticnodes negotiate` once the run completes")
				}
			}
		}()
	}

	logger.Info("starting run", zap.String("run_id", runID), zap.String("buyer_location", req.BuyerLocation))

	jobCtx, cancelJob := context.WithTimeout(runCtx, cfg.JobTimeout.Std())
	defer cancelJob()

	resp, err := client.StartRun(jobCtx, req, cfg.JobTimeout.Std())
	events.Close()
	if progressDone != nil {
		<-progressDone
	}
	if err != nil {
		return err
	}
	return formatter.Format(out, resp)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "agenticnodes %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to client config YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().String("buyer-location", "", "buyer location (defaults from config)")
	runCmd.Flags().Bool("simulate-disruptions", false, "inject simulated supply disruptions")
	runCmd.Flags().String("format", "console", "output format: console, json, or csv")

	negotiateCmd.Flags().String("supplier", "", "scope the message to one supplier id")
	negotiateCmd.Flags().String("port", "", "scope the message to one port")

	rootCmd.AddCommand(runCmd, negotiateCmd, versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
