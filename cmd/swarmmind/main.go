// swarmmind runs a swarm of simulated autonomous software engineering
// agents that communicate through a shared pheromone channel and, past a
// critical signal density, synchronize into a collective.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/owizdom/swarm-mind/internal/config"
	"github.com/owizdom/swarm-mind/internal/discovery"
	"github.com/owizdom/swarm-mind/internal/external"
	"github.com/owizdom/swarm-mind/internal/reason"
	"github.com/owizdom/swarm-mind/internal/report"
	"github.com/owizdom/swarm-mind/internal/store"
	"github.com/owizdom/swarm-mind/internal/swarm"
)

var version = "0.3.0"

var (
	verbose    bool
	configPath string

	// run flags
	flagAgents   int
	flagTicks    int
	flagSeed     int64
	flagReasoner string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "swarmmind",
	Short: "swarm-mind - emergent collective of simulated engineering agents",
	Long: `swarm-mind simulates a swarm of autonomous software engineering agents.

Each agent wanders an abstract idea space, absorbs pheromone signals left
by the others, reasons about what to work on, and spends a token budget
on engineering actions. When channel density crosses the critical
threshold the swarm undergoes a phase transition and agents begin to
synchronize into a collective.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a swarm simulation",
	Long: `Runs the simulation loop for the configured number of ticks and prints
the final swarm state. Interrupt with Ctrl-C for a clean early stop.`,
	RunE: runSwarm,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest persisted swarm snapshot",
	RunE:  showStatus,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the swarmmind version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("swarmmind %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	runCmd.Flags().IntVar(&flagAgents, "agents", 0, "number of agents (overrides config)")
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "simulation length in ticks (overrides config)")
	runCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed (overrides config)")
	runCmd.Flags().StringVar(&flagReasoner, "reasoner", "", "reasoner mode: simulated or gemini (overrides config)")

	rootCmd.AddCommand(runCmd, statusCmd, versionCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	cfg, err := config.Load(defaultConfigPath())
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "swarm-mind.yaml"
	}
	return home + "/.swarm-mind/config.yaml"
}

func runSwarm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagAgents > 0 {
		cfg.Swarm.Agents = flagAgents
	}
	if flagTicks > 0 {
		cfg.Swarm.Ticks = flagTicks
	}
	if flagSeed != 0 {
		cfg.Swarm.Seed = flagSeed
	}
	if flagReasoner != "" {
		cfg.Reasoner.Mode = flagReasoner
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("interrupted, stopping swarm")
			cancel()
		case <-ctx.Done():
		}
	}()

	st, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	seed := cfg.Swarm.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var reasoner external.Reasoner
	switch cfg.Reasoner.Mode {
	case config.ReasonerGemini:
		reasoner, err = reason.NewGemini(ctx, cfg.Reasoner.APIKey, cfg.Reasoner.Model, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize gemini reasoner: %w", err)
		}
	default:
		reasoner = reason.NewSimulated(rand.New(rand.NewSource(seed)))
	}

	sw, err := swarm.New(cfg, swarm.Collaborators{
		Reasoner: reasoner,
		Executor: swarm.NewSimulatedExecutor(rand.New(rand.NewSource(seed + 1))),
		Repos:    discovery.Catalog{},
		Issues:   discovery.Catalog{},
		Persist:  st,
	}, logger)
	if err != nil {
		return err
	}

	if err := sw.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Println(report.Render(sw.Snapshot()))
	return nil
}

func showStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	snap, err := st.LatestSnapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("no swarm state recorded yet: %w", err)
	}
	fmt.Println(report.Render(snap))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
