package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wanderplan/internal/config"
	"wanderplan/internal/services"
	"wanderplan/pkg/logger"
	"wanderplan/pkg/utils"
)

// Runtime is everything a command needs to talk to the model backend.
type Runtime struct {
	Planner   services.ClarificationServiceInterface
	Generator services.ItineraryServiceInterface
	Log       *zap.Logger
	Close     func() error
}

type RuntimeFactory func(ctx context.Context) (*Runtime, error)

// DefaultRuntime wires the services from the environment, the same way the
// HTTP host does.
func DefaultRuntime(_ context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	ai, err := utils.NewGenerativeClient(cfg.GenerativeConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLM.Provider, err)
	}

	settings := cfg.GenerationSettings()
	return &Runtime{
		Planner:   services.NewClarificationService(ai, settings, log),
		Generator: services.NewItineraryService(ai, settings, log),
		Log:       log,
		Close: func() error {
			_ = log.Sync()
			return ai.Close()
		},
	}, nil
}

// NewRootCmd builds the tripgen command tree. The runtime is created lazily
// so that --help never needs credentials.
func NewRootCmd(factory RuntimeFactory) *cobra.Command {
	var rt *Runtime

	root := &cobra.Command{
		Use:           "tripgen",
		Short:         "Generate clarifying questions and itineraries from trip briefs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			rt, err = factory(cmd.Context())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt == nil || rt.Close == nil {
				return nil
			}
			return rt.Close()
		},
	}

	get := func() *Runtime { return rt }
	root.AddCommand(
		newQuestionsCmd(get),
		newGenerateCmd(get),
		newBatchCmd(get),
	)
	return root
}

func Execute() {
	root := NewRootCmd(DefaultRuntime)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
