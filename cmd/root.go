package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/generate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/llm"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/pipeline"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/store"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/variate"
	"github.com/satviksrivastava7-cnx/question-bank-gen/internal/verify"
)

var rootCmd = &cobra.Command{
	Use:   "qbank <path>",
	Short: "Generate, verify and variate question banks from textbook chapters",
	Long: `qbank walks a textbook content tree, and for every chapter generates a
complete Bloom's-taxonomy question bank, verifies its quality with a second
model pass, and enriches each question with five variations.

The path may be a whole content root (all chapters below it are processed)
or a single chapter directory containing chapter_content.json.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, args[0])
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QBANK_DB env var)")

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func runPipeline(cmd *cobra.Command, root string) error {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("path does not exist: %s", root)
	}

	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	runID := uuid.NewString()
	repo := s.EventRepo(runID)

	provider, err := llm.NewProvider(ctx, cfg, repo)
	if err != nil {
		return err
	}
	client := llm.NewClient(provider, cfg.MaxAttempts, cfg.MaxTokens)

	ctrl := pipeline.NewController(
		generate.NewService(client, generate.DefaultConfig(), log),
		verify.NewService(client, verify.DefaultConfig(), log),
		variate.NewService(client, variate.DefaultConfig(), log),
		log,
	)

	log.Infow("run starting",
		"run_id", runID,
		"provider", cfg.Provider,
		"db", dbPath)

	sum, err := ctrl.Run(ctx, root)
	if err != nil {
		return err
	}

	fmt.Printf("\nProcessed: %d\nSkipped:   %d\nFailed:    %d\n",
		sum.Processed, sum.Skipped, sum.Failed)
	return nil
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then QBANK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
