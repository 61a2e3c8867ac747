package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/tubequiz/internal/config"
	"github.com/abhisek/tubequiz/internal/llm"
	"github.com/abhisek/tubequiz/internal/logger"
	"github.com/abhisek/tubequiz/internal/pipeline"
	"github.com/abhisek/tubequiz/internal/quizgen"
	"github.com/abhisek/tubequiz/internal/store"
	"github.com/abhisek/tubequiz/internal/summarize"
	"github.com/abhisek/tubequiz/internal/transcript"
)

var rootCmd = &cobra.Command{
	Use:   "tubequiz",
	Short: "Summarize YouTube videos and quiz yourself on them",
	Long:  "TubeQuiz fetches a YouTube transcript, summarizes it with an LLM and turns the summary into a ten-question multiple choice quiz.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

// Execute runs the command line. SIGINT and SIGTERM cancel the command's
// context, which stops in-flight LLM and transcript requests.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUBEQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Load environment variables from this file when it exists")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (overrides TUBEQUIZ_LOG_FILE env var)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock")
	rootCmd.PersistentFlags().StringSlice("lang", nil, "Preferred transcript languages, in order (e.g. en,de)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the configuration from the env file, the environment
// and the persistent flags, flags taking precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.SetProvider(p)
	}
	if langs, _ := cmd.Flags().GetStringSlice("lang"); len(langs) > 0 {
		cfg.Languages = langs
	}
	return cfg, nil
}

// openStore opens the database named by the configuration.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// deps is everything a pipeline-backed command needs.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	pipe  *pipeline.Pipeline
}

func (d *deps) Close() {
	if d.store != nil {
		d.store.Close()
	}
	d.log.Sync()
}

// buildDeps loads the configuration and wires the store, the LLM provider
// and the pipeline.
func buildDeps(ctx context.Context, cmd *cobra.Command) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		log = logger.Nop()
	}
	d := &deps{cfg: cfg, log: log}

	d.store, err = store.Open(cfg.DBPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, d.store.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	sumCfg := summarize.DefaultConfig()
	sumCfg.MaxWords = cfg.ChunkWords
	quizCfg := quizgen.DefaultConfig()
	quizCfg.Structured = cfg.StructuredQuiz

	youtube := transcript.NewYouTube(
		transcript.WithLanguages(cfg.Languages...),
		transcript.WithLogger(log),
	)

	d.pipe = &pipeline.Pipeline{
		Transcripts: transcript.NewCached(youtube, cfg.TranscriptCacheTTL),
		Summarizer:  summarize.New(provider, sumCfg, log),
		Generator:   quizgen.New(provider, quizCfg, log),
		Summaries:   d.store.SummaryRepo(),
		Attempts:    d.store.AttemptRepo(),
		ExportDir:   cfg.ExportDir,
		Log:         log,
	}
	log.Info("pipeline ready", "provider", cfg.LLM.Provider, "db", cfg.DBPath, "languages", cfg.Languages)
	return d, nil
}
