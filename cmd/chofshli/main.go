package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/chofshli/internal/config"
	"github.com/username/chofshli/internal/holiday"
	"github.com/username/chofshli/internal/planner"
	"github.com/username/chofshli/internal/prefs"
	"github.com/username/chofshli/internal/server"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	out        io.Writer = os.Stdout
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "chofshli",
		Short: "Israeli vacation days calculator",
		Long:  "Count the leave days a vacation really costs once weekends and Israeli holidays are taken into account",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(os.ExpandEnv(cfg.Log.File), cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(calcCmd())
	rootCmd.AddCommand(holidaysCmd())
	rootCmd.AddCommand(categoryCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func calcCmd() *cobra.Command {
	var from, to, category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Count the leave days needed for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			end, err := dateutil.ParseDate(to)
			if err != nil {
				return fmt.Errorf("invalid --to: %w", err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := resolveCategory(ctx, cfg, category)
			if err != nil {
				return err
			}

			result, err := initializePlanner(cfg).Plan(ctx, start, end, c)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(out, result)
			}
			printReceipt(out, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day of the vacation (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&to, "to", "", "Last day of the vacation (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&category, "category", "", "citizen, soldier or kevah (default: stored preference)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func holidaysCmd() *cobra.Command {
	var year int
	var category string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List the holidays of a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if year < 1 || year > 9999 {
				return fmt.Errorf("invalid --year: %d", year)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			c, err := resolveCategory(ctx, cfg, category)
			if err != nil {
				return err
			}

			records, err := initializePlanner(cfg).Holidays(ctx, year, c)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(out, records)
			}
			printHolidays(out, year, c, records)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", dateutil.Today().Year(), "Gregorian year")
	cmd.Flags().StringVar(&category, "category", "", "citizen, soldier or kevah (default: stored preference)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")

	return cmd
}

func categoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Show or change the stored user category",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored user category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := prefs.Open(cfg.Preferences.Backend, cfg.Preferences.Path, logger)
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer store.Close()

			c, err := prefs.LoadCategory(cmd.Context(), store, cfg.DefaultCategory())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, c)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "set <citizen|soldier|kevah>",
		Short:     "Store the user category",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"citizen", "soldier", "kevah"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategoryArg(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := prefs.Open(cfg.Preferences.Backend, cfg.Preferences.Path, logger)
			if err != nil {
				return fmt.Errorf("failed to open preferences: %w", err)
			}
			defer store.Close()

			if err := prefs.SaveCategory(cmd.Context(), store, c); err != nil {
				return err
			}

			logger.Info("User category saved", zap.String("category", c.String()))
			fmt.Fprintf(out, "Category set to %s\n", c)
			return nil
		},
	})

	return cmd
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			c, err := resolveCategory(cmd.Context(), cfg, "")
			if err != nil {
				return err
			}

			srv := server.NewServer(
				initializePlanner(cfg),
				cfg.Server.Addr,
				c,
				cfg.Server.GetShutdownTimeout(),
				logger,
			)
			return srv.Start()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: server.addr from config)")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

// resolveCategory picks the category from the flag, then the stored
// preference, then the config default
func resolveCategory(ctx context.Context, cfg *config.Config, flag string) (holiday.Category, error) {
	if flag != "" {
		return parseCategoryArg(flag)
	}

	store, err := prefs.Open(cfg.Preferences.Backend, cfg.Preferences.Path, logger)
	if err != nil {
		logger.Warn("Failed to open preferences, using configured category",
			zap.String("path", cfg.Preferences.Path),
			zap.Error(err))
		return cfg.DefaultCategory(), nil
	}
	defer store.Close()

	c, err := prefs.LoadCategory(ctx, store, cfg.DefaultCategory())
	if err != nil {
		logger.Warn("Failed to read stored category, using configured category", zap.Error(err))
	}
	return c, nil
}

// parseCategoryArg is the strict form of holiday.ParseCategory for user input
func parseCategoryArg(s string) (holiday.Category, error) {
	c := holiday.ParseCategory(s)
	if c == holiday.CategoryCitizen && strings.ToLower(strings.TrimSpace(s)) != string(holiday.CategoryCitizen) {
		return "", fmt.Errorf("unknown category %q (want citizen, soldier or kevah)", s)
	}
	return c, nil
}

func initializePlanner(cfg *config.Config) *planner.Planner {
	var source holiday.Source

	switch cfg.Calendar.Source {
	case "file":
		logger.Info("Using holiday file", zap.String("file", cfg.Calendar.FallbackFile))
		fs := holiday.NewFileSource(cfg.Calendar.FallbackFile, logger)
		if err := fs.Load(); err != nil {
			logger.Warn("Failed to load holiday file, continuing without holidays", zap.Error(err))
		}
		source = fs

	case "composite":
		logger.Info("Using hebcal with holiday file fallback",
			zap.String("file", cfg.Calendar.FallbackFile))
		composite := holiday.NewCompositeSource(
			holiday.NewHebcalSource(cfg.Calendar.Locale, logger),
			holiday.NewFileSource(cfg.Calendar.FallbackFile, logger),
			logger,
		)
		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback holidays, continuing with hebcal only",
				zap.Error(err))
		}
		source = composite

	default:
		source = holiday.NewHebcalSource(cfg.Calendar.Locale, logger)
	}

	resolver := holiday.NewResolver(source, cfg.Calendar.GetCacheTTL(), logger)
	return planner.NewPlanner(resolver, logger)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// keep stdout for the receipt
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
