package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rolodex/rolodex/internal/config"
	"github.com/rolodex/rolodex/internal/server"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
		db   string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Rolodex web server",
		Long:  "Start the HTTP server that renders the contact list, forms, and login pages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP listen port")
	cmd.Flags().StringVar(&db, "db", "contacts.db", "SQLite file path or postgres:// DSN")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("database.path", cmd.Flags().Lookup("db"))

	return cmd
}

func runServe(dev bool) error {
	defaults := config.DefaultYAMLConfig()
	viper.SetDefault("server.host", defaults.Server.Host)
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	viper.SetDefault("database.path", defaults.Database.Path)
	viper.SetDefault("auth.session_ttl", defaults.Auth.SessionTTL)
	viper.SetDefault("auth.seed_username", defaults.Auth.SeedUsername)
	viper.SetDefault("auth.seed_password", defaults.Auth.SeedPassword)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)

	logger := newLogger(dev)

	// 1. Open the store (auto-creates the database file on first run).
	dbPath := viper.GetString("database.path")
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened", "db", dbPath)

	// 2. Auth service and first-run seeding.
	secret := viper.GetString("auth.session_secret")
	if secret == "" {
		secret = "rolodex-dev-secret-change-me"
		logger.Warn("auth.session_secret not set, using insecure development default")
	}
	ttl, err := time.ParseDuration(viper.GetString("auth.session_ttl"))
	if err != nil {
		ttl = 24 * time.Hour
	}
	authSvc := service.NewAuthService(st, secret, ttl,
		viper.GetString("auth.seed_username"),
		viper.GetString("auth.seed_password"),
	)
	hasAccounts, err := st.HasAnyAccount(context.Background())
	if err != nil {
		return fmt.Errorf("check accounts: %w", err)
	}
	if err := authSvc.EnsureSeedAccount(context.Background()); err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	if !hasAccounts {
		logger.Info("first run, seed account created", "username", authSvc.SeedUsername)
	}

	// 3. Build and start the HTTP server.
	srvCfg := server.DefaultConfig()
	srvCfg.Host = viper.GetString("server.host")
	srvCfg.Port = viper.GetInt("server.port")
	if d, err := time.ParseDuration(viper.GetString("server.shutdown_timeout")); err == nil {
		srvCfg.ShutdownTimeout = d
	}

	srv, err := server.New(srvCfg, st, authSvc, logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	fmt.Printf("→ Rolodex\n")
	fmt.Printf("→ Listening on http://%s:%d\n", srvCfg.Host, srvCfg.Port)
	fmt.Printf("→ Database:   %s\n", dbPath)
	fmt.Println()

	return srv.ListenAndServe()
}

func newLogger(dev bool) *slog.Logger {
	level := slog.LevelInfo
	switch viper.GetString("logging.level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if dev {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if viper.GetString("logging.format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
