// Command skillnet-emulator serves the SkillNet backend REST contract for
// local development and end-to-end testing of the client.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/skillnet/skillnet/internal/api"
	emulatorports "github.com/skillnet/skillnet/internal/emulator/ports"
	"github.com/skillnet/skillnet/internal/emulator/service"
	"github.com/skillnet/skillnet/internal/infrastructure/db/memory"
	"github.com/skillnet/skillnet/internal/infrastructure/db/mongo"
	"github.com/skillnet/skillnet/internal/infrastructure/db/redis"
	"github.com/skillnet/skillnet/internal/pkg/config"
	"github.com/skillnet/skillnet/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "skillnet-emulator",
		Short:        "SkillNet backend emulator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			port, _ := cmd.Flags().GetString("port")
			pretty, _ := cmd.Flags().GetBool("pretty")
			return runServer(port, pretty)
		},
	}
	rootCmd.Flags().String("port", "", "Listen port (overrides PORT)")
	rootCmd.Flags().Bool("pretty", false, "Human-friendly log output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type repositories struct {
	users        emulatorports.UserRepository
	categories   emulatorports.CategoryRepository
	providers    emulatorports.ProviderRepository
	appointments emulatorports.AppointmentRepository
}

func runServer(port string, pretty bool) error {
	cfg := config.Load()
	if port != "" {
		cfg.Emulator.Port = port
	}
	if err := cfg.Emulator.Validate(); err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  pretty || cfg.IsDev(),
		Service: "skillnet-emulator",
	})

	ctx := context.Background()

	var (
		repos repositories
		db    *mongodriver.Database
	)
	switch cfg.Emulator.Store {
	case config.StoreMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		r := mongo.NewRepositories(database)
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
		repos = repositories{r.Users, r.Categories, r.Providers, r.Appointments}
		db = database
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	default:
		repos = repositories{
			users:        memory.NewUserRepository(),
			categories:   memory.NewCategoryRepository(),
			providers:    memory.NewProviderRepository(),
			appointments: memory.NewAppointmentRepository(),
		}
		log.Info().Msg("using in-memory store")
	}

	var rdb *goredis.Client
	if cfg.Emulator.UseRedis {
		c, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer c.Close()
		rdb = c
	}

	if err := service.SeedCategories(ctx, repos.categories, service.DefaultCategories); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	auth := service.NewAuthService(repos.users, repos.providers, repos.categories, cfg.Emulator.JWTSecret, cfg.Emulator.TokenTTL, log)
	if cfg.Emulator.AdminEmail != "" {
		if err := auth.EnsureAdmin(ctx, cfg.Emulator.AdminName, cfg.Emulator.AdminEmail, cfg.Emulator.AdminPassword); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	e, err := api.NewRouter(api.Deps{
		Auth:          auth,
		Catalog:       service.NewCatalogService(repos.categories, repos.providers, log),
		Appointments:  service.NewAppointmentService(repos.appointments, repos.providers, repos.categories, repos.users, log),
		Dashboard:     service.NewDashboardService(repos.users, repos.categories, repos.providers, repos.appointments),
		JWTSecret:     cfg.Emulator.JWTSecret,
		Auth0StartURL: cfg.Emulator.Auth0StartURL,
		Mongo:         db,
		Redis:         rdb,
		Registry:      reg,
		Logger:        log,
	})
	if err != nil {
		return err
	}

	go serve(e.Start, ":"+cfg.Emulator.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func serve(start func(string) error, addr string, log zerolog.Logger) {
	log.Info().Str("addr", addr).Msg("starting server")
	if err := start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
