package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/skillnet/skillnet/internal/core/ports"
	"github.com/skillnet/skillnet/internal/core/service"
	"github.com/skillnet/skillnet/internal/infrastructure/db/redis"
	"github.com/skillnet/skillnet/internal/infrastructure/rest"
	"github.com/skillnet/skillnet/internal/infrastructure/store"
	"github.com/skillnet/skillnet/internal/pkg/config"
	"github.com/skillnet/skillnet/pkg/logger"
)

type globalFlags struct {
	apiURL   string
	logLevel string
	pretty   bool
}

// app holds the client wiring shared by every command.
type app struct {
	flags globalFlags

	cfg     *config.Config
	log     zerolog.Logger
	tokens  ports.TokenStore
	api     *rest.Client
	session *service.SessionManager
	board   *service.AppointmentBoard
	nav     *service.Navigator

	rdb *goredis.Client
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	if a.flags.apiURL != "" {
		a.cfg.Client.APIURL = a.flags.apiURL
	}
	if a.flags.logLevel != "" {
		a.cfg.LogLevel = a.flags.logLevel
	}
	if err := a.cfg.Client.Validate(); err != nil {
		return err
	}

	a.log = logger.Init(logger.Options{
		Level:   a.cfg.LogLevel,
		Pretty:  a.flags.pretty,
		Output:  cmd.ErrOrStderr(),
		Service: "skillnet",
	})

	tokens, err := a.tokenStore(cmd.Context())
	if err != nil {
		return err
	}
	a.tokens = tokens

	api, err := rest.New(rest.Options{
		BaseURL: a.cfg.Client.APIURL,
		Timeout: a.cfg.Client.HTTPTimeout,
		Tokens:  tokens,
		Logger:  a.log,
	})
	if err != nil {
		return err
	}
	a.api = api

	a.session = service.NewSessionManager(api, tokens, a.log)
	api.OnUnauthorized(a.session.Expire)
	a.board = service.NewAppointmentBoard(api, a.session, a.log)
	a.nav = service.NewNavigator(a.session)
	return nil
}

func (a *app) tokenStore(ctx context.Context) (ports.TokenStore, error) {
	switch a.cfg.Client.TokenStore {
	case config.TokenStoreMemory:
		return store.NewMemory(), nil
	case config.TokenStoreRedis:
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
			Timeout:  a.cfg.Client.HTTPTimeout,
		})
		if err != nil {
			return nil, err
		}
		a.rdb = rdb
		return redis.NewTokenStore(rdb, a.cfg.Client.TokenTTL), nil
	default:
		path := a.cfg.Client.TokenFile
		if path == "" {
			p, err := store.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return store.NewFile(path), nil
	}
}

// resolve bootstraps the session from the stored token and waits for the
// role to settle before any role-dependent output.
func (a *app) resolve(ctx context.Context) error {
	if err := a.session.Init(ctx); err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	return a.session.Wait(ctx)
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
		a.rdb = nil
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
