package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-newswatch/internal/auth"
	"github.com/goliatone/go-newswatch/internal/config"
	"github.com/goliatone/go-newswatch/internal/engine"
	"github.com/goliatone/go-newswatch/internal/fetch"
	"github.com/goliatone/go-newswatch/internal/httpapi"
	"github.com/goliatone/go-newswatch/internal/notify"
	"github.com/goliatone/go-newswatch/internal/store"
)

// zeroLogger adapts zerolog to the auth.Logger surface the internal packages
// depend on.
type zeroLogger struct {
	log zerolog.Logger
}

func (z zeroLogger) Debug(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zeroLogger) Info(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zeroLogger) Warn(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zeroLogger) Error(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger := zeroLogger{
		log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		users   store.UserStore
		stories store.StoryStore
		home    store.HomeStore
	)

	if cfg.MemoryStore {
		logger.Warn("running against the in-memory store, data is not persisted")
		mem := store.NewMemory()
		users, stories, home = mem.Users(), mem.Stories(), mem.Home()
	} else {
		client, err := store.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("mongo connect: %w", err)
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				logger.Warn("mongo disconnect error: %v", err)
			}
		}()

		db := client.Database(cfg.MongoDB)
		mongoUsers := store.NewMongoUsers(db)
		if err := mongoUsers.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		users = mongoUsers
		stories = store.NewMongoStories(db)
		home = store.NewMongoHome(db)
	}

	fetcher := fetch.New(users, home, cfg.Feeds, logger)
	dispatcher := notify.NewDispatcher(0, logger, fetcher)
	defer dispatcher.Close()

	eng := engine.New(users, stories, home,
		engine.WithLogger(logger),
		engine.WithSink(dispatcher),
		engine.WithMaxFilters(cfg.MaxFilters),
	)

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.Issuer, logger)
	auther := auth.NewAuthenticator(users, tokens).WithLogger(logger)

	srv := httpapi.New(eng, auther, tokens, logger)

	go fetcher.Run(ctx, cfg.RefreshEvery)

	errc := make(chan error, 1)
	go func() {
		logger.Info("newswatch listening on %s", cfg.Addr)
		errc <- srv.Listen(cfg.Addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return srv.Shutdown()
	}
}
