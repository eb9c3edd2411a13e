// @title                       Yoga Studio Booking API
// @version                     1.0
// @description                 Class sessions, teachers and rosters behind bearer-token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/yogastudio/booking-system/docs"
	"github.com/yogastudio/booking-system/internal/api"
	"github.com/yogastudio/booking-system/internal/core/ports"
	"github.com/yogastudio/booking-system/internal/core/service"
	"github.com/yogastudio/booking-system/internal/infrastructure/db/memory"
	"github.com/yogastudio/booking-system/internal/infrastructure/db/mongo"
	"github.com/yogastudio/booking-system/internal/infrastructure/db/redis"
	"github.com/yogastudio/booking-system/internal/infrastructure/security"
	"github.com/yogastudio/booking-system/internal/infrastructure/seed"
	"github.com/yogastudio/booking-system/internal/pkg/config"
	"github.com/yogastudio/booking-system/pkg/logger"
)

type stores struct {
	users    ports.UserRepository
	teachers ports.TeacherRepository
	sessions ports.SessionRepository
}

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "booking-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("booking api stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var (
		st  stores
		db  *mongodrv.Database
		rdb *goredis.Client
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		st = stores{
			users:    memory.NewUserRepository(),
			teachers: memory.NewTeacherRepository(),
			sessions: memory.NewSessionRepository(),
		}
		log.Warn().Msg("using in-memory storage, data is lost on restart")
	default:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		db = database

		repos, err := mongo.NewRepositories(ctx, db)
		if err != nil {
			return err
		}
		st = stores{users: repos.Users, teachers: repos.Teachers, sessions: repos.Sessions}
	}

	var locker ports.RosterLocker
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			// Roster writes fall back to version checks alone.
			log.Warn().Err(err).Msg("redis unavailable, roster lock disabled")
		} else {
			defer client.Close()
			rdb = client
			locker = redis.NewSessionLocker(client, cfg.Roster.LockTTL)
		}
	}

	codec, err := security.NewJWTCodec(cfg.JWT.Secret)
	if err != nil {
		return err
	}
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	if cfg.SeedData {
		if err := seed.Run(ctx, seed.Stores{Users: st.users, Teachers: st.teachers, Sessions: st.sessions}, hasher, logger.Component("seed")); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(st.users, hasher, codec, cfg.JWT.TTL, logger.Component("auth")),
		Sessions:   service.NewSessionService(st.sessions, st.teachers, st.users, cfg.Roster.MaxAttempts, logger.Component("sessions")),
		Roster:     service.NewRosterService(st.sessions, st.users, locker, cfg.Roster.MaxAttempts, logger.Component("roster")),
		Users:      service.NewUserService(st.users, st.sessions, logger.Component("users")),
		Teachers:   service.NewTeacherService(st.teachers),
		Tokens:     codec,
		Principals: service.NewPrincipalLoader(st.users),
		Mongo:      db,
		Redis:      rdb,
		Logger:     logger.Component("http"),
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("driver", cfg.StorageDriver).Msg("booking api listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
