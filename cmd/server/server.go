package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/arenaforge/arena-api/internal/agents"
	"github.com/arenaforge/arena-api/internal/ai"
	"github.com/arenaforge/arena-api/internal/config"
	"github.com/arenaforge/arena-api/internal/demo"
	"github.com/arenaforge/arena-api/internal/errors"
	"github.com/arenaforge/arena-api/internal/orchestrators/game"
	"github.com/arenaforge/arena-api/internal/pkg/clock"
	"github.com/arenaforge/arena-api/internal/pkg/idgen"
	redisclient "github.com/arenaforge/arena-api/internal/redis"
	"github.com/arenaforge/arena-api/internal/repositories/events"
	"github.com/arenaforge/arena-api/internal/repositories/sessions"
	"github.com/arenaforge/arena-api/internal/scheduler"
	"github.com/arenaforge/arena-api/internal/sequencer"
)

var (
	grpcPort      int
	demoMode      bool
	roguelikeMode bool
	demoGenre     string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the arena server",
	Long:  `Start the arena server with the configured storage backend. With --demo or --roguelike it also plays an autonomous showcase session.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC port (overrides PORT)")
	serverCmd.Flags().BoolVar(&demoMode, "demo", false, "play the autonomous showcase session")
	serverCmd.Flags().BoolVar(&roguelikeMode, "roguelike", false, "play the autonomous roguelike run")
	serverCmd.Flags().StringVar(&demoGenre, "genre", "factory", "demo genre (factory, datacenter, city)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	port := cfg.Port
	if grpcPort != 0 {
		port = fmt.Sprintf("%d", grpcPort)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	eventRepo, archive, cleanup, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	seq, err := sequencer.New(&sequencer.Config{
		Repo:          eventRepo,
		Clock:         clock.New(),
		CatchupLimit:  cfg.CatchupLimit,
		BootstrapTail: cfg.BootstrapTail,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %s", port)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logFunc(logger)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logFunc(logger)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", port, "storage", cfg.StorageBackend)
		if err := srv.Serve(lis); err != nil {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	if demoMode || roguelikeMode {
		engine, err := buildEngine(cfg, seq, archive, logger)
		if err != nil {
			return err
		}
		defer engine.Close()

		runner, err := demo.New(&demo.Config{
			Engine:     engine,
			DelayScale: cfg.DemoDelayScale,
			Logger:     logger,
		})
		if err != nil {
			return err
		}

		go func() {
			var err error
			if roguelikeMode {
				err = runner.RunRoguelike(ctx)
			} else {
				err = runner.Run(ctx, demoGenre)
			}
			if err != nil && ctx.Err() == nil {
				logger.Error("demo failed", "error", err)
			}
			cancel()
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("server stopped gracefully")
		}
		return nil
	case err := <-errChan:
		return err
	}
}

// buildStorage selects the event store and session archive backends.
// The returned cleanup closes whatever the backend opened.
func buildStorage(cfg *config.Config) (events.Repository, sessions.Repository, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, nil)
		if err != nil {
			return nil, nil, nil, errors.Wrap(err, "failed to create redis client")
		}
		eventRepo, err := events.NewRedisRepository(&events.RedisConfig{Client: client})
		if err != nil {
			return nil, nil, nil, err
		}
		archive, err := sessions.NewRedisRepository(&sessions.RedisConfig{Client: client})
		if err != nil {
			return nil, nil, nil, err
		}
		return eventRepo, archive, func() { _ = client.Close() }, nil

	case config.StorageSQLite:
		db, err := events.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		eventRepo, err := events.NewSQLiteRepository(&events.SQLiteConfig{DB: db})
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		// Session records are derivable from the event log, so the sqlite
		// backend keeps the archive in memory.
		return eventRepo, sessions.NewMemoryRepository(), func() { _ = db.Close() }, nil

	default:
		return events.NewMemoryRepository(), sessions.NewMemoryRepository(), func() {}, nil
	}
}

// buildEngine wires a session engine for autonomous play
func buildEngine(cfg *config.Config, seq *sequencer.Sequencer, archive sessions.Repository, logger *slog.Logger) (*game.Engine, error) {
	playerAI, err := buildPlayerAI(cfg)
	if err != nil {
		return nil, err
	}
	return game.New(&game.Config{
		Sequencer: seq,
		Archive:   archive,
		Gateway:   agents.NopGateway{},
		Scheduler: scheduler.New(),
		Clock:     clock.New(),
		IDGen:     idgen.NewUUID("arena"),
		Roller:    dice.DefaultRoller,
		PlayerAI:  playerAI,
		Logger:    logger,
		Timing: game.Timing{
			SessionDuration:     cfg.SessionDuration,
			EndingGrace:         cfg.EndingGrace,
			PlayerTurnTimeout:   cfg.PlayerTurnTimeout,
			DMTimeout:           cfg.DMTimeout,
			InterTurnDelay:      cfg.InterTurnDelay,
			ExplorationInterval: cfg.ExplorationInterval,
		},
	})
}

// buildPlayerAI loads the Lua decider when a script is configured,
// otherwise the built-in demo player heuristics drive the party.
func buildPlayerAI(cfg *config.Config) (ai.Decider, error) {
	if cfg.PlayerAIScript == "" {
		return ai.NewDemoPlayerDecider(), nil
	}
	script, err := os.ReadFile(cfg.PlayerAIScript)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read player AI script %s", cfg.PlayerAIScript)
	}
	decider, err := ai.NewLuaDecider(string(script))
	if err != nil {
		return nil, err
	}
	return decider, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func logFunc(logger *slog.Logger) grpc_logging.LoggerFunc {
	return func(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
		logger.Log(ctx, slog.Level(level), msg, fields...)
	}
}
