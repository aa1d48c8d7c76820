// Package main applies the database schema of the learning progress service
// and seeds the module configuration.
//
// Usage:
//
//	migrate            apply pending migrations and seed MD01
//	migrate -down      revert the latest migration
//	migrate -no-seed   apply migrations only
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alem-hub/learning-progress/config"
	"github.com/alem-hub/learning-progress/internal/domain/module"
	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/learning-progress/pkg/logger"
	"github.com/alem-hub/learning-progress/pkg/retry"
	"github.com/alem-hub/learning-progress/pkg/timeutil"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "optional env file")
	down := fs.Bool("down", false, "revert the latest migration")
	noSeed := fs.Bool("no-seed", false, "skip seeding module configuration")
	examDate := fs.String("exam-date", "", "exam date of the seeded module, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION & LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		Format:    logger.Format(cfg.Observability.LogFormat),
		AddCaller: true,
	}).With(logger.Component("migrate"))
	defer func() { _ = log.Sync() }()

	// ─────────────────────────────────────────────────────────────────────────
	// 2. DATABASE
	// ─────────────────────────────────────────────────────────────────────────
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := postgres.ConnectWithRetry(connectCtx, cfg.Database.URL, postgres.PoolOptions{
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
	}, retry.ConnectRetrier(func(attempt int, err error, delay time.Duration) {
		log.Warn("database not ready, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Err(err),
		)
	}))
	if err != nil {
		return err
	}
	defer conn.Close()

	migrator := postgres.NewMigrator(conn)

	ctx, cancelOp := postgres.WithQueryTimeout(ctx, cfg.Database.QueryTimeout)
	defer cancelOp()

	if *down {
		version, err := migrator.Rollback(ctx)
		if err != nil {
			return err
		}
		log.Info("migration reverted", logger.Int("version", version))
		return nil
	}

	applied, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	log.Info("migrations applied", logger.Int("count", applied))

	if *noSeed {
		return nil
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 3. SEED
	// ─────────────────────────────────────────────────────────────────────────
	seed, err := defaultModule(progress.ModuleCode(cfg.Progress.ModuleCode), *examDate, cfg.App.Location)
	if err != nil {
		return err
	}
	if err := postgres.NewModuleRepository(conn).Save(ctx, seed); err != nil {
		return err
	}
	log.Info("module seeded",
		logger.ModuleCode(string(seed.ModuleCode)),
		logger.Int("games", len(seed.Games)),
	)

	return nil
}

// defaultModule returns the stock configuration of the four-game module.
func defaultModule(code progress.ModuleCode, examDate string, loc *time.Location) (*module.Config, error) {
	if code == "" {
		code = progress.ModuleMD01
	}
	cfg := &module.Config{
		ModuleCode: code,
		Name:       "Module 1",
		Games: []module.GameConfig{
			{Code: progress.GameGM01, Name: "Tasks", AchievementMargin1: float(50), AchievementMargin2: float(100)},
			{Code: progress.GameGM02, Name: "Mind maps"},
			{Code: progress.GameGM03, Name: "Q&A", AchievementMargin1: float(30), AchievementMargin2: float(60), LikesMargin: float(10)},
			{Code: progress.GameGM04, Name: "Breathing"},
		},
	}

	if examDate != "" {
		if loc == nil {
			loc = time.UTC
		}
		d, err := time.ParseInLocation(timeutil.DateLayout, examDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid -exam-date: %w", err)
		}
		cfg.ExamDate = &d
	}

	return cfg, nil
}

func float(v float64) *float64 { return &v }
