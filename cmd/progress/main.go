// Package main is an operator CLI for student progress records.
//
// Usage:
//
//	progress create <studentID> [studentName]
//	progress share  <recordID> <gameCode> <badgeCode>
//	progress mood   <recordID> <mood> [YYYY-MM-DD]
//	progress marks  <studentID>
//
// Results are printed to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alem-hub/learning-progress/config"
	"github.com/alem-hub/learning-progress/internal/application/command"
	"github.com/alem-hub/learning-progress/internal/application/query"
	"github.com/alem-hub/learning-progress/internal/domain/progress"
	"github.com/alem-hub/learning-progress/internal/domain/user"
	"github.com/alem-hub/learning-progress/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/learning-progress/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/learning-progress/internal/infrastructure/service"
	"github.com/alem-hub/learning-progress/pkg/logger"
	"github.com/alem-hub/learning-progress/pkg/retry"
	"github.com/alem-hub/learning-progress/pkg/timeutil"
)

var errUsage = errors.New("usage: progress [-env-file path] create|share|mood|marks ...")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// handlers groups the use cases the CLI dispatches to.
type handlers struct {
	create *command.CreateProgressRecordHandler
	share  *command.ShareBadgeHandler
	mood   *command.RecordMoodHandler
	marks  *query.GetGameMarksHandler
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("progress", flag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "optional env file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.LoadFile(*envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Logs go to stderr so stdout stays machine-readable.
	log := logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Observability.LogLevel),
		Format: logger.Format(cfg.Observability.LogFormat),
	})
	defer func() { _ = log.Sync() }()

	// ─────────────────────────────────────────────────────────────────────────
	// INFRASTRUCTURE
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

	var profileCache user.ProfileCache
	if !cfg.Redis.Disabled {
		cache, err := redis.NewCache(redisConfig(cfg.Redis))
		if err != nil {
			log.Warn("redis unavailable, profile cache disabled", logger.Err(err))
		} else {
			defer cache.Close()
			profileCache = redis.NewProfileCache(cache, cfg.Progress.ProfileCacheTTL)
		}
	}

	records := postgres.NewProgressRepository(conn)
	users := service.NewCachedProfileLookup(postgres.NewUserRepository(conn), profileCache, log)
	clock := timeutil.SystemClock(cfg.App.Location)

	h := handlers{
		create: command.NewCreateProgressRecordHandler(records, log),
		share:  command.NewShareBadgeHandler(records, log),
		mood:   command.NewRecordMoodHandler(records, clock, log),
		marks: query.NewGetGameMarksHandler(
			postgres.NewModuleRepository(conn),
			records,
			users,
			clock,
			query.GetGameMarksConfig{
				ModuleCode:     progress.ModuleCode(cfg.Progress.ModuleCode),
				MoodWindowDays: cfg.Progress.MoodWindowDays,
			},
			log,
		),
	}

	opCtx, cancelOp := postgres.WithQueryTimeout(ctx, cfg.Database.QueryTimeout)
	defer cancelOp()

	result, err := h.dispatch(opCtx, fs.Args(), cfg.App.Location)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// dispatch runs one subcommand and returns its JSON-encodable result.
func (h handlers) dispatch(ctx context.Context, args []string, loc *time.Location) (any, error) {
	if len(args) == 0 {
		return nil, errUsage
	}
	name, rest := args[0], args[1:]

	switch name {
	case "create":
		if len(rest) < 1 || len(rest) > 2 {
			return nil, errUsage
		}
		cmd := command.CreateProgressRecordCommand{StudentID: rest[0]}
		if len(rest) == 2 {
			cmd.StudentName = rest[1]
		}
		res, err := h.create.Handle(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return res.Record, nil

	case "share":
		if len(rest) != 3 {
			return nil, errUsage
		}
		res, err := h.share.Handle(ctx, command.ShareBadgeCommand{
			StudentTaskID: rest[0],
			GameCode:      progress.GameCode(rest[1]),
			BadgeCode:     progress.BadgeCode(rest[2]),
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"outcome":       res.Outcome,
			"field":         res.Field.String(),
			"matchedCount":  res.MatchedCount,
			"modifiedCount": res.ModifiedCount,
		}, nil

	case "mood":
		if len(rest) < 2 || len(rest) > 3 {
			return nil, errUsage
		}
		cmd := command.RecordMoodCommand{StudentTaskID: rest[0], Mood: rest[1]}
		if len(rest) == 3 {
			d, err := time.ParseInLocation(timeutil.DateLayout, rest[2], loc)
			if err != nil {
				return nil, fmt.Errorf("invalid date: %w", err)
			}
			cmd.Date = d
		}
		res, err := h.mood.Handle(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return map[string]string{
			"date": timeutil.FormatDateTime(res.Entry.Date),
			"mood": res.Entry.Mood,
		}, nil

	case "marks":
		if len(rest) != 1 {
			return nil, errUsage
		}
		return h.marks.Handle(ctx, query.GetGameMarksQuery{StudentID: rest[0]})

	default:
		return nil, fmt.Errorf("unknown command %q: %w", name, errUsage)
	}
}

func redisConfig(c config.RedisConfig) redis.Config {
	rc := redis.DefaultConfig()
	if c.Host != "" {
		rc.Host = c.Host
	}
	if c.Port > 0 {
		rc.Port = c.Port
	}
	rc.Password = c.Password
	rc.DB = c.DB
	if c.PoolSize > 0 {
		rc.PoolSize = c.PoolSize
	}
	if c.MinIdleConns > 0 {
		rc.MinIdleConns = c.MinIdleConns
	}
	if c.DialTimeout > 0 {
		rc.DialTimeout = c.DialTimeout
	}
	if c.ReadTimeout > 0 {
		rc.ReadTimeout = c.ReadTimeout
	}
	if c.WriteTimeout > 0 {
		rc.WriteTimeout = c.WriteTimeout
	}
	return rc
}
