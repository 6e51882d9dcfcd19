package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/committee-scheduler/internal/application"
	"github.com/example/committee-scheduler/internal/calendar"
	"github.com/example/committee-scheduler/internal/config"
	"github.com/example/committee-scheduler/internal/logging"
	"github.com/example/committee-scheduler/internal/persistence/sqlite"
	"github.com/example/committee-scheduler/internal/seed"
)

const usage = `usage: scheduler <command> [flags]

commands:
  migrate     apply database migrations
  seed        load reference data from a YAML seed file
  suggest     suggest candidate dates for a committee type
  plan        build the candidate-date plan for one month
  recommend   rank upcoming meetings for a new event on a route
  deadlines   recompute the deadline chain for an event
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "scheduler: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(os.Stderr, cfg.LogLevel)
	ctx = logging.ContextWithLogger(ctx, logger)

	if err := run(ctx, cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, command string, args []string) error {
	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping storage: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	scheduling := application.NewSchedulingService(store, store, store, store, uuid.NewString, time.Now)
	events := application.NewEventService(store, store, store, store, uuid.NewString, time.Now)

	switch command {
	case "migrate":
		logger.Info("migrations applied", "dsn", cfg.SQLiteDSN)
		return nil
	case "seed":
		return runSeed(ctx, cfg, logger, store, args)
	case "suggest":
		return runSuggest(ctx, cfg, scheduling, args)
	case "plan":
		return runPlan(ctx, scheduling, args)
	case "recommend":
		return runRecommend(ctx, cfg, scheduling, args)
	case "deadlines":
		return runDeadlines(ctx, events, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runSeed(ctx context.Context, cfg config.Config, logger *slog.Logger, store *sqlite.Store, args []string) error {
	flags := flag.NewFlagSet("seed", flag.ContinueOnError)
	file := flags.String("file", cfg.SeedFile, "path to the YAML seed file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("seed: no seed file given (flag -file or SCHEDULER_SEED_FILE)")
	}

	doc, err := seed.LoadFile(*file)
	if err != nil {
		return err
	}
	applier := seed.NewApplier(seed.Stores{
		Settings:       store,
		Divisions:      store,
		Routes:         store,
		CommitteeTypes: store,
		ExceptionDates: store,
	}, uuid.NewString, time.Now)
	if err := applier.Apply(ctx, doc); err != nil {
		return err
	}
	logger.Info("seed applied", "file", *file,
		"divisions", len(doc.Divisions),
		"routes", len(doc.Routes),
		"committee_types", len(doc.CommitteeTypes),
		"exception_dates", len(doc.ExceptionDates))
	return nil
}

func runSuggest(ctx context.Context, cfg config.Config, service *application.SchedulingService, args []string) error {
	flags := flag.NewFlagSet("suggest", flag.ContinueOnError)
	committeeTypeID := flags.String("committee", "", "committee type ID")
	from := flags.String("from", "", "search start date (YYYY-MM-DD, default today)")
	days := flags.Int("days", cfg.SuggestWindowDays, "search window in days")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *committeeTypeID == "" {
		return fmt.Errorf("suggest: -committee is required")
	}
	searchFrom, err := parseDateFlag(*from)
	if err != nil {
		return err
	}

	candidates, err := service.SuggestDates(ctx, application.SuggestDatesParams{
		CommitteeTypeID: *committeeTypeID,
		SearchFrom:      searchFrom,
		WindowDays:      *days,
	})
	if err != nil {
		return err
	}
	return printJSON(candidates)
}

func runPlan(ctx context.Context, service *application.SchedulingService, args []string) error {
	now := time.Now()
	flags := flag.NewFlagSet("plan", flag.ContinueOnError)
	year := flags.Int("year", now.Year(), "plan year")
	month := flags.Int("month", int(now.Month()), "plan month (1-12)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *month < 1 || *month > 12 {
		return fmt.Errorf("plan: month %d out of range", *month)
	}

	plans, err := service.MonthlyPlan(ctx, application.MonthlyPlanParams{
		Year:  *year,
		Month: time.Month(*month),
	})
	if err != nil {
		return err
	}
	return printJSON(plans)
}

func runRecommend(ctx context.Context, cfg config.Config, service *application.SchedulingService, args []string) error {
	flags := flag.NewFlagSet("recommend", flag.ContinueOnError)
	routeID := flags.String("route", "", "route ID")
	requests := flags.Int("requests", 0, "expected number of funding requests")
	horizon := flags.Int("horizon", cfg.RecommendHorizonDays, "lookahead horizon in days")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *routeID == "" {
		return fmt.Errorf("recommend: -route is required")
	}

	recommendations, err := service.RecommendMeetings(ctx, application.RecommendMeetingsParams{
		RouteID:          *routeID,
		ExpectedRequests: *requests,
		HorizonDays:      *horizon,
	})
	if err != nil {
		return err
	}
	return printJSON(recommendations)
}

func runDeadlines(ctx context.Context, service *application.EventService, args []string) error {
	flags := flag.NewFlagSet("deadlines", flag.ContinueOnError)
	eventID := flags.String("event", "", "event ID")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *eventID == "" {
		return fmt.Errorf("deadlines: -event is required")
	}

	event, err := service.RecomputeDeadlines(ctx, *eventID)
	if err != nil {
		return err
	}
	return printJSON(event)
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return calendar.DateOf(parsed), nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
