package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironquest/IronQuest_Go/internal/achievement"
	"github.com/ironquest/IronQuest_Go/internal/activity"
	"github.com/ironquest/IronQuest_Go/internal/bootstrap"
	"github.com/ironquest/IronQuest_Go/internal/club"
	"github.com/ironquest/IronQuest_Go/internal/config"
	"github.com/ironquest/IronQuest_Go/internal/database"
	"github.com/ironquest/IronQuest_Go/internal/duel"
	"github.com/ironquest/IronQuest_Go/internal/event"
	"github.com/ironquest/IronQuest_Go/internal/party"
	"github.com/ironquest/IronQuest_Go/internal/place"
	"github.com/ironquest/IronQuest_Go/internal/progression"
	"github.com/ironquest/IronQuest_Go/internal/quest"
	"github.com/ironquest/IronQuest_Go/internal/raid"
	"github.com/ironquest/IronQuest_Go/internal/scheduler"
	"github.com/ironquest/IronQuest_Go/internal/server"
	"github.com/ironquest/IronQuest_Go/internal/territory"
	"github.com/ironquest/IronQuest_Go/internal/validation"
	"github.com/ironquest/IronQuest_Go/internal/worker"
)

const (
	migrationsDir   = "migrations"
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx := context.Background()

	// Storage backend: postgres gets migrations and a connection pool,
	// memory needs neither.
	var dbPool database.Pool
	var repos *bootstrap.Repositories
	if cfg.Storage == config.StoragePostgres {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			slog.Error("Environment validation failed", "error", err)
			os.Exit(1)
		}
		for _, w := range warnings {
			slog.Warn(w)
		}

		if err := database.Migrate(ctx, cfg.GetDBConnString(), migrationsDir); err != nil {
			slog.Error("Failed to apply database migrations", "error", err)
			os.Exit(1)
		}

		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			slog.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		dbPool = pool
		repos = bootstrap.InitializePostgresRepositories(pool)
	} else {
		repos = bootstrap.InitializeMemoryRepositories()
	}

	// Config files are schema-validated before loading so a bad deploy
	// fails fast with a precise error.
	schemaValidator := validation.NewSchemaValidator()
	if err := schemaValidator.ValidateFile(cfg.QuestPoolPath, config.SchemaPathQuestPool); err != nil {
		slog.Error("Quest pool failed schema validation", "error", err)
		os.Exit(1)
	}
	if err := schemaValidator.ValidateFile(cfg.PlaceDirectoryPath, config.SchemaPathPlaceDirectory); err != nil {
		slog.Error("Place directory failed schema validation", "error", err)
		os.Exit(1)
	}

	questPool, err := quest.LoadQuestPool(cfg.QuestPoolPath)
	if err != nil {
		slog.Error("Failed to load quest pool", "error", err)
		os.Exit(1)
	}

	directory, err := place.LoadDirectory(cfg.PlaceDirectoryPath)
	if err != nil {
		slog.Error("Failed to load place directory", "error", err)
		os.Exit(1)
	}
	places, err := place.NewCachedLookup(directory, cfg.PlaceCacheSize)
	if err != nil {
		slog.Error("Failed to create place cache", "error", err)
		os.Exit(1)
	}

	eventBus := event.NewMemoryBus()

	// Each randomized service gets its own source; rand.Rand is not
	// safe for concurrent use.
	partyRng := rand.New(rand.NewSource(time.Now().UnixNano()))
	territoryRng := rand.New(rand.NewSource(time.Now().UnixNano() + 1))

	progressionService := progression.NewService(repos.User, eventBus, nil)
	questService := quest.NewService(repos.Quest, repos.User, progressionService, eventBus, questPool, nil)
	achievementService := achievement.NewService(repos.Achievement, eventBus, nil)
	duelService := duel.NewService(repos.Duel, repos.User, eventBus, nil)
	raidService := raid.NewService(repos.Raid, eventBus, nil)
	partyService := party.NewService(repos.Party, eventBus, partyRng, nil)
	clubService := club.NewService(repos.Club, repos.User, repos.Territory, nil)
	territoryService := territory.NewService(repos.Territory, repos.Club, repos.User, eventBus, territoryRng, nil)
	activityService := activity.NewService(repos.Activity, nil)

	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:           eventBus,
		QuestService:       questService,
		AchievementService: achievementService,
		DuelService:        duelService,
		RaidService:        raidService,
		ActivityService:    activityService,
	}); err != nil {
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	dailyResetWorker := worker.NewDailyResetWorker(questService)
	dailyResetWorker.Start()
	weeklyResetWorker := worker.NewWeeklyResetWorker(questService)
	weeklyResetWorker.Start()

	taskPool := worker.NewPool(bootstrap.BackfillWorkerCount, bootstrap.BackfillQueueSize)
	taskPool.Start()
	if err := bootstrap.RunMilestoneBackfill(ctx, repos.User, questService, taskPool); err != nil {
		// Backfill failure is not fatal; quests are also ensured on registration.
		slog.Error("Milestone backfill failed", "error", err)
	}

	sched := scheduler.New(taskPool)
	bootstrap.ScheduleDuelSweep(sched, duelService)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		Progression: progressionService,
		Quest:       questService,
		Achievement: achievementService,
		Duel:        duelService,
		Raid:        raidService,
		Party:       partyService,
		Club:        clubService,
		Territory:   territoryService,
		Activity:    activityService,
		Places:      places,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:            srv,
		DailyResetWorker:  dailyResetWorker,
		WeeklyResetWorker: weeklyResetWorker,
		Scheduler:         sched,
		TaskPool:          taskPool,
	})
}
