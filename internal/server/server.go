package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironquest/IronQuest_Go/internal/achievement"
	"github.com/ironquest/IronQuest_Go/internal/activity"
	"github.com/ironquest/IronQuest_Go/internal/club"
	"github.com/ironquest/IronQuest_Go/internal/database"
	"github.com/ironquest/IronQuest_Go/internal/duel"
	"github.com/ironquest/IronQuest_Go/internal/handler"
	"github.com/ironquest/IronQuest_Go/internal/logger"
	"github.com/ironquest/IronQuest_Go/internal/metrics"
	"github.com/ironquest/IronQuest_Go/internal/party"
	"github.com/ironquest/IronQuest_Go/internal/place"
	"github.com/ironquest/IronQuest_Go/internal/progression"
	"github.com/ironquest/IronQuest_Go/internal/quest"
	"github.com/ironquest/IronQuest_Go/internal/raid"
	"github.com/ironquest/IronQuest_Go/internal/territory"
)

// Services bundles everything the HTTP surface needs. Keeping it a
// struct stops the constructor signature from growing a parameter per
// tracker.
type Services struct {
	Progression progression.Service
	Quest       quest.Service
	Achievement achievement.Service
	Duel        duel.Service
	Raid        raid.Service
	Party       party.Service
	Club        club.Service
	Territory   territory.Service
	Activity    activity.Service
	Places      place.Lookup
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	questHandler := handler.NewQuestHandler(svcs.Quest)
	achievementHandler := handler.NewAchievementHandler(svcs.Achievement)
	duelHandler := handler.NewDuelHandler(svcs.Duel)
	raidHandler := handler.NewRaidHandler(svcs.Raid)
	partyHandler := handler.NewPartyHandler(svcs.Party)
	clubHandler := handler.NewClubHandler(svcs.Club)
	territoryHandler := handler.NewTerritoryHandler(svcs.Territory)
	activityHandler := handler.NewActivityHandler(svcs.Activity)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Workout submission is the write path everything else hangs off
		r.Post("/workouts", handler.HandleRecordWorkout(svcs.Progression))
		r.Get("/exercises", handler.HandleListExercises())

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handler.HandleRegisterUser(svcs.Progression))
			r.Post("/equip", handler.HandleEquipItem(svcs.Progression))
			r.Post("/unequip", handler.HandleUnequipItem(svcs.Progression))

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", handler.HandleGetUser(svcs.Progression))
				r.Get("/quests", questHandler.HandleGetUserQuests)
				r.Get("/achievements", achievementHandler.HandleGetUserAchievements)
				r.Get("/duels", duelHandler.HandleGetUserDuels)
				r.Get("/party", partyHandler.HandleGetPartyForUser)
				r.Get("/club", clubHandler.HandleGetClubForUser)
				r.Get("/activity", activityHandler.HandleGetUserActivity)
			})
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(svcs.Progression))

		r.Route("/quests", func(r chi.Router) {
			r.Post("/claim", questHandler.HandleClaimQuestReward)
		})

		r.Get("/achievements", achievementHandler.HandleGetCatalog)

		r.Route("/duels", func(r chi.Router) {
			r.Post("/", duelHandler.HandleCreateDuel)
			r.Get("/{duelID}", duelHandler.HandleGetDuel)
			r.Post("/{duelID}/accept", duelHandler.HandleAcceptDuel)
			r.Post("/{duelID}/decline", duelHandler.HandleDeclineDuel)
		})

		r.Route("/raids", func(r chi.Router) {
			r.Post("/", raidHandler.HandleSpawnBoss)
			r.Get("/active", raidHandler.HandleGetActiveBoss)
			r.Get("/{bossID}", raidHandler.HandleGetBoss)
		})

		r.Route("/parties", func(r chi.Router) {
			r.Post("/", partyHandler.HandleCreateParty)
			r.Post("/join", partyHandler.HandleJoinParty)
			r.Post("/leave", partyHandler.HandleLeaveParty)
			r.Post("/kick", partyHandler.HandleKickMember)
			r.Post("/disband", partyHandler.HandleDisbandParty)
			r.Post("/regenerate-code", partyHandler.HandleRegenerateInviteCode)
			r.Get("/{partyID}", partyHandler.HandleGetParty)
		})

		r.Route("/clubs", func(r chi.Router) {
			r.Post("/", clubHandler.HandleCreateClub)
			r.Post("/join", clubHandler.HandleJoinClub)
			r.Post("/leave", clubHandler.HandleLeaveClub)
			r.Get("/{clubID}", clubHandler.HandleGetClub)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Post("/", territoryHandler.HandleRegisterLocation)
			r.Get("/", territoryHandler.HandleListLocations)
			r.Get("/{locationID}", territoryHandler.HandleGetLocation)
			r.Post("/{locationID}/claim", territoryHandler.HandleClaimLocation)
			r.Post("/{locationID}/challenge", territoryHandler.HandleChallengeLocation)
			r.Post("/{locationID}/defend", territoryHandler.HandleDefendLocation)
		})

		r.Get("/activity", activityHandler.HandleGetRecentActivity)
		r.Get("/places/{placeID}", handler.HandleGetPlace(svcs.Places))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
