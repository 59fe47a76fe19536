package main

import (
	"log"
	"net"
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/net/netutil"

	"focusday-backend/internal/achievements"
	"focusday-backend/internal/analytics"
	"focusday-backend/internal/auth"
	"focusday-backend/internal/config"
	"focusday-backend/internal/db"
	"focusday-backend/internal/goal"
	"focusday-backend/internal/logger"
	"focusday-backend/internal/middleware"
	"focusday-backend/internal/quotes"
	"focusday-backend/internal/stats"
	"focusday-backend/internal/workday"
)

func main() {
	cfg := config.Load()

	if _, err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	}); err != nil {
		log.Fatal("❌ Failed to init logger:", err)
	}

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatal("❌ Failed to connect DB:", err)
	}
	defer database.Close()

	log.Println("✅ Connected to PostgreSQL!")

	secret := []byte(cfg.JWTSecret)
	authMW := auth.New(secret)
	sink := analytics.DBSink{DB: database}

	days := workday.NewStore(database)
	goals := goal.NewStore(database)
	unlocks := achievements.NewStore(database)

	engine := &stats.Engine{Days: days}
	evaluator := &achievements.Engine{Store: unlocks, Events: sink}
	recomputer := &stats.Recomputer{Engine: engine, Achievements: evaluator}

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- AUTH API -----
	mux.HandleFunc("/auth/register", methodPOST(auth.RegisterHandler(database, secret)))
	mux.HandleFunc("/auth/login", methodPOST(auth.LoginHandler(database, secret)))
	mux.HandleFunc("/auth/me", methodGET(authMW.Wrap(auth.MeHandler(database))))
	mux.HandleFunc("/auth/logout", methodPOST(authMW.Wrap(auth.LogoutHandler())))
	mux.HandleFunc("/auth/account", method(http.MethodDelete, authMW.Wrap(auth.DeleteAccountHandler(database))))

	// ----- DAY / TASK API -----
	mux.HandleFunc("/day", methodGET(authMW.Wrap(workday.GetDayHandler(days))))
	mux.HandleFunc("/days/recent", methodGET(authMW.Wrap(stats.RecentDaysHandler(engine))))
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(workday.GetTasksHandler(days))(w, r)
		case http.MethodPost:
			authMW.Wrap(workday.CreateTaskHandler(days, sink))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/tasks/toggle", methodPOST(authMW.Wrap(workday.ToggleTaskHandler(days, sink, recomputer))))
	mux.HandleFunc("/tasks/delete", methodPOST(authMW.Wrap(workday.DeleteTaskHandler(days, sink))))

	// ----- SESSION API -----
	mux.HandleFunc("/session", methodGET(authMW.Wrap(workday.GetSessionHandler(days))))
	mux.HandleFunc("/session/start", methodPOST(authMW.Wrap(workday.StartSessionHandler(days, sink))))
	mux.HandleFunc("/session/stop", methodPOST(authMW.Wrap(workday.StopSessionHandler(days, sink, recomputer))))

	// ----- STATS / ACHIEVEMENTS / GOAL -----
	mux.HandleFunc("/stats", methodGET(authMW.Wrap(stats.StatsHandler(recomputer, goals))))
	mux.HandleFunc("/achievements", methodGET(authMW.Wrap(achievements.ListHandler(unlocks, recomputer))))
	mux.HandleFunc("/goal", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			authMW.Wrap(goal.GetHandler(goals))(w, r)
		case http.MethodPost:
			authMW.Wrap(goal.UpdateHandler(goals, sink))(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- MISC -----
	mux.HandleFunc("/quote", methodGET(quotes.Handler()))
	mux.HandleFunc("/events/app-opened", methodPOST(authMW.Wrap(analytics.AppOpenedHandler(sink))))

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Platform", "X-App-Version", "X-Session-Id"},
		AllowCredentials: true,
	})

	handler := middleware.RequestLogger(c.Handler(mux))

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		log.Fatal("❌ Failed to listen:", err)
	}
	ln = netutil.LimitListener(ln, cfg.MaxConns)

	log.Println("🚀 API server is running on :" + cfg.Port)
	log.Fatal(http.Serve(ln, handler))
}

func method(m string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case m:
			next(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

func methodGET(next http.HandlerFunc) http.HandlerFunc  { return method(http.MethodGet, next) }
func methodPOST(next http.HandlerFunc) http.HandlerFunc { return method(http.MethodPost, next) }
