package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/auth"
	"github.com/diewo77/snack-manager/internal/config"
	"github.com/diewo77/snack-manager/internal/handlers"
	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/services"
	"github.com/diewo77/snack-manager/internal/ws"
)

// New constructs the root http.Handler with all routes and middlewares
// applied. hub may be nil in tests that don't exercise notifications.
func New(db *gorm.DB, hub *ws.Hub, cfg config.Config, adminHash []byte) http.Handler {
	mux := http.NewServeMux()

	var notifier services.Notifier
	if hub != nil {
		notifier = hub
	}

	orderSvc := services.NewOrderService(db, notifier)
	productSvc := services.NewProductService(db)
	settingsSvc := services.NewSettingsService(db)
	statsSvc := services.NewStatsService(db)

	threshold := time.Duration(cfg.PriorityThresholdMin) * time.Minute
	oh := handlers.NewOrderHandler(orderSvc, settingsSvc, threshold)
	ph := handlers.NewProductHandler(productSvc)
	sh := handlers.NewSettingsHandler(settingsSvc)
	ah := handlers.NewAuthHandler(db, adminHash)
	sth := handlers.NewStaffHandler(db)
	stats := handlers.NewStatsHandler(statsSvc)

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Session endpoints
	mux.Handle("/login", post(http.HandlerFunc(ah.Login)))
	mux.Handle("/logout", post(http.HandlerFunc(ah.Logout)))
	mux.Handle("/me", authed(http.HandlerFunc(ah.Me)))

	// Order endpoints. List/Create via /orders, the rest via POST subpaths.
	mux.Handle("/orders", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.List(w, r)
		case http.MethodPost:
			oh.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})))
	mux.Handle("/orders/get", authed(get(http.HandlerFunc(oh.Get))))
	mux.Handle("/orders/status", authed(post(http.HandlerFunc(oh.UpdateStatus))))
	mux.Handle("/orders/update", authed(post(http.HandlerFunc(oh.Update))))
	mux.Handle("/orders/delete", authed(post(http.HandlerFunc(oh.Delete))))
	mux.Handle("/orders/delete/cancel", authed(post(http.HandlerFunc(oh.CancelDelete))))
	mux.Handle("/orders/ticket", authed(get(http.HandlerFunc(oh.Ticket))))
	mux.Handle("/clients/history", authed(get(http.HandlerFunc(oh.ClientHistory))))

	// Catalog endpoints
	mux.Handle("/products", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})))
	mux.Handle("/products/update", authed(post(http.HandlerFunc(ph.Update))))
	mux.Handle("/products/delete", authed(post(http.HandlerFunc(ph.Delete))))
	mux.Handle("/products/toggle", authed(post(http.HandlerFunc(ph.Toggle))))

	// Settings endpoints. Reads are open to any session, writes are admin-only.
	mux.Handle("/settings", authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPost:
			adminOnly(http.HandlerFunc(sh.Update)).ServeHTTP(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})))
	mux.Handle("/settings/themes", authed(get(http.HandlerFunc(sh.Themes))))

	// Staff endpoints, admin-only
	mux.Handle("/servers", admin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sth.List(w, r)
		case http.MethodPost:
			sth.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})))
	mux.Handle("/servers/delete", admin(post(http.HandlerFunc(sth.Delete))))

	// Stats endpoints
	mux.Handle("/stats/today", authed(get(http.HandlerFunc(stats.Today))))
	mux.Handle("/stats/top-products", authed(get(http.HandlerFunc(stats.TopProducts))))
	mux.Handle("/stats/revenue", authed(get(http.HandlerFunc(stats.Revenue))))

	// Live order notifications
	if hub != nil {
		mux.Handle("/ws", authed(http.HandlerFunc(hub.Handler)))
	}

	return middleware.Prefs(withRecover(withLogging(mux)))
}

func authed(next http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAuth(next))
}

func admin(next http.Handler) http.Handler {
	return auth.Middleware(auth.RequireAdmin(next))
}

// adminOnly guards a single method of an already-authed route.
func adminOnly(next http.Handler) http.Handler {
	return auth.RequireAdmin(next)
}

func get(next http.Handler) http.Handler {
	return allowMethod(http.MethodGet, next)
}

func post(next http.Handler) http.Handler {
	return allowMethod(http.MethodPost, next)
}

func allowMethod(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
