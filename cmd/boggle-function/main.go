package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/prometheus/client_golang/prometheus"

	"crosswarped.com/boggle/internal/app"
	"crosswarped.com/boggle/internal/config"
	"crosswarped.com/boggle/internal/logging"
)

// searchTimeout bounds a request whose context carries no deadline.
const searchTimeout = time.Minute

// withSearchDeadline leaves a few seconds of the platform deadline for
// writing the response.
func withSearchDeadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timeout := searchTimeout
		if deadline, ok := r.Context().Deadline(); ok {
			timeout = time.Until(deadline) - 5*time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func main() {
	cfg, err := config.Load(os.Getenv("BOGGLE_CONFIG"))
	if err != nil {
		log.Fatalf("config.Load: %v\n", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logging.ParseLevel: %v\n", err)
	}
	logger := logging.New(level)

	a, err := app.New(context.Background(), cfg, logger, prometheus.NewRegistry())
	if err != nil {
		log.Fatalf("app.New: %v\n", err)
	}
	defer a.Close()
	funcframework.RegisterHTTPFunction("/", withSearchDeadline(a.Handler).ServeHTTP)

	// PORT and LOCAL_ONLY are applied by config.Load.
	if err := funcframework.StartHostPort(cfg.Server.Host, cfg.Server.Port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
