package endpoints

import (
	"log"
	"net/http"
	"time"

	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/store"
)

// timestampLayout matches the millisecond ISO-8601 form clients expect
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// RegisterStatusEndpoints registers the unauthenticated health check
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/health", handleHealth(s.HealthStore, time.Now)).Methods("GET")
}

func handleHealth(healthStore store.HealthStore, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timestamp := now().UTC().Format(timestampLayout)

		if healthStore != nil {
			if err := healthStore.CheckConnectivity(); err != nil {
				log.Printf("health check failed: %v", err)
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
					"status":    "error",
					"timestamp": timestamp,
				})
				return
			}
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"timestamp": timestamp,
		})
	}
}
