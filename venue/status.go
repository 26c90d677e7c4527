package venue

import (
	"encoding/json"
	"net/http"

	"stadium-bar/venue/domain"
	"stadium-bar/venue/infra"
)

// SnapshotSource é o que o handler precisa do bar.
type SnapshotSource interface {
	Snapshot() domain.Snapshot
}

type statusResponse struct {
	Status        string          `json:"status"`
	Occupancy     int             `json:"occupancy"`
	Capacity      int             `json:"capacity"`
	Affiliation   string          `json:"affiliation"`
	Counters      *infra.Counters `json:"counters,omitempty"`
	PeakOccupancy int             `json:"peak_occupancy,omitempty"`
}

// StatusHandler expõe GET /status (snapshot + contadores) e GET /healthz.
// stats pode ser nil.
func StatusHandler(src SnapshotSource, stats *infra.MemoryStatsStore) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		snap := src.Snapshot()
		resp := statusResponse{
			Status:      snap.Status.String(),
			Occupancy:   snap.Occupancy,
			Capacity:    snap.Capacity,
			Affiliation: snap.Affiliation.String(),
		}
		if stats != nil {
			total := stats.Total()
			resp.Counters = &total
			resp.PeakOccupancy = stats.PeakOccupancy()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(resp)
	})

	return mux
}
