package controllers

import (
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"brickdeals/internal/services"
	"brickdeals/internal/structures"
)

type HealthController struct {
	conf      *structures.Config
	stats     services.StatsServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	CatalogSize int    `json:"catalog_size"`
	DealCount   int    `json:"deal_count"`
	Subscribers int    `json:"subscribers"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := healthResponse{
		Status:      "ok",
		Version:     hc.conf.Version,
		Uptime:      formatDuration(time.Since(hc.startTime)),
		CatalogSize: hc.stats.CatalogSize(),
		DealCount:   hc.stats.DealCount(),
		Subscribers: hc.stats.SubscriberCount(),
	}
	if resp.CatalogSize < 0 || resp.DealCount < 0 || resp.Subscribers < 0 {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(conf *structures.Config, stats services.StatsServiceInterface) *HealthController {
	return &HealthController{
		conf:      conf,
		stats:     stats,
		startTime: time.Now(),
	}
}
