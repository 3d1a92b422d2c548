package controllers

import (
	"net/http"

	"brickdeals/internal/pipeline"
	"brickdeals/internal/providers"
	"brickdeals/internal/structures"
)

// AdminController exposes the manual trigger path: the same two pipelines
// the scheduler runs, executed synchronously over a smaller catalog slice
// for operational testing. Both endpoints are API-key gated.
type AdminController struct {
	conf   *structures.Config
	logger providers.Logger
	runner pipeline.RunnerInterface
}

func NewAdminController(conf *structures.Config, logger providers.Logger, runner pipeline.RunnerInterface) *AdminController {
	return &AdminController{conf: conf, logger: logger, runner: runner}
}

func (ac *AdminController) ManualCatalogUpdate(w http.ResponseWriter, r *http.Request) {
	if !providers.AdminAuthorized(ac.conf, r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := ac.runner.RunCatalogRefresh(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypePipeline, "Manual catalog refresh failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (ac *AdminController) ManualPriceUpdate(w http.ResponseWriter, r *http.Request) {
	if !providers.AdminAuthorized(ac.conf, r) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := ac.runner.RunPriceRefresh(r.Context(), ac.conf.Pricing.ManualSlice)
	if err != nil {
		ac.logger.Errorf(providers.TypePipeline, "Manual price refresh failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
