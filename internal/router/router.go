package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/legallenshq/legal-lens-api/internal/handlers"
	"github.com/legallenshq/legal-lens-api/internal/middleware"
	"github.com/legallenshq/legal-lens-api/internal/services"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

func NewRouter(analysisService services.AnalysisService, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	analysisHandler := handlers.NewAnalysisHandler(analysisService, logger)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Analysis endpoints
	api.HandleFunc("/documents/analyze", analysisHandler.AnalyzeDocument).Methods(http.MethodPost)
	api.HandleFunc("/analyses/{id}", analysisHandler.GetAnalysis).Methods(http.MethodGet)

	return r
}
