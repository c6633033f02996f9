package main

import (
	"encoding/json"
	"net/http"

	"Armature/internal/auth"
	"Armature/internal/calc/bbs"
	"Armature/internal/calc/boq"
	"Armature/internal/calc/footing"
	"Armature/internal/calc/materials"
	"Armature/internal/calc/premium/batch"
	"Armature/internal/calc/premium/importer"
	"Armature/internal/calc/stair"
	"Armature/internal/calc/takeoff"
	"Armature/internal/calc/wall"
	"Armature/internal/core"
	"Armature/internal/version"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+auth.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", auth.RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// NewRouter wires every calculator under /api. Token auth is enabled only when
// cfg.TokenKey is set.
func NewRouter(cfg *core.Config, defaults materials.Defaults, logger core.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, struct {
			Status string `json:"status"`
			version.Info
		}{"ok", version.Current()})
	}).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)
	if cfg.TokenKey != "" {
		tokens := &auth.TokenAuth{Key: []byte(cfg.TokenKey)}
		api.Use(tokens.AuthMiddleware)
	}

	api.HandleFunc("/defaults", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, defaults)
	}).Methods("GET")

	footingH := &footing.Handler{Defaults: defaults}
	wallH := &wall.Handler{Defaults: defaults}
	stairH := &stair.Handler{Defaults: defaults}
	bbsH := &bbs.Handler{Defaults: defaults}
	boqH := &boq.Handler{}
	estimateH := &takeoff.Handler{Defaults: defaults}
	batchH := &batch.Handler{Defaults: defaults}
	importH := &importer.Handler{Defaults: defaults}

	api.HandleFunc("/tools/footing/calc", footingH.Calc).Methods("POST")
	api.HandleFunc("/tools/footing/batch", batchH.Footing).Methods("POST")
	api.HandleFunc("/tools/wall/calc", wallH.Calc).Methods("POST")
	api.HandleFunc("/tools/stair/calc", stairH.Calc).Methods("POST")
	api.HandleFunc("/tools/bbs/calc", bbsH.Calc).Methods("POST")
	api.HandleFunc("/tools/bbs/import", importH.BBS).Methods("POST")
	api.HandleFunc("/tools/boq/calc", boqH.Calc).Methods("POST")
	api.HandleFunc("/tools/boq/import", importH.BOQ).Methods("POST")
	api.HandleFunc("/tools/estimate", estimateH.Estimate).Methods("POST")

	return auth.RequestLogger(logger)(CORS(r))
}
