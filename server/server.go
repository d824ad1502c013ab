package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/nihei9/laviz"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Grammar string `json:"grammar"`
	Input   string `json:"input"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router builds the HTTP handler for the analysis service. The endpoint is
// CORS-open because the visualisation front end is served from elsewhere.
func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Post("/analyze", handleAnalyze)
	return r
}

func handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var body AnalyzeRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "No JSON body provided"})
		return
	}

	if strings.TrimSpace(body.Grammar) == "" {
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: "Grammar is required"})
		return
	}

	bundle, err := laviz.Analyze(body.Grammar, body.Input)
	if err != nil {
		log.Warn("analysis failed", "err", err)
		writeJSON(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
		return
	}

	log.Info("analysis complete",
		"dfa_states", len(bundle.DFA),
		"accepted", bundle.ParseResult.Accepted)
	writeJSON(w, http.StatusOK, bundle)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write a response", "err", err)
	}
}
