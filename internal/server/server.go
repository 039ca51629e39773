// Package server exposes the simulation engine over a small JSON API so
// configs can be submitted without a local install.
package server

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vcarrera/loan-portfolio/internal/cache"
	"github.com/vcarrera/loan-portfolio/internal/config"
	"github.com/vcarrera/loan-portfolio/internal/simulation"
	"github.com/vcarrera/loan-portfolio/pkg/constants"
	"github.com/vcarrera/loan-portfolio/pkg/output"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	results       cache.Cache
}

// NewHandler constructs the HTTP handler that serves the simulation API.
// results may be nil to disable response caching.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, results cache.Cache) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if version == "" {
		version = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: version, results: results}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/simulate", h.handleSimulate)
	mux.HandleFunc("/api/version", h.handleVersion)
	return mux
}

type simulateResponse struct {
	Strategies []strategyInfo   `json:"strategies"`
	Summaries  []output.Summary `json:"summaries"`
	CSV        string           `json:"csv"`
	Warnings   []string         `json:"warnings,omitempty"`
	Duration   string           `json:"duration"`
}

type strategyInfo struct {
	StrategyID int    `json:"strategyId"`
	Name       string `json:"name"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, h.maxUploadSize+1))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if int64(len(body)) > h.maxUploadSize {
		h.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("config exceeds maximum upload size of %d bytes", h.maxUploadSize))
		return
	}

	digest := sha256.Sum256(body)
	key := "loan-portfolio:simulate:" + hex.EncodeToString(digest[:])
	if h.results != nil {
		if cached, ok := h.results.Get(key); ok {
			h.logger.Debug("serving cached simulation response",
				zap.String("op", "server.handleSimulate"),
				zap.String("key", key),
			)
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, cached)
			return
		}
	}

	var conf config.Configuration
	if err := yaml.Unmarshal(body, &conf); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse config: %v", err))
		return
	}

	start := time.Now()
	resp, err := h.simulate(&conf)
	if err != nil {
		h.logger.Warn("simulation failed",
			zap.String("op", "server.handleSimulate"),
			zap.Error(err),
		)
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	resp.Duration = time.Since(start).String()

	encoded, err := json.Marshal(resp)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if h.results != nil {
		if err := h.results.Set(key, string(encoded)); err != nil {
			h.logger.Warn("failed to cache simulation response",
				zap.String("op", "server.handleSimulate"),
				zap.Error(err),
			)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(encoded)
}

func (h *handler) simulate(conf *config.Configuration) (*simulateResponse, error) {
	warnings := conf.ValidateConfiguration()

	portfolio, err := conf.SimulationLoans()
	if err != nil {
		return nil, err
	}
	months, err := conf.MonthAxis()
	if err != nil {
		return nil, err
	}
	strategies, err := conf.Strategies()
	if err != nil {
		return nil, err
	}

	run := simulation.NewRun(h.logger, portfolio, months, strategies)
	run.FudgeFactor = conf.Simulation.FudgeFactor
	run.Workers = conf.Simulation.Workers
	payments, err := run.Execute()
	if err != nil {
		return nil, err
	}

	resp := &simulateResponse{
		Summaries: output.Summarize(payments, strategies),
		CSV:       output.CsvString(payments),
		Warnings:  warnings,
	}
	for _, s := range strategies {
		resp.Strategies = append(resp.Strategies, strategyInfo{StrategyID: s.StrategyID, Name: s.Name})
	}
	return resp, nil
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "only GET is supported")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"version": h.version})
}

func (h *handler) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
