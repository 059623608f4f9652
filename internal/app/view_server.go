package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebSocket upgrader for the live view feed
var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// filterRequest is the body of POST /api/filters. Absent fields are left
// untouched; invalid values are rejected without changing prior state.
type filterRequest struct {
	Threshold      *int      `json:"threshold,omitempty"`
	Sort           *SortKey  `json:"sort,omitempty"`
	ToggleCategory *Category `json:"toggle_category,omitempty"`
}

// startViewServer starts the HTTP server the renderer talks to.
func (r *Runner) startViewServer(port int) {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Current view snapshot
	mux.HandleFunc("/api/markets", func(w http.ResponseWriter, req *http.Request) {
		setCORS(w)
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if req.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, r.Snapshot())
	})

	// Filter mutations
	mux.HandleFunc("/api/filters", func(w http.ResponseWriter, req *http.Request) {
		setCORS(w)
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		switch req.Method {
		case http.MethodGet:
			writeJSON(w, r.filters.Snapshot())
		case http.MethodPost:
			r.handleFilterUpdate(w, req)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// WebSocket endpoint pushing the view once a second
	mux.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, req, nil)
		if err != nil {
			r.clients.Logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			if err := conn.WriteJSON(r.Snapshot()); err != nil {
				return // Client disconnected
			}
		}
	})

	r.viewServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		if err := r.viewServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.clients.Logger.Error("view server error", zap.Error(err))
		}
	}()
}

// handleFilterUpdate applies whichever mutations the request carries.
// Rejected mutations are silent: the response is always the resulting filter
// snapshot, whether or not anything changed.
func (r *Runner) handleFilterUpdate(w http.ResponseWriter, req *http.Request) {
	var body filterRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if body.Threshold != nil {
		if !r.SetThreshold(*body.Threshold) {
			r.clients.Logger.Warn("rejected threshold update", zap.Int("threshold", *body.Threshold))
		}
	}
	if body.Sort != nil {
		if !r.SetSortKey(*body.Sort) {
			r.clients.Logger.Warn("rejected sort update", zap.String("sort", string(*body.Sort)))
		}
	}
	if body.ToggleCategory != nil {
		if !r.ToggleCategory(*body.ToggleCategory) {
			r.clients.Logger.Warn("rejected category toggle", zap.String("category", string(*body.ToggleCategory)))
		}
	}

	writeJSON(w, r.filters.Snapshot())
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
