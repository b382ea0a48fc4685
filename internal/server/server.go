package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/username/chofshli/internal/calendar"
	"github.com/username/chofshli/internal/holiday"
	"github.com/username/chofshli/internal/planner"
	"github.com/username/chofshli/pkg/dateutil"
	"go.uber.org/zap"
)

// Planner computes plans and holiday lists
type Planner interface {
	Plan(ctx context.Context, start, end time.Time, category holiday.Category) (*planner.Result, error)
	Holidays(ctx context.Context, year int, category holiday.Category) ([]calendar.HolidayRecord, error)
}

// Server serves the vacation calculator over HTTP
type Server struct {
	planner         Planner
	addr            string
	defaultCategory holiday.Category
	shutdownTimeout time.Duration
	logger          *zap.Logger
	ctx             context.Context
	cancel          context.CancelFunc
}

// NewServer creates a new server instance
func NewServer(p Planner, addr string, defaultCategory holiday.Category, shutdownTimeout time.Duration, logger *zap.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		planner:         p,
		addr:            addr,
		defaultCategory: defaultCategory,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/plan", s.handlePlan)
	mux.HandleFunc("/api/holidays", s.handleHolidays)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Start serves until Stop is called or SIGINT/SIGTERM is received
func (s *Server) Start() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server started", zap.String("addr", s.addr))
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)

	case <-s.ctx.Done():
		s.logger.Info("Server stopped")

	case sig := <-sigChan:
		s.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.cancel()
}

func (s *Server) category(r *http.Request) holiday.Category {
	if c := r.URL.Query().Get("category"); c != "" {
		return holiday.ParseCategory(c)
	}
	return s.defaultCategory
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	query := r.URL.Query()
	start, err := dateutil.ParseDate(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("from: %w", err))
		return
	}
	end, err := dateutil.ParseDate(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("to: %w", err))
		return
	}

	result, err := s.planner.Plan(r.Context(), start, end, s.category(r))
	if err != nil {
		if errors.Is(err, calendar.ErrInvalidRange) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		s.logger.Error("Failed to compute plan", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	year := dateutil.Today().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed < 1 || parsed > 9999 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid year %q", y))
			return
		}
		year = parsed
	}

	category := s.category(r)
	records, err := s.planner.Holidays(r.Context(), year, category)
	if err != nil {
		s.logger.Error("Failed to resolve holidays", zap.Int("year", year), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":     year,
		"category": category,
		"holidays": records,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
