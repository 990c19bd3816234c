package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/viamrobotics/rovercli/drive"
)

// Canned bodies for a RoverService.
const (
	// SingleMotorRoverConfig drives at 1.2566 on a 12V battery.
	SingleMotorRoverConfig = `{
		"motors": [{"name": "drive", "kv_rating": 100, "wheel": {"diameter": 0.1, "gear_ratio": 5}}],
		"batteries": [{"max_voltage": 12}]
	}`
	// TenMeterExercise asks for a fixed distance of 10.
	TenMeterExercise = `{"fixed_distance": {"value": 10}}`
)

// Submission is a command received on /verify/fixed_distance.
type Submission struct {
	ContentType string
	Raw         []byte
	Command     drive.MotionCommand
}

// RoverService is an in-process rover service. Fields must be set before Start;
// zero values answer like a healthy service.
type RoverService struct {
	HealthStatus      int
	RoverConfig       string
	RoverConfigStatus int
	Exercise          string
	ExerciseStatus    int
	VerifyStatus      int
	VerifyBody        string
	// Delay holds every response back until it passes or the request is canceled.
	Delay time.Duration

	mu          sync.Mutex
	requests    []string
	submissions []Submission
	server      *httptest.Server
}

// Start serves the rover service until the test ends and returns its URL.
func (s *RoverService) Start(tb testing.TB) string {
	tb.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(orDefault(s.HealthStatus, http.StatusTeapot))
	})
	mux.HandleFunc("GET /rover/config", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		writeJSON(w, orDefault(s.RoverConfigStatus, http.StatusOK), orDefaultBody(s.RoverConfig, SingleMotorRoverConfig))
	})
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		writeJSON(w, orDefault(s.ExerciseStatus, http.StatusOK), orDefaultBody(s.Exercise, TenMeterExercise))
	})
	mux.HandleFunc("POST /verify/fixed_distance", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		sub := Submission{ContentType: r.Header.Get("Content-Type"), Raw: raw}
		if err := json.Unmarshal(raw, &sub.Command); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.submissions = append(s.submissions, sub)
		s.mu.Unlock()
		w.WriteHeader(orDefault(s.VerifyStatus, http.StatusOK))
		//nolint:errcheck
		io.WriteString(w, orDefaultBody(s.VerifyBody, "ok"))
	})

	s.server = httptest.NewServer(mux)
	tb.Cleanup(s.server.Close)
	return s.server.URL
}

// Requests returns "METHOD /path" for every request served so far.
func (s *RoverService) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Submissions returns every command submitted so far.
func (s *RoverService) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.submissions...)
}

func (s *RoverService) record(r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	s.mu.Unlock()
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-r.Context().Done():
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck
	io.WriteString(w, body)
}

func orDefault(status, def int) int {
	if status == 0 {
		return def
	}
	return status
}

func orDefaultBody(body, def string) string {
	if body == "" {
		return def
	}
	return body
}
