package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	serrors "github.com/busline/seatplan/pkg/errors"
	"github.com/busline/seatplan/pkg/integrations"
	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/planner"
	"github.com/busline/seatplan/pkg/render"
	"github.com/busline/seatplan/pkg/selection"
)

// layoutResponse is the body of GET /trips/{tripID}/layout.
type layoutResponse struct {
	Key       seatdata.Key       `json:"key"`
	Available bool               `json:"available"`
	Reason    string             `json:"reason,omitempty"`
	Layout    *render.Descriptor `json:"layout,omitempty"`
	Dropped   []int              `json:"dropped,omitempty"`
}

type toggleRequest struct {
	TripID        string `json:"trip_id"`
	BusModel      string `json:"bus_model"`
	DepartureDate string `json:"departure_date"`
	Selected      []int  `json:"selected"`
	SeatNumber    int    `json:"seat_number"`
}

type toggleResponse struct {
	Selected []int `json:"selected"`
	Changed  bool  `json:"changed"`
	Dropped  []int `json:"dropped,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleLayout serves the layout for a trip. An incomplete key is not an
// error: the response says the layout is unavailable and why.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := seatdata.NewKey(chi.URLParam(r, "tripID"), q.Get("bus_type"), q.Get("departure_date"))

	sel, err := parseSelected(q.Get("selected"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	state, err := planner.NewLoader(s.provider, nil, s.logger).Load(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := layoutResponse{Key: state.Key, Available: state.Available, Reason: state.Reason}
	if state.Available {
		kept := selection.Reconcile(sel, state.Placed())
		d := render.Describe(state.Layout, kept)
		resp.Layout = &d
		resp.Dropped = selection.Dropped(sel, kept)
	}
	respondJSON(w, http.StatusOK, resp)
}

// handleToggle flips one seat in a selection against the current seat
// snapshot of the trip.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		s.respondError(w, r, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := serrors.ValidateSeatNumber(req.SeatNumber); err != nil {
		s.respondError(w, r, err)
		return
	}

	key := seatdata.NewKey(req.TripID, req.BusModel, req.DepartureDate)
	if !key.Complete() {
		s.respondError(w, r, seatdata.ErrIncompleteKey)
		return
	}

	state, err := planner.NewLoader(s.provider, nil, s.logger).Load(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	seat, ok := state.Seat(req.SeatNumber)
	if !ok {
		s.respondError(w, r, serrors.New(serrors.ErrCodeInvalidSeat, "seat %d is not on the layout for this trip", req.SeatNumber))
		return
	}

	before := selection.New(req.Selected...)
	current := selection.Reconcile(before, state.Placed())
	next := selection.Toggle(current, seat.Number, seat.Status)

	respondJSON(w, http.StatusOK, toggleResponse{
		Selected: next.Numbers(),
		Changed:  !next.Equal(current),
		Dropped:  selection.Dropped(before, current),
	})
}

func parseSelected(raw string) (selection.Set, error) {
	if strings.TrimSpace(raw) == "" {
		return selection.Set{}, nil
	}
	parts := strings.Split(raw, ",")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return selection.Set{}, serrors.New(serrors.ErrCodeInvalidSeat, "invalid seat number %q", p)
		}
		if err := serrors.ValidateSeatNumber(n); err != nil {
			return selection.Set{}, err
		}
		nums = append(nums, n)
	}
	return selection.New(nums...), nil
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "code", code, "err", err)
	}
	respondJSON(w, status, errorResponse{Code: string(code), Message: serrors.UserMessage(err)})
}

func classify(err error) (int, serrors.Code) {
	code := codeOf(err)
	return serrors.HTTPStatus(code), code
}

func codeOf(err error) serrors.Code {
	switch {
	case errors.Is(err, planner.ErrStale):
		return serrors.ErrCodeStale
	case errors.Is(err, integrations.ErrNotFound):
		return serrors.ErrCodeNotFound
	case errors.Is(err, integrations.ErrUnauthorized):
		return serrors.ErrCodeUnauthorized
	case errors.Is(err, integrations.ErrRateLimited):
		return serrors.ErrCodeRateLimited
	case errors.Is(err, integrations.ErrNetwork):
		return serrors.ErrCodeNetwork
	}
	if code := serrors.GetCode(err); code != "" {
		return code
	}
	return serrors.ErrCodeInternal
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
