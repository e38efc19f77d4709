package seatdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/busline/seatplan/pkg/cache"
	"github.com/busline/seatplan/pkg/httputil"
	"github.com/busline/seatplan/pkg/integrations"
	"github.com/busline/seatplan/pkg/seatmap"
)

// SeatData is one seat snapshot with its capacity split.
type SeatData struct {
	Seats     []seatmap.Seat   `json:"seats"`
	Capacity  seatmap.Capacity `json:"capacity"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// apiResponse mirrors the backend payload. Capacity fields are pointers so
// absent values can be told apart from zero.
type apiResponse struct {
	Seats              []seatmap.Seat `json:"seats"`
	BaseCapacity       *int           `json:"base_capacity"`
	AdditionalCapacity *int           `json:"additional_capacity"`
	TotalCapacity      *int           `json:"total_capacity"`
}

// Config configures a [Client].
type Config struct {
	BaseURL string        // API root, e.g. "https://api.example.com/v1"
	Token   string        // bearer token; empty sends no Authorization header
	Timeout time.Duration // per-request timeout; 0 selects the default
	Cache   cache.Cache   // response cache, scoped per BaseURL; nil disables caching
	TTL     time.Duration // cache lifetime; 0 selects [cache.TTLSeats]

	// Attempts is the number of tries for a transient failure. Zero or one
	// means a failed fetch is reported at once.
	Attempts int
}

// Client fetches seat snapshots. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a seat-data client.
func NewClient(cfg Config) *Client {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.TTLSeats
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	cc := cfg.Cache
	if cc != nil {
		// Entries from different backends must not answer for each other.
		cc = cache.NewScoped(cc, baseURL+":")
	}
	c := integrations.NewClient(cc, "seats:", ttl, integrations.BearerHeaders(cfg.Token))
	c.SetHTTPClient(integrations.NewHTTPClient(cfg.Timeout))
	policy := httputil.DefaultPolicy
	policy.Attempts = max(cfg.Attempts, 1)
	c.SetPolicy(policy)
	return &Client{
		Client:  c,
		baseURL: baseURL,
	}
}

// FetchSeats retrieves the seat snapshot for key.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - [ErrIncompleteKey] without any request if a key component is missing
//   - a coded validation error for a malformed trip id, model or date
//   - [integrations.ErrNotFound] if the backend does not know the trip
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
func (c *Client) FetchSeats(ctx context.Context, key Key, refresh bool) (*SeatData, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var data SeatData
	err := c.Cached(ctx, key.CacheKey(), refresh, &data, func() error {
		return c.fetch(ctx, key, &data)
	})
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) fetch(ctx context.Context, key Key, data *SeatData) error {
	var resp apiResponse
	if err := c.Get(ctx, c.seatsURL(key), &resp); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: seats for trip %s", err, key.TripID)
		}
		return err
	}
	*data = resp.toSeatData()
	return nil
}

func (c *Client) seatsURL(key Key) string {
	q := url.Values{}
	q.Set("bus_type", string(key.BusModel))
	q.Set("departure_date", key.DepartureDate)
	return fmt.Sprintf("%s/trips/%s/seats?%s", c.baseURL, url.PathEscape(key.TripID), q.Encode())
}

// Decode reads a seat snapshot in the backend wire format, applying the
// same capacity defaults as a fetch.
func Decode(r io.Reader) (*SeatData, error) {
	var resp apiResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode seat data: %w", err)
	}
	data := resp.toSeatData()
	return &data, nil
}

func (r apiResponse) toSeatData() SeatData {
	seats := make([]seatmap.Seat, 0, len(r.Seats))
	for _, s := range r.Seats {
		// Seat numbers start at 1; anything else cannot be placed.
		if s.Number < 1 {
			continue
		}
		seats = append(seats, s)
	}
	return SeatData{
		Seats:     seats,
		Capacity:  r.capacity(),
		FetchedAt: time.Now().UTC(),
	}
}

func (r apiResponse) capacity() seatmap.Capacity {
	c := seatmap.DefaultCapacity()
	if r.BaseCapacity != nil {
		c.Base = *r.BaseCapacity
	}
	if r.AdditionalCapacity != nil {
		c.Additional = *r.AdditionalCapacity
	}
	c.Total = c.Base + c.Additional
	if r.TotalCapacity != nil {
		c.Total = *r.TotalCapacity
	}
	return c
}
