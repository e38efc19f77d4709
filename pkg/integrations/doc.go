// Package integrations provides HTTP clients for the booking backend.
//
// # Overview
//
// The [Client] type holds the plumbing shared by every backend client:
//
//   - JSON GET requests with default headers (bearer token, Accept)
//   - Status mapping to [ErrNotFound], [ErrUnauthorized], [ErrRateLimited]
//     and [ErrNetwork]
//   - Retry of transient failures via [httputil.Retry]
//   - Response caching via [cache.Cache]
//   - Request events via the [observability] HTTP hooks
//
// Endpoint-specific clients live in subpackages:
//
//   - [seatdata]: seat availability for a trip
//
// # Client Pattern
//
//	client := seatdata.NewClient(seatdata.Config{BaseURL: url, Cache: c})
//	data, err := client.FetchSeats(ctx, key, false) // false = use cache
//
// [seatdata]: github.com/busline/seatplan/pkg/integrations/seatdata
package integrations
