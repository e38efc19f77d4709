// Package httputil provides retry helpers for the seat-data HTTP client.
//
// # Retry
//
// [Retry] re-runs an operation while it fails with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses (honouring Retry-After)
//
// Any other error stops immediately. The delay doubles after each attempt:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy, func() error {
//	    return fetch(ctx)
//	})
//
// # Configuration
//
// [DefaultPolicy] is suitable for interactive use:
//
//   - Max attempts: 3
//   - Base backoff: 1 second
//   - Max backoff: 8 seconds
package httputil
