// Package lookup implements the information handlers behind the
// assistant's commands: weather, news, stock quotes, web search,
// Wikipedia summaries, and the local clock.
//
// Every handler returns a complete spoken sentence and never panics.
// Missing credentials and network failures produce an informative
// sentence rather than an error, because the result is always spoken
// to the user as-is.
package lookup

import (
	"context"
	"net/http"

	"github.com/aria-ai/aria/internal/httpc"
)

// Handler answers one category of lookup request.
type Handler interface {
	// Lookup resolves the argument to a spoken sentence.
	Lookup(ctx context.Context, arg string) string
}

// defaultClient is the shared HTTP client for all handlers.
// Its 10 second timeout bounds every remote lookup.
var defaultClient = httpc.Client

// httpClientOr returns the override if set, else the shared client.
func httpClientOr(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return defaultClient
}
