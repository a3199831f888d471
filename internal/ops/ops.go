// Package ops implements the tool operations. Each operation takes the
// shared collaborators plus a typed input and returns a JSON-shaped
// output; failures carry the error taxonomy for the handler boundary to
// format.
package ops

import (
	"go.uber.org/zap"

	"github.com/tidewater-labs/linear-mcp/internal/cache"
	"github.com/tidewater-labs/linear-mcp/internal/linear"
	"github.com/tidewater-labs/linear-mcp/internal/ratelimit"
	"github.com/tidewater-labs/linear-mcp/internal/resolve"
)

// Deps bundles the process-wide collaborators. They are constructed once
// at startup and passed by reference; tests build fresh instances.
type Deps struct {
	API      linear.API
	Governor *ratelimit.Governor
	Resolver *resolve.Resolver
	Meta     *cache.Cache // single-slot workspace metadata snapshot
	Log      *zap.Logger
	MaxPages int // page ceiling for collected listings
}

func logIssue(is *linear.Issue) []zap.Field {
	return []zap.Field{zap.String("id", is.ID), zap.String("identifier", is.Identifier)}
}

// NewDeps wires the collaborators, constructing the resolver over the
// shared governor and a fresh resolution cache.
func NewDeps(api linear.API, gov *ratelimit.Governor, resolutionCache, meta *cache.Cache, log *zap.Logger) *Deps {
	return &Deps{
		API:      api,
		Governor: gov,
		Resolver: resolve.New(api, gov, resolutionCache),
		Meta:     meta,
		Log:      log,
	}
}
