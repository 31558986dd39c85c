// Package resolvers contains the content resolvers invoked once a payment
// clears. Each content type maps to a function producing the unlocked
// payload; market-facing types fetch live data from the upstream market API,
// the rest return a minimal acknowledgment.
package resolvers

import (
	"context"
	"net/http"
	"time"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/domain/interfaces"
)

// ResolverFunc produces the payload for one content id.
type ResolverFunc func(ctx context.Context, contentID string) (interface{}, error)

// Registry implements the ContentResolver interface by dispatching on
// content type.
type Registry struct {
	byType map[entities.ContentType]ResolverFunc
	logger interfaces.Logger
}

// NewRegistry creates an empty resolver registry.
func NewRegistry(logger interfaces.Logger) *Registry {
	return &Registry{
		byType: make(map[entities.ContentType]ResolverFunc),
		logger: logger,
	}
}

// Register binds a resolver to a content type, replacing any previous binding.
func (r *Registry) Register(contentType entities.ContentType, fn ResolverFunc) {
	r.byType[contentType] = fn
}

// Resolve dispatches to the resolver registered for the content type.
func (r *Registry) Resolve(
	ctx context.Context,
	contentType entities.ContentType,
	contentID string,
) (interface{}, error) {
	fn, ok := r.byType[contentType]
	if !ok {
		return nil, errors.NewDomainError(errors.ErrNotFound,
			"no resolver registered for content type "+string(contentType))
	}
	return fn(ctx, contentID)
}

// NewDefaultRegistry wires the standard resolver set: market data, chart
// series, and orderbook from the upstream market API; everything else from
// the acknowledgment resolver.
func NewDefaultRegistry(baseURL string, timeout time.Duration, logger interfaces.Logger) *Registry {
	api := newMarketAPI(baseURL, &http.Client{Timeout: timeout}, logger)

	r := NewRegistry(logger)
	r.Register(entities.ContentMarketData, api.MarketData)
	r.Register(entities.ContentChart, api.Candlesticks)
	r.Register(entities.ContentOrderbook, api.Orderbook)

	for _, ct := range []entities.ContentType{
		entities.ContentSentiment,
		entities.ContentCalculator,
		entities.ContentActivity,
		entities.ContentSocialPost,
		entities.ContentSocialView,
		entities.ContentSocialComment,
	} {
		r.Register(ct, acknowledgeResolver(ct))
	}
	return r
}
