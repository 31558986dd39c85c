package resolvers

import (
	"context"

	"x402-gate/domain/entities"
)

// acknowledgeResolver serves content types whose payload is produced outside
// this service (sentiment generation, social actions). The unlock itself is
// the product; the payload just confirms it.
func acknowledgeResolver(contentType entities.ContentType) ResolverFunc {
	return func(_ context.Context, contentID string) (interface{}, error) {
		return map[string]interface{}{
			"content_type": string(contentType),
			"content_id":   contentID,
			"status":       "unlocked",
		}, nil
	}
}
