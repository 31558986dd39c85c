package interfaces

import (
	"context"

	"x402-gate/domain/entities"
)

// ContentResolver produces the actual payload for a content item once access
// is granted. Resolvers fetch live data from upstream sources; the gate
// treats them as pluggable collaborators and never retries them.
type ContentResolver interface {
	// Resolve returns the payload for the given content. A failure after
	// payment is verified degrades the response, it never rolls payment back.
	Resolve(ctx context.Context, contentType entities.ContentType, contentID string) (interface{}, error)
}
