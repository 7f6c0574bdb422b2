package ports

import (
	"context"

	"syndicator/internal/domain"
)

// ManifestSource produces the ordered worklist of documents to syndicate.
type ManifestSource interface {
	Scan(ctx context.Context, contentRoot string) ([]domain.ManifestEntry, error)
}

// Publisher posts an excerpt and link to a single platform.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, matter domain.FrontMatter, url string) error
}

// ReachabilityChecker verifies a derived URL is live before publishing.
// Network failures are non-fatal and report as unreachable.
type ReachabilityChecker interface {
	CheckReachable(ctx context.Context, url string) bool
}

// Marker durably records syndication success inside the source document.
type Marker interface {
	MarkSyndicated(entry domain.ManifestEntry) error
}

// DeliveryRepository keeps an audit trail of successful publications.
// It is never consulted for idempotency; the front-matter flag owns that.
type DeliveryRepository interface {
	SaveDelivery(ctx context.Context, delivery domain.Delivery) error
}
