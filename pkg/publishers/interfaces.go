package publishers

import "context"

// Publisher delivers catalog events to one downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt CatalogEvent) error
}
