package ports

import "github.com/storelink/catalog-api/internal/core/domain"

// Notifier fans a mutation event out to real-time subscribers. Notify must
// never block the caller and must never fail the triggering mutation; a nil
// Notifier is a valid "no sink configured" value.
type Notifier interface {
	Notify(event domain.ProductEvent)
}
