package domain

import "time"

const (
	EventProductCreated = "product_created"
	EventProductUpdated = "product_updated"
	EventProductDeleted = "product_deleted"
)

// ProductEvent is broadcast to real-time subscribers after a successful
// mutation. Created/updated events carry the post-mutation product;
// deleted events carry the product id. User is the acting user's display
// name, or "System" when no authenticated context applies.
type ProductEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Product   *Product  `json:"product,omitempty"`
	ProductID string    `json:"productId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
}

// Key returns the identifier events are sharded on so that all events for
// one product are delivered in order.
func (e ProductEvent) Key() string {
	if e.Product != nil {
		return e.Product.ID
	}
	return e.ProductID
}
