package reconcile

import (
	"theaterwecker/feature/performance/models"
)

// Item is a resolved candidate ready for reconciliation.
type Item struct {
	Performance models.Performance

	// LocationName and CategoryName are the display names the ids resolved from.
	LocationName string
	CategoryName string

	HasTickets bool
}

// NewItem computes the identity key of p and wraps it.
func NewItem(p models.Performance, location, category string, ticketed bool) *Item {
	return &Item{
		Performance:  p.WithIdentity(),
		LocationName: location,
		CategoryName: category,
		HasTickets:   ticketed,
	}
}

// Key implements reconcile.Item.
func (i *Item) Key() string {
	return i.Performance.IdentityKey
}

// Ticketed implements reconcile.Item.
func (i *Item) Ticketed() bool {
	return i.HasTickets
}
