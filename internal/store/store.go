// Package store holds the activity directory state behind an interface so
// handlers never reach shared data directly.
package store

import (
	"context"

	"github.com/cwrk-planet/activities/internal/domain"
)

// ActivityStore is the activity directory. Returned activities are copies.
type ActivityStore interface {
	// List returns every activity in seed order.
	List(ctx context.Context) ([]domain.Activity, error)
	// Get returns one activity or domain.ErrActivityNotFound.
	Get(ctx context.Context, name string) (domain.Activity, error)
	// AddParticipant appends email to the roster and returns the updated activity.
	AddParticipant(ctx context.Context, name, email string) (domain.Activity, error)
	// RemoveParticipant deletes email from the roster and returns the updated activity.
	RemoveParticipant(ctx context.Context, name, email string) (domain.Activity, error)
}
