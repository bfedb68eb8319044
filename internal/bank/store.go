// Package bank persists imported questions. The importers only ever see
// the Sink interface; they hand over finished question models and never
// query the bank back.
package bank

import (
	"context"

	"github.com/questbank/qmlbank/internal/question"
)

// Sink accepts finished questions and category markers.
type Sink interface {
	PutQuestion(ctx context.Context, categoryID string, q question.Question) (string, error)
	PutCategory(ctx context.Context, name string) (string, error)
}

// Summary is the list view of a stored question.
type Summary struct {
	ID         string        `json:"id"`
	CategoryID string        `json:"category_id,omitempty"`
	Name       string        `json:"name"`
	Kind       question.Kind `json:"kind"`
	CreatedAt  int64         `json:"created_at"`
}

// ListOpts filters question listings.
type ListOpts struct {
	CategoryID string
	Kind       string
	Limit      int
	Offset     int
}
