package propertypicker

import (
	"context"

	"github.com/dalemusser/revenuedash/internal/domain/models"
)

// Source lists the properties visible to one caller.
type Source interface {
	ListProperties(ctx context.Context) ([]models.Property, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]models.Property, error)

func (f SourceFunc) ListProperties(ctx context.Context) ([]models.Property, error) {
	return f(ctx)
}

// StaticSource serves a fixed catalogue.
type StaticSource []models.Property

func (s StaticSource) ListProperties(context.Context) ([]models.Property, error) {
	out := make([]models.Property, len(s))
	copy(out, s)
	return out, nil
}
