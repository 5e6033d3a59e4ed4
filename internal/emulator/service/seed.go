package service

import (
	"context"
	"fmt"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

// DefaultCategories are loaded into an empty emulator.
var DefaultCategories = []domain.Category{
	{ID: "plumbing", Name: "Plomería", Description: "Fugas, instalaciones y destapes"},
	{ID: "electrical", Name: "Electricidad", Description: "Cableado, contactos e iluminación"},
	{ID: "carpentry", Name: "Carpintería", Description: "Muebles, puertas y reparaciones en madera"},
	{ID: "painting", Name: "Pintura", Description: "Interiores y exteriores"},
	{ID: "gardening", Name: "Jardinería", Description: "Poda, césped y riego"},
	{ID: "cleaning", Name: "Limpieza", Description: "Limpieza profunda del hogar"},
}

// SeedCategories upserts categories so repeated starts are harmless.
func SeedCategories(ctx context.Context, repo ports.CategoryRepository, categories []domain.Category) error {
	for _, c := range categories {
		if err := repo.Upsert(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", c.ID, err)
		}
	}
	return nil
}
