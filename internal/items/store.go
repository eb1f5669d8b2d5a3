package items

import (
	"context"
	"errors"
)

// ErrNotFound is returned by get, update and delete when no item has the id.
var ErrNotFound = errors.New("item not found")

// Store holds the item collection in insertion order. Create assigns the
// id; Update merges a Patch into the existing record.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id int) (Item, error)
	Create(ctx context.Context, p Patch) (Item, error)
	Update(ctx context.Context, id int, p Patch) (Item, error)
	Delete(ctx context.Context, id int) error
}

// SeedItems is the catalogue every fresh process starts with.
func SeedItems() []Item {
	return []Item{
		{
			ID:          1,
			Name:        Text("iphone 15 pro max"),
			Description: Text("L'iPhone 15 Pro est le premier iPhone avec un design en titane de qualité aérospatiale"),
			Quantity:    Text("1943"),
			Price:       Text("10"),
		},
		{
			ID:          2,
			Name:        Text("Riz basmati"),
			Description: Text("La texture moelleuse des grains de riz fins et longs du basmati offre à votre palais une expérience totalement différente en termes de saveurs et de sensations"),
			Quantity:    Text("4"),
			Price:       Text("120"),
		},
		{
			ID:          3,
			Name:        Text("Ben & Jerry's Cookie Dough"),
			Description: Text("Crème Glacée Vanille avec des Morceaux de Pâte à Cookie aux Pépites de Chocolat et des inclusions cacaotées"),
			Quantity:    Text("150"),
			Price:       Text("1499"),
		},
	}
}
