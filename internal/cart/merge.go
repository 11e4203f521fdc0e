package cart

import (
	"fmt"

	"emedica-be/internal/pricing"

	"github.com/google/uuid"
)

// addQuantity adds qty of p to items. The stock check runs against the final
// merged quantity; on failure items is returned untouched. An existing line
// keeps the price it was added at.
func addQuantity(items []Item, p stockedProduct, qty int) ([]Item, Item, error) {
	if qty < 1 || qty > MaxQuantity {
		return items, Item{}, fmt.Errorf("%w: quantity must be between 1 and %d", ErrInvalidInput, MaxQuantity)
	}
	for i, it := range items {
		if it.ProductID != p.ID {
			continue
		}
		merged := it.Quantity + qty
		if merged > p.Stock {
			return items, Item{}, fmt.Errorf("%w: %s has %d left, cart would hold %d",
				ErrInsufficientStock, p.Name, p.Stock, merged)
		}
		out := append([]Item(nil), items...)
		out[i].Quantity = merged
		return out, out[i], nil
	}

	if qty > p.Stock {
		return items, Item{}, fmt.Errorf("%w: %s has %d left, requested %d",
			ErrInsufficientStock, p.Name, p.Stock, qty)
	}
	line := Item{
		ProductID: p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Image:     p.Image,
		Quantity:  qty,
		Price:     p.Price,
	}
	return append(append([]Item(nil), items...), line), line, nil
}

// addCapped is addQuantity for session merges: the merged quantity is capped
// at stock instead of failing. ok is false when nothing could be added.
func addCapped(items []Item, p stockedProduct, qty int) ([]Item, Item, bool) {
	current := 0
	for _, it := range items {
		if it.ProductID == p.ID {
			current = it.Quantity
			break
		}
	}
	if room := p.Stock - current; qty > room {
		qty = room
	}
	if qty < 1 {
		return items, Item{}, false
	}
	out, line, err := addQuantity(items, p, qty)
	if err != nil {
		return items, Item{}, false
	}
	return out, line, true
}

func removeProduct(items []Item, productID uuid.UUID) ([]Item, bool) {
	for i, it := range items {
		if it.ProductID == productID {
			out := append([]Item(nil), items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func priceItems(items []Item) (pricing.Prices, error) {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, pricing.LineItem{UnitPrice: it.Price, Quantity: it.Quantity})
	}
	return pricing.Calculate(lines)
}
