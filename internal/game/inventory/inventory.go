// Package inventory implements a named-item stock ledger with sales and a line-oriented
// console front end.
package inventory

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Inventory failures. None of them change the inventory.
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrItemNotFound         = errors.New("item not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)

// Item is one stocked line. Price is per unit in minor currency units (cents).
type Item struct {
	ID       string
	Name     string
	Quantity int
	Price    int64
}

// Inventory holds items in insertion order plus the money earned from sales.
// It is not safe for concurrent use.
//
// Invariant: every item has Quantity > 0 and a unique Name.
type Inventory struct {
	items      []Item
	totalMoney int64
	logger     *zap.Logger
}

// NewInventory creates an empty Inventory.
//
// Precondition: logger must be non-nil.
func NewInventory(logger *zap.Logger) *Inventory {
	return &Inventory{logger: logger}
}

// Add stocks quantity units of name at price. Adding a name that is already stocked
// merges the quantity into the existing line and keeps its original price.
//
// Precondition: quantity > 0; price >= 0; name non-empty.
// Postcondition: on success returns the updated line and whether it already existed;
// on error the inventory is unchanged.
func (inv *Inventory) Add(name string, quantity int, price int64) (Item, bool, error) {
	if name == "" {
		return Item{}, false, fmt.Errorf("inventory: name must not be empty: %w", ErrInvalidArgument)
	}
	if quantity <= 0 {
		return Item{}, false, fmt.Errorf("inventory: quantity %d must be > 0: %w", quantity, ErrInvalidArgument)
	}
	if price < 0 {
		return Item{}, false, fmt.Errorf("inventory: price %d must be >= 0: %w", price, ErrInvalidArgument)
	}

	if i := inv.index(name); i >= 0 {
		inv.items[i].Quantity += quantity
		inv.logger.Debug("item restocked",
			zap.String("item", name),
			zap.Int("added", quantity),
			zap.Int("quantity", inv.items[i].Quantity),
		)
		return inv.items[i], true, nil
	}

	item := Item{
		ID:       uuid.New().String(),
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	inv.items = append(inv.items, item)
	inv.logger.Debug("item added",
		zap.String("item", name),
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.Int64("price", price),
	)
	return item, false, nil
}

// Sale is the result of a successful Sell.
type Sale struct {
	Item    Item  // the line after the sale; Quantity is 0 when it was removed
	Sold    int   // units sold
	Earned  int64 // Sold * Item.Price
	Removed bool  // the line reached zero and was dropped
}

// Sell removes quantity units of name and credits their value to TotalMoney.
// A line that reaches zero is removed entirely.
//
// Precondition: quantity > 0.
// Postcondition: on error the inventory and TotalMoney are unchanged.
func (inv *Inventory) Sell(name string, quantity int) (Sale, error) {
	if quantity <= 0 {
		return Sale{}, fmt.Errorf("inventory: quantity %d must be > 0: %w", quantity, ErrInvalidArgument)
	}
	i := inv.index(name)
	if i < 0 {
		return Sale{}, fmt.Errorf("inventory: %q: %w", name, ErrItemNotFound)
	}
	if quantity > inv.items[i].Quantity {
		return Sale{}, fmt.Errorf("inventory: selling %d of %q, have %d: %w",
			quantity, name, inv.items[i].Quantity, ErrInsufficientQuantity)
	}

	inv.items[i].Quantity -= quantity
	sale := Sale{
		Item:   inv.items[i],
		Sold:   quantity,
		Earned: int64(quantity) * inv.items[i].Price,
	}
	inv.totalMoney += sale.Earned
	if inv.items[i].Quantity == 0 {
		inv.items = append(inv.items[:i], inv.items[i+1:]...)
		sale.Removed = true
	}
	inv.logger.Debug("item sold",
		zap.String("item", name),
		zap.Int("sold", quantity),
		zap.Int64("earned", sale.Earned),
		zap.Int64("total_money", inv.totalMoney),
		zap.Bool("removed", sale.Removed),
	)
	return sale, nil
}

// Find returns the line stocked under name.
func (inv *Inventory) Find(name string) (Item, bool) {
	if i := inv.index(name); i >= 0 {
		return inv.items[i], true
	}
	return Item{}, false
}

// Items returns a snapshot copy of all lines in insertion order.
//
// Postcondition: returned slice is a copy; mutations do not affect the inventory.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of stocked lines.
func (inv *Inventory) Len() int { return len(inv.items) }

// TotalMoney returns the sum earned by all sales.
func (inv *Inventory) TotalMoney() int64 { return inv.totalMoney }

func (inv *Inventory) index(name string) int {
	for i := range inv.items {
		if inv.items[i].Name == name {
			return i
		}
	}
	return -1
}
