// Package cart holds the in-memory shopping cart. Mutations are expressed as
// typed commands applied by a pure transition function, so every state change
// goes through a single code path and old state is never modified in place.
package cart

import "github.com/shopspring/decimal"

// Line is one book-and-quantity entry in the cart. BookKey is the book's
// unique name and doubles as the line identifier.
type Line struct {
	BookKey   string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Command is a cart mutation. The interface is sealed: only the variants in
// this package implement it.
type Command interface {
	isCommand()
}

// AddLine inserts a new line, or merges into the existing line with the same
// BookKey by adding quantities.
type AddLine struct {
	Line Line
}

// SetQuantity replaces the quantity of an existing line. Absent BookKey is a
// no-op; callers that clamp (increment/decrement) do so before issuing it.
type SetQuantity struct {
	BookKey  string
	Quantity int
}

// RemoveLine deletes the line unconditionally.
type RemoveLine struct {
	BookKey string
}

func (AddLine) isCommand()     {}
func (SetQuantity) isCommand() {}
func (RemoveLine) isCommand()  {}

// Reduce applies cmd to lines and returns the next state. The input slice is
// never mutated. Lines keep their insertion order.
func Reduce(lines []Line, cmd Command) []Line {
	switch c := cmd.(type) {
	case AddLine:
		qty := c.Line.Quantity
		if qty < 1 {
			qty = 1
		}
		next := make([]Line, len(lines))
		copy(next, lines)
		for i := range next {
			if next[i].BookKey == c.Line.BookKey {
				next[i].Quantity += qty
				return next
			}
		}
		added := c.Line
		added.Quantity = qty
		return append(next, added)

	case SetQuantity:
		next := make([]Line, len(lines))
		copy(next, lines)
		for i := range next {
			if next[i].BookKey == c.BookKey {
				next[i].Quantity = c.Quantity
			}
		}
		return next

	case RemoveLine:
		next := make([]Line, 0, len(lines))
		for _, l := range lines {
			if l.BookKey != c.BookKey {
				next = append(next, l)
			}
		}
		return next
	}
	return lines
}

// Cart owns the current line slice and applies commands to it.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Apply runs one command against the current state.
func (c *Cart) Apply(cmd Command) {
	c.lines = Reduce(c.lines, cmd)
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns the quantity for bookKey, or 0 when absent.
func (c *Cart) Quantity(bookKey string) int {
	for _, l := range c.lines {
		if l.BookKey == bookKey {
			return l.Quantity
		}
	}
	return 0
}

// Increment raises the quantity of an existing line by one.
func (c *Cart) Increment(bookKey string) {
	if q := c.Quantity(bookKey); q > 0 {
		c.Apply(SetQuantity{BookKey: bookKey, Quantity: q + 1})
	}
}

// Decrement lowers the quantity of an existing line by one, clamped at 1.
// Removal is a separate, explicit action.
func (c *Cart) Decrement(bookKey string) {
	if q := c.Quantity(bookKey); q > 0 {
		c.Apply(SetQuantity{BookKey: bookKey, Quantity: max(1, q-1)})
	}
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear drops all lines.
func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the exact sum of unitPrice times quantity over all lines. It is
// recomputed on every call; nothing is cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
