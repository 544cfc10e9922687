package domain

type CartLine struct {
	Product  *Product
	Quantity int
}

// Cart keeps lines in insertion order. The stock check on AddLine is a
// snapshot; checkout validates again.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) AddLine(product *Product, quantity int) error {
	if quantity <= 0 {
		return productErr(product.Name(), ErrInvalidQuantity)
	}
	if quantity > product.StockQuantity() {
		return productErr(product.Name(), ErrOutOfStock)
	}

	c.lines = append(c.lines, CartLine{Product: product, Quantity: quantity})
	return nil
}

func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}
