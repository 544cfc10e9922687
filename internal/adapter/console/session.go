package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rl1809/pos-checkout/internal/core/service"
)

// Session is the interactive shopping loop: list the catalog, pick products by
// number, 0 checks out. Add failures are reported and the session continues;
// the single checkout ends it.
type Session struct {
	pos *service.POSService
	in  *bufio.Scanner
	out io.Writer
}

func NewSession(pos *service.POSService, in io.Reader, out io.Writer) *Session {
	s := bufio.NewScanner(in)
	s.Split(bufio.ScanWords)
	return &Session{pos: pos, in: s, out: out}
}

// Run returns the checkout error, if any. Input running out before a
// checkout choice is treated as a request to check out.
func (s *Session) Run(ctx context.Context) error {
	for {
		products, err := s.pos.Products(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(s.out, "\nAvailable Products:")
		for i, p := range products {
			var b strings.Builder
			fmt.Fprintf(&b, "%d. %s ($%s) | Stock: %d", i+1, p.Name(), p.UnitPrice().StringFixed(2), p.StockQuantity())
			if d, ok := p.ExpirationDate(); ok {
				fmt.Fprintf(&b, " | Expires: %s", d.Format("2006-01-02"))
			}
			fmt.Fprintln(s.out, b.String())
		}

		fmt.Fprint(s.out, "Select product number to add to cart (or 0 to checkout): ")
		choice, ok := s.readInt()
		if !ok || choice == 0 {
			break
		}
		if choice < 1 || choice > len(products) {
			fmt.Fprintln(s.out, "Invalid product number.")
			continue
		}
		selected := products[choice-1]

		fmt.Fprint(s.out, "Enter quantity: ")
		qty, ok := s.readInt()
		if !ok {
			break
		}

		if err := s.pos.AddToCart(ctx, selected.Name(), qty); err != nil {
			fmt.Fprintf(s.out, "ERROR: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "%d x %s added to cart.\n", qty, selected.Name())
	}

	fmt.Fprintln(s.out)
	result, err := s.pos.Checkout(ctx, "")
	if err != nil {
		fmt.Fprintf(s.out, "ERROR: %v\n", err)
		return err
	}
	RenderCheckout(s.out, result)
	return nil
}

func (s *Session) readInt() (int, bool) {
	for s.in.Scan() {
		n, err := strconv.Atoi(s.in.Text())
		if err == nil {
			return n, true
		}
		fmt.Fprintln(s.out, "Please enter a number.")
	}
	return 0, false
}
