package console

import (
	"fmt"
	"io"

	"github.com/rl1809/pos-checkout/internal/core/domain"
)

// RenderShipment writes the shipment notice. Nothing is written when the
// checkout has no shippable lines.
func RenderShipment(w io.Writer, result domain.CheckoutResult) {
	if len(result.Manifest) == 0 {
		return
	}

	fmt.Fprintln(w, "** Shipment notice **")
	for _, e := range result.Manifest {
		fmt.Fprintf(w, "%dx %s %sg\n", e.Quantity, e.Name, e.LineGrams().StringFixed(0))
	}
	fmt.Fprintf(w, "Total package weight %skg\n", result.PackageWeight().StringFixed(1))
}

func RenderReceipt(w io.Writer, result domain.CheckoutResult) {
	fmt.Fprintln(w, "** Checkout receipt **")
	for _, l := range result.Receipt {
		fmt.Fprintf(w, "%dx %s %s\n", l.Quantity, l.Name, l.LineTotal.StringFixed(0))
	}
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "Subtotal %s\n", result.Subtotal.StringFixed(0))
	fmt.Fprintf(w, "Shipping %s\n", result.ShippingFee.StringFixed(0))
	fmt.Fprintf(w, "Amount %s\n", result.Total.StringFixed(0))
}

func RenderCheckout(w io.Writer, result domain.CheckoutResult) {
	RenderShipment(w, result)
	if len(result.Manifest) > 0 {
		fmt.Fprintln(w)
	}
	RenderReceipt(w, result)
}
