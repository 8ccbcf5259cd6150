package sales

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"steeldesk/pkg/models"
)

// RenderInvoice formats a sale as the printable text invoice shown right
// after a successful create.
func RenderInvoice(sale *models.Sale) string {
	var b strings.Builder

	b.WriteString("============ SALES INVOICE ============\n")
	if sale.SaleCode != "" {
		fmt.Fprintf(&b, "Invoice No : %s\n", sale.SaleCode)
	}
	fmt.Fprintf(&b, "Date       : %s\n", sale.Date)
	fmt.Fprintf(&b, "Customer   : %s\n", sale.CustomerName)
	b.WriteString("---------------------------------------\n")

	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Product\tQty\tRate\tTotal")
	for _, l := range sale.Lines {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
			l.Name, trimFloat(l.Quantity), l.Unit, money(l.Rate), money(l.Total))
	}
	w.Flush()

	b.WriteString("---------------------------------------\n")
	fmt.Fprintf(&b, "Subtotal     : %s\n", money(sale.Subtotal))
	fmt.Fprintf(&b, "Discount     : %s\n", money(sale.Discount))
	fmt.Fprintf(&b, "Other Cost   : %s\n", money(sale.OtherCost))
	fmt.Fprintf(&b, "Grand Total  : %s\n", money(sale.GrandTotal))
	fmt.Fprintf(&b, "Amount Paid  : %s (%s)\n", money(sale.AmountPaid), sale.PaymentMethod)
	fmt.Fprintf(&b, "Due Amount   : %s\n", money(sale.DueAmount))
	b.WriteString("=======================================\n")

	return b.String()
}

func money(v float64) string {
	return fmt.Sprintf("Tk %.2f", v)
}

// trimFloat prints quantities without trailing zeros (2 not 2.00, 3.5 as is).
func trimFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
