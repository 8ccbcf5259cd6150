package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"steeldesk/internal/invoice"
	"steeldesk/internal/sales"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Create sales invoices and list past sales",
}

var salesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a sales invoice",
	Long: `Build an invoice draft from --line flags, show the computed totals,
submit it, and print the invoice using the server's authoritative sale
code and totals.

Each --line is product-id:quantity[:rate]. When rate is omitted the
product's current selling price is used. The product's stock is
re-fetched before the line is accepted, and a quantity above the
available stock aborts unless --allow-oversell is set.`,
	Example: `  steeldesk sales create --customer 1 --line 5:2 --line 9:1:60000 \
      --discount 1000 --other-cost 500 --paid 150000 --method Cash`,
	Args: cobra.NoArgs,
	RunE: runSalesCreate,
}

var salesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past sales",
	Args:  cobra.NoArgs,
	RunE:  runSalesList,
}

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.AddCommand(salesCreateCmd)
	salesCmd.AddCommand(salesListCmd)

	salesCreateCmd.Flags().Int64("customer", 0, "Customer id")
	salesCreateCmd.Flags().StringArray("line", nil, "Invoice line: product-id:quantity[:rate]")
	salesCreateCmd.Flags().Float64("discount", 0, "Discount")
	salesCreateCmd.Flags().Float64("other-cost", 0, "Other cost (labor/transport)")
	salesCreateCmd.Flags().Float64("paid", 0, "Amount paid")
	salesCreateCmd.Flags().String("method", "Cash", "Payment method: Cash, Bank, Mobile Banking")
	salesCreateCmd.Flags().String("date", "", "Invoice date (yyyy-mm-dd, default today)")
	salesCreateCmd.Flags().Bool("allow-oversell", false, "Accept quantities above the fetched stock")

	salesListCmd.Flags().Int("page", 0, "Page number")
	salesListCmd.Flags().Int("size", 20, "Page size")
}

// parseLineSpec splits a product-id:quantity[:rate] flag value.
func parseLineSpec(spec string) (productID int64, quantity, rate float64, hasRate bool, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, false, fmt.Errorf("invalid line %q, want product-id:quantity[:rate]", spec)
	}
	productID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil || productID <= 0 {
		return 0, 0, 0, false, fmt.Errorf("invalid product id in line %q", spec)
	}
	quantity = invoice.Amount(parts[1])
	if quantity <= 0 {
		return 0, 0, 0, false, fmt.Errorf("invalid quantity in line %q", spec)
	}
	if len(parts) == 3 {
		rate = invoice.Amount(parts[2])
		hasRate = true
	}
	return productID, quantity, rate, hasRate, nil
}

func runSalesCreate(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	ctx := context.Background()

	customerID, _ := cmd.Flags().GetInt64("customer")
	lineSpecs, _ := cmd.Flags().GetStringArray("line")
	discount, _ := cmd.Flags().GetFloat64("discount")
	otherCost, _ := cmd.Flags().GetFloat64("other-cost")
	paid, _ := cmd.Flags().GetFloat64("paid")
	method, _ := cmd.Flags().GetString("method")
	date, _ := cmd.Flags().GetString("date")
	allowOversell, _ := cmd.Flags().GetBool("allow-oversell")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customer lookup failed: %w", err)
	}

	draft := invoice.NewDraft(customer.ID, customer.Name, date)
	draft.Discount = discount
	draft.OtherCost = otherCost
	draft.AmountPaid = paid
	draft.PaymentMethod = method

	for _, spec := range lineSpecs {
		productID, quantity, rate, hasRate, err := parseLineSpec(spec)
		if err != nil {
			return err
		}

		// Stock is authoritative on the server; fetch the latest before
		// accepting the quantity.
		product, err := s.products.Get(ctx, productID)
		if err != nil {
			return fmt.Errorf("product %d lookup failed: %w", productID, err)
		}
		if quantity > product.Stock && !allowOversell {
			return fmt.Errorf("quantity %.3f of %s exceeds stock %.3f %s (use --allow-oversell to override)",
				quantity, product.Name, product.Stock, product.Unit)
		}
		if !hasRate {
			rate = product.SellingPrice
		}
		draft.AddLine(product.ID, product.Name, product.Unit, quantity, rate)
	}

	totals := draft.Totals()
	fmt.Printf("Customer    : %s (current due %.2f)\n", customer.Name, customer.DueAmount)
	fmt.Printf("Subtotal    : %.2f\n", totals.Subtotal)
	fmt.Printf("Grand total : %.2f\n", totals.GrandTotal)
	fmt.Printf("Due         : %.2f\n", totals.Due)
	fmt.Println()

	// Single non-idempotent POST; on failure the draft above is unchanged
	// and the operator can re-run.
	sale, err := s.sales.Create(ctx, draft)
	if err != nil {
		return err
	}

	fmt.Print(sales.RenderInvoice(sale))
	return nil
}

func runSalesList(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")

	result, err := s.sales.List(context.Background(), page, size)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDATE\tCUSTOMER\tGRAND TOTAL\tPAID\tDUE")
	for _, sale := range result.Content {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
			sale.SaleCode, sale.Date, sale.CustomerName, sale.GrandTotal, sale.AmountPaid, sale.DueAmount)
	}
	w.Flush()
	fmt.Printf("\nPage %d/%d, %d sales total\n", result.Page+1, result.TotalPages, result.TotalElements)
	return nil
}
