package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"steeldesk/internal/customers"
	"steeldesk/pkg/models"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers and due payments",
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE:  runCustomerList,
}

var customerSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search customers by name or phone",
	Long: `Search customers. With a query argument a single search runs; with
--interactive, queries are read from standard input line by line with a
debounce window, and only the latest query's results are shown.`,
	Example: `  steeldesk customer search rahman
  steeldesk customer search --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCustomerSearch,
}

var customerShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a customer profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerShow,
}

var customerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a customer",
	Args:  cobra.NoArgs,
	RunE:  runCustomerAdd,
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerUpdate,
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a customer",
	Args:  cobra.ExactArgs(1),
	RunE:  runCustomerDelete,
}

var customerHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show paged payment history",
	Example: `  steeldesk customer history --status Partial
  steeldesk customer history --search INV-001 --page 0 --size 20
  steeldesk customer history --interactive`,
	Args: cobra.NoArgs,
	RunE: runCustomerHistory,
}

var customerPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Record a due payment for a customer",
	Long: `Record a payment against the customer's outstanding due. When the
payment exceeds the due, the command refuses unless --confirm is set;
a confirmed overpayment leaves a zero or negative balance.`,
	Args: cobra.ExactArgs(1),
	RunE: runCustomerPay,
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerListCmd)
	customerCmd.AddCommand(customerSearchCmd)
	customerCmd.AddCommand(customerShowCmd)
	customerCmd.AddCommand(customerAddCmd)
	customerCmd.AddCommand(customerUpdateCmd)
	customerCmd.AddCommand(customerDeleteCmd)
	customerCmd.AddCommand(customerHistoryCmd)
	customerCmd.AddCommand(customerPayCmd)

	customerListCmd.Flags().Int("page", 0, "Page number")
	customerListCmd.Flags().Int("size", 20, "Page size")

	customerSearchCmd.Flags().Bool("interactive", false, "Read queries from stdin with debounce")

	for _, c := range []*cobra.Command{customerAddCmd, customerUpdateCmd} {
		c.Flags().String("name", "", "Customer name")
		c.Flags().String("phone", "", "Phone number")
		c.Flags().String("address", "", "Address")
		c.Flags().Float64("due", 0, "Opening due amount")
	}

	customerHistoryCmd.Flags().Int("page", 0, "Page number")
	customerHistoryCmd.Flags().Int("size", 20, "Page size")
	customerHistoryCmd.Flags().String("sort", "", "Sort expression, e.g. date,desc")
	customerHistoryCmd.Flags().String("status", "", "Filter by status: Paid, Partial, Unpaid")
	customerHistoryCmd.Flags().String("search", "", "Customer name or invoice number fragment")
	customerHistoryCmd.Flags().Bool("interactive", false, "Read search fragments from stdin with debounce")

	customerPayCmd.Flags().Float64("amount", 0, "Payment amount")
	customerPayCmd.Flags().String("method", "Cash", "Payment method")
	customerPayCmd.Flags().String("date", "", "Payment date (yyyy-mm-dd, default today)")
	customerPayCmd.Flags().Bool("confirm", false, "Allow payment above the current due")
}

func printCustomers(custs []models.Customer) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tADDRESS\tDUE")
	for _, c := range custs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", c.ID, c.Name, c.Phone, c.Address, c.DueAmount)
	}
	w.Flush()
}

func runCustomerList(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")

	result, err := s.customers.List(context.Background(), page, size)
	if err != nil {
		return err
	}
	printCustomers(result.Content)
	fmt.Printf("\nPage %d/%d, %d customers total\n", result.Page+1, result.TotalPages, result.TotalElements)
	return nil
}

func runCustomerSearch(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	interactive, _ := cmd.Flags().GetBool("interactive")

	if !interactive {
		if len(args) == 0 {
			return fmt.Errorf("a query argument is required unless --interactive is set")
		}
		found, err := s.customers.Search(context.Background(), args[0])
		if err != nil {
			return err
		}
		printCustomers(found)
		return nil
	}

	return interactiveSearch(
		func(ctx context.Context, query string) (any, error) {
			return s.customers.Search(ctx, query)
		},
		func(query string, results any) {
			fmt.Printf("\nResults for %q:\n", query)
			printCustomers(results.([]models.Customer))
		},
	)
}

func runCustomerShow(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := s.customers.Get(context.Background(), id)
	if err != nil {
		return err
	}
	fmt.Printf("Name    : %s\n", c.Name)
	fmt.Printf("Phone   : %s\n", c.Phone)
	fmt.Printf("Address : %s\n", c.Address)
	fmt.Printf("Due     : %.2f\n", c.DueAmount)
	if !c.CreatedAt.IsZero() {
		fmt.Printf("Since   : %s\n", c.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func customerInputFromFlags(cmd *cobra.Command) customers.CustomerInput {
	name, _ := cmd.Flags().GetString("name")
	phone, _ := cmd.Flags().GetString("phone")
	address, _ := cmd.Flags().GetString("address")
	due, _ := cmd.Flags().GetFloat64("due")
	return customers.CustomerInput{Name: name, Phone: phone, Address: address, DueAmount: due}
}

func runCustomerAdd(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	created, err := s.customers.Create(context.Background(), customerInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Customer %s created with id %d\n", created.Name, created.ID)
	return nil
}

func runCustomerUpdate(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	updated, err := s.customers.Update(context.Background(), id, customerInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Customer %d updated\n", updated.ID)
	return nil
}

func runCustomerDelete(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.customers.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Customer %d deleted\n", id)
	return nil
}

func printPaymentHistory(result *models.Page[models.PaymentRecord]) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INVOICE\tCUSTOMER\tDATE\tAMOUNT\tPAID\tDUE\tSTATUS")
	var totalAmount, totalPaid, totalDue float64
	for _, r := range result.Content {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%s\n",
			r.InvoiceNo, r.CustomerName, r.Date, r.Amount, r.Paid, r.Due, r.Status)
		totalAmount += r.Amount
		totalPaid += r.Paid
		totalDue += r.Due
	}
	w.Flush()
	fmt.Printf("\nTotals: amount %.2f, paid %.2f, due %.2f\n", totalAmount, totalPaid, totalDue)
	fmt.Printf("Page %d/%d, %d records total\n", result.Page+1, result.TotalPages, result.TotalElements)
}

func runCustomerHistory(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	sort, _ := cmd.Flags().GetString("sort")
	status, _ := cmd.Flags().GetString("status")
	searchQ, _ := cmd.Flags().GetString("search")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if interactive {
		// Each typed line replaces the search fragment; the other filters
		// keep their flag values.
		return interactiveSearch(
			func(ctx context.Context, query string) (any, error) {
				return s.customers.PaymentHistory(ctx, customers.HistoryQuery{
					Page:   page,
					Size:   size,
					Sort:   sort,
					Status: status,
					Search: query,
				})
			},
			func(query string, results any) {
				fmt.Printf("\nRecords matching %q:\n", query)
				printPaymentHistory(results.(*models.Page[models.PaymentRecord]))
			},
		)
	}

	result, err := s.customers.PaymentHistory(context.Background(), customers.HistoryQuery{
		Page:   page,
		Size:   size,
		Sort:   sort,
		Status: status,
		Search: searchQ,
	})
	if err != nil {
		return err
	}
	printPaymentHistory(result)
	return nil
}

func runCustomerPay(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	amount, _ := cmd.Flags().GetFloat64("amount")
	method, _ := cmd.Flags().GetString("method")
	date, _ := cmd.Flags().GetString("date")
	confirm, _ := cmd.Flags().GetBool("confirm")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	updated, authoritative, err := s.customers.PayDue(context.Background(), customers.PaymentInput{
		CustomerID: id,
		Amount:     amount,
		Method:     method,
		Date:       date,
		Confirmed:  confirm,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Payment of %.2f recorded for %s\n", amount, updated.Name)
	if authoritative {
		fmt.Printf("New due: %.2f\n", updated.DueAmount)
	} else {
		fmt.Printf("New due: %.2f (provisional, server re-fetch failed)\n", updated.DueAmount)
	}
	return nil
}
