package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"steeldesk/internal/suppliers"
	"steeldesk/pkg/models"
)

var supplierCmd = &cobra.Command{
	Use:   "supplier",
	Short: "Manage suppliers and shipments",
}

var supplierListCmd = &cobra.Command{
	Use:   "list",
	Short: "List suppliers",
	Args:  cobra.NoArgs,
	RunE:  runSupplierList,
}

var supplierAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a supplier",
	Args:  cobra.NoArgs,
	RunE:  runSupplierAdd,
}

var supplierUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a supplier",
	Args:  cobra.ExactArgs(1),
	RunE:  runSupplierUpdate,
}

var supplierDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a supplier",
	Args:  cobra.ExactArgs(1),
	RunE:  runSupplierDelete,
}

var supplierShipCmd = &cobra.Command{
	Use:   "ship [supplier-id]",
	Short: "Record a shipment from a supplier",
	Long: `Record a supplier delivery with its cost breakdown and payment.

The payment first retires the supplier's existing due; the remainder
offsets the purchase amount of this shipment. Labor and transport costs
belong to the shipment record only and never change the supplier's
running due.`,
	Example: `  steeldesk supplier ship 3 --purchase 2000 --labor 100 --transport 50 --paid 1500`,
	Args:    cobra.ExactArgs(1),
	RunE:    runSupplierShip,
}

func init() {
	rootCmd.AddCommand(supplierCmd)
	supplierCmd.AddCommand(supplierListCmd)
	supplierCmd.AddCommand(supplierAddCmd)
	supplierCmd.AddCommand(supplierUpdateCmd)
	supplierCmd.AddCommand(supplierDeleteCmd)
	supplierCmd.AddCommand(supplierShipCmd)

	supplierListCmd.Flags().Int("page", 0, "Page number")
	supplierListCmd.Flags().Int("size", 20, "Page size")

	for _, c := range []*cobra.Command{supplierAddCmd, supplierUpdateCmd} {
		c.Flags().String("name", "", "Supplier name")
		c.Flags().String("contact", "", "Contact person")
		c.Flags().String("phone", "", "Contact number")
		c.Flags().String("email", "", "Email")
		c.Flags().String("address", "", "Address")
		c.Flags().Float64("due", 0, "Opening due amount")
	}

	supplierShipCmd.Flags().Float64("purchase", 0, "Purchase amount")
	supplierShipCmd.Flags().Float64("labor", 0, "Labor cost")
	supplierShipCmd.Flags().Float64("transport", 0, "Transport cost")
	supplierShipCmd.Flags().Float64("paid", 0, "Paid amount")
	supplierShipCmd.Flags().String("date", "", "Shipment date (yyyy-mm-dd, default today)")
}

func printSuppliers(supps []models.Supplier) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTACT\tPHONE\tDUE")
	for _, sp := range supps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", sp.ID, sp.Name, sp.ContactPerson, sp.ContactNumber, sp.DueAmount)
	}
	w.Flush()
}

func supplierInputFromFlags(cmd *cobra.Command) suppliers.SupplierInput {
	name, _ := cmd.Flags().GetString("name")
	contact, _ := cmd.Flags().GetString("contact")
	phone, _ := cmd.Flags().GetString("phone")
	email, _ := cmd.Flags().GetString("email")
	address, _ := cmd.Flags().GetString("address")
	due, _ := cmd.Flags().GetFloat64("due")
	return suppliers.SupplierInput{
		Name:          name,
		ContactPerson: contact,
		ContactNumber: phone,
		Email:         email,
		Address:       address,
		DueAmount:     due,
	}
}

func runSupplierList(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")

	result, err := s.suppliers.List(context.Background(), page, size)
	if err != nil {
		return err
	}
	printSuppliers(result.Content)
	fmt.Printf("\nPage %d/%d, %d suppliers total\n", result.Page+1, result.TotalPages, result.TotalElements)
	return nil
}

func runSupplierAdd(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	created, err := s.suppliers.Create(context.Background(), supplierInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Supplier %s created with id %d\n", created.Name, created.ID)
	return nil
}

func runSupplierUpdate(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	updated, err := s.suppliers.Update(context.Background(), id, supplierInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Supplier %d updated\n", updated.ID)
	return nil
}

func runSupplierDelete(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.suppliers.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Supplier %d deleted\n", id)
	return nil
}

func runSupplierShip(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	purchase, _ := cmd.Flags().GetFloat64("purchase")
	labor, _ := cmd.Flags().GetFloat64("labor")
	transport, _ := cmd.Flags().GetFloat64("transport")
	paid, _ := cmd.Flags().GetFloat64("paid")
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	supplier, err := s.suppliers.Get(context.Background(), id)
	if err != nil {
		return err
	}

	result, err := s.suppliers.RecordShipment(context.Background(), suppliers.ShipmentInput{
		SupplierID:     id,
		SupplierName:   supplier.Name,
		Date:           date,
		PurchaseAmount: purchase,
		LaborCost:      labor,
		TransportCost:  transport,
		PaidAmount:     paid,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Shipment recorded for %s\n", supplier.Name)
	fmt.Printf("  Total (purchase+labor+transport) : %.2f\n", result.Allocation.ShipmentTotal)
	fmt.Printf("  Paid                             : %.2f\n", paid)
	fmt.Printf("  Shipment due                     : %.2f\n", result.Allocation.ShipmentDue)
	fmt.Printf("  Paid against old due             : %.2f\n", result.Allocation.PaidToExisting)
	fmt.Printf("  Due from this purchase           : %.2f\n", result.Allocation.DueFromPurchase)
	if result.Provisional {
		fmt.Printf("  Supplier running due             : %.2f (provisional)\n", result.Supplier.DueAmount)
	} else {
		fmt.Printf("  Supplier running due             : %.2f\n", result.Supplier.DueAmount)
	}
	return nil
}
