package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"steeldesk/internal/products"
	"steeldesk/pkg/models"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage products and stock",
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Args:  cobra.NoArgs,
	RunE:  runInventoryList,
}

var inventorySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by name or code",
	Long: `Search products. With a query argument a single search runs; with
--interactive, queries are read from standard input line by line with a
debounce window, and only the latest query's results are shown.`,
	Example: `  steeldesk inventory search "flat bar"
  steeldesk inventory search --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInventorySearch,
}

var inventoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE:  runInventoryAdd,
}

var inventoryUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryUpdate,
}

var inventoryDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE:  runInventoryDelete,
}

var inventoryOptionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the category/type/warehouse/supplier values in use",
	Args:  cobra.NoArgs,
	RunE:  runInventoryOptions,
}

func init() {
	rootCmd.AddCommand(inventoryCmd)
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventorySearchCmd)
	inventoryCmd.AddCommand(inventoryAddCmd)
	inventoryCmd.AddCommand(inventoryUpdateCmd)
	inventoryCmd.AddCommand(inventoryDeleteCmd)
	inventoryCmd.AddCommand(inventoryOptionsCmd)

	inventoryListCmd.Flags().Int("page", 0, "Page number")
	inventoryListCmd.Flags().Int("size", 20, "Page size")

	inventorySearchCmd.Flags().Bool("interactive", false, "Read queries from stdin with debounce")
	inventorySearchCmd.Flags().Int("page", 0, "Page number")
	inventorySearchCmd.Flags().Int("size", 20, "Page size")

	for _, c := range []*cobra.Command{inventoryAddCmd, inventoryUpdateCmd} {
		c.Flags().String("name", "", "Product name")
		c.Flags().String("code", "", "Product code")
		c.Flags().Float64("stock", 0, "Stock quantity")
		c.Flags().String("unit", "", "Unit (e.g. ton, piece)")
		c.Flags().String("category", "", "Category")
		c.Flags().String("type", "", "Type")
		c.Flags().Float64("buying-price", 0, "Buying price")
		c.Flags().Float64("selling-price", 0, "Selling price")
		c.Flags().String("warehouse", "", "Warehouse")
		c.Flags().String("supplier", "", "Supplier name")
		c.Flags().String("date", "", "Date (yyyy-mm-dd)")
	}
}

func productInputFromFlags(cmd *cobra.Command) products.ProductInput {
	name, _ := cmd.Flags().GetString("name")
	code, _ := cmd.Flags().GetString("code")
	stock, _ := cmd.Flags().GetFloat64("stock")
	unit, _ := cmd.Flags().GetString("unit")
	category, _ := cmd.Flags().GetString("category")
	ptype, _ := cmd.Flags().GetString("type")
	buying, _ := cmd.Flags().GetFloat64("buying-price")
	selling, _ := cmd.Flags().GetFloat64("selling-price")
	warehouse, _ := cmd.Flags().GetString("warehouse")
	supplier, _ := cmd.Flags().GetString("supplier")
	date, _ := cmd.Flags().GetString("date")

	return products.ProductInput{
		Name:         name,
		ProductCode:  code,
		Stock:        stock,
		Unit:         unit,
		Category:     category,
		Type:         ptype,
		BuyingPrice:  buying,
		SellingPrice: selling,
		Warehouse:    warehouse,
		SupplierName: supplier,
		Date:         date,
	}
}

func printProducts(prods []models.Product) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tNAME\tSTOCK\tUNIT\tCATEGORY\tWAREHOUSE\tSELL PRICE")
	for _, p := range prods {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\t%s\t%.2f\n",
			p.ID, p.ProductCode, p.Name, p.Stock, p.Unit, p.Category, p.Warehouse, p.SellingPrice)
	}
	w.Flush()
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")

	result, err := s.products.List(context.Background(), page, size)
	if err != nil {
		return err
	}
	printProducts(result.Content)
	fmt.Printf("\nPage %d/%d, %d products total\n", result.Page+1, result.TotalPages, result.TotalElements)
	return nil
}

func runInventorySearch(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	interactive, _ := cmd.Flags().GetBool("interactive")

	if !interactive {
		if len(args) == 0 {
			return fmt.Errorf("a query argument is required unless --interactive is set")
		}
		result, err := s.products.Search(context.Background(), args[0], page, size)
		if err != nil {
			return err
		}
		printProducts(result.Content)
		return nil
	}

	// Interactive mode: every line is a new query; rapid lines collapse into
	// one request and a stale response never overwrites a newer one.
	return interactiveSearch(
		func(ctx context.Context, query string) (any, error) {
			return s.products.Search(ctx, query, 0, size)
		},
		func(query string, results any) {
			result := results.(*models.Page[models.Product])
			fmt.Printf("\nResults for %q:\n", query)
			printProducts(result.Content)
		},
	)
}

func runInventoryAdd(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	created, err := s.products.Create(context.Background(), productInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Product %s created with id %d\n", created.Name, created.ID)
	return nil
}

func runInventoryUpdate(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	updated, err := s.products.Update(context.Background(), id, productInputFromFlags(cmd))
	if err != nil {
		return err
	}
	fmt.Printf("Product %d updated\n", updated.ID)
	return nil
}

func runInventoryDelete(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.products.Delete(context.Background(), id); err != nil {
		return err
	}
	fmt.Printf("Product %d deleted\n", id)
	return nil
}

func runInventoryOptions(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	result, err := s.products.List(context.Background(), 0, 200)
	if err != nil {
		return err
	}
	opts := products.BuildOptions(result.Content)
	fmt.Printf("Categories : %s\n", strings.Join(opts.Categories, ", "))
	fmt.Printf("Types      : %s\n", strings.Join(opts.Types, ", "))
	fmt.Printf("Warehouses : %s\n", strings.Join(opts.Warehouses, ", "))
	fmt.Printf("Suppliers  : %s\n", strings.Join(opts.Suppliers, ", "))
	return nil
}
