package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Profit & loss and dashboard summaries",
}

var reportPnLCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Profit & loss for a date range",
	Example: `  steeldesk report pnl --start 2026-01-01 --end 2026-01-31
  steeldesk report pnl            # current month`,
	Args: cobra.NoArgs,
	RunE: runReportPnL,
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Landing summary: counts, dues, low stock",
	Args:  cobra.NoArgs,
	RunE:  runReportDashboard,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportPnLCmd)
	reportCmd.AddCommand(reportDashboardCmd)

	reportPnLCmd.Flags().String("start", "", "Start date (yyyy-mm-dd)")
	reportPnLCmd.Flags().String("end", "", "End date (yyyy-mm-dd)")
}

func runReportPnL(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")

	now := time.Now()
	if start == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")
	}
	if end == "" {
		end = now.Format("2006-01-02")
	}

	report, err := s.reports.PnL(context.Background(), start, end)
	if err != nil {
		return err
	}

	fmt.Printf("Profit & Loss %s to %s\n", start, end)
	fmt.Printf("  Total sales   : %.2f\n", report.TotalSales)
	fmt.Printf("  Total cost    : %.2f\n", report.TotalCost)
	fmt.Printf("  Total expense : %.2f\n", report.TotalExpense)
	fmt.Printf("  Profit        : %.2f\n", report.Profit)
	return nil
}

func runReportDashboard(cmd *cobra.Command, args []string) error {
	s := newServices()
	if err := requireLogin(s); err != nil {
		return err
	}

	d, err := s.reports.Dashboard(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Customers  : %d (due to collect %.2f)\n", d.CustomerCount, d.ReceivableDue)
	fmt.Printf("Suppliers  : %d (due to pay %.2f)\n", d.SupplierCount, d.PayableDue)
	fmt.Printf("Products   : %d\n", d.ProductCount)
	if len(d.LowStock) > 0 {
		fmt.Printf("Low stock (<= %.1f):\n", d.LowStockCutoff)
		for _, p := range d.LowStock {
			fmt.Printf("  %s: %.2f %s\n", p.Name, p.Stock, p.Unit)
		}
	}
	return nil
}
