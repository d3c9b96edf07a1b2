// =============================================================================
// Ledger Cleaner - Dataset Commands
// =============================================================================
//
// COMMAND USAGE:
//   ledgerclean bulk-orders <input_file> [output_file] [--summary monthly|customer]
//   ledgerclean items       <input_file> [output_file]
//   ledgerclean sales       <input_file> [output_file] [--daily]
//
// The output file defaults to the input name with "_cleaned" inserted before
// the extension. The exit code is 1 when the input cannot be read, the
// output cannot be written or no usable record was found; warnings alone
// never change it.
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/ledgerclean/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// summaryMode selects the bulk-orders output layout.
var summaryMode string

// salesDaily writes sales per day instead of per month.
var salesDaily bool

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

var bulkOrdersCmd = &cobra.Command{
	Use:   "bulk-orders <input_file> [output_file]",
	Short: "Clean a bulk-orders export",
	Long: `Clean a bulk-orders export: month header lines, then a
"Customer Name, Order Amount, Model No" header, then one row per order.

Output columns:
  (default)          customer_name, bulk_orders_amount, model_no, month_start
  --summary monthly  month_start, bulk_orders_count, bulk_orders_amount
  --summary customer month_start, customer_name, bulk_orders_count,
                     bulk_orders_amount, average_bulk_order_value, model_no`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := converter.ParseSummaryMode(summaryMode)
		if err != nil {
			return err
		}
		return runDataset(cmd.OutOrStdout(), converter.NewBulkOrders(mode), args)
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items <input_file> [output_file]",
	Short: "Clean an items-by-category export",
	Long: `Clean an items-by-category export: month header lines, then a
"Model No, Category" header, then one row per model.

Output columns: month_start, model_no, category_name`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDataset(cmd.OutOrStdout(), converter.NewItems(), args)
	},
}

var salesCmd = &cobra.Command{
	Use:   "sales <input_file> [output_file]",
	Short: "Clean a sales-by-day export",
	Long: `Clean a sales-by-day export: a title line, a "Date, Total Amount,
Company" header, then day rows with "MONTH OF <name> <year>" markers in the
date column. Rows without a company are subtotals and are skipped; rows
without a date take the last date seen in the same month.

Output columns:
  (default)  month_start, total_revenue, total_orders, total_units,
             avg_order_value, new_customers
  --daily    sale_date, total_revenue, entries`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDataset(cmd.OutOrStdout(), converter.NewSales(salesDaily, appConfig.SubtotalWarnings()), args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(bulkOrdersCmd, itemsCmd, salesCmd)

	bulkOrdersCmd.Flags().StringVar(
		&summaryMode,
		"summary",
		"",
		"Aggregate instead of listing orders: monthly or customer",
	)

	salesCmd.Flags().BoolVar(
		&salesDaily,
		"daily",
		false,
		"Write one row per day instead of per month",
	)
}
