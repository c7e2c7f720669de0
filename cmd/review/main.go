package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logLvl  string
	rootCmd = &cobra.Command{
		Use:   "review",
		Short: "Review and approve employee transactions",
		Long: `review talks to the transaction review service over gRPC.

It lists transactions page by page or for a single employee, and toggles
the approval of a transaction in the list being shown.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLvl, "log-level", "", "override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(employeesCmd())
	rootCmd.AddCommand(approveCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
