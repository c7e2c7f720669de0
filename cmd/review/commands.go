package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ogurasousui/transaction-review/internal/client/review"
)

func listCmd() *cobra.Command {
	var (
		employeeID string
		more       int
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions for all employees, one page at a time, or for a
single employee when --employee is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if err := s.load(ctx, employeeID); err != nil {
				return err
			}

			for i := 0; all || i < more; i++ {
				if !s.view.CanViewMore() {
					break
				}
				if err := s.view.ViewMore(ctx); err != nil {
					if errors.Is(err, review.ErrNoMorePages) {
						break
					}
					return fmt.Errorf("view more: %w", err)
				}
			}

			return printView(cmd, s.view, employeeID)
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "only show transactions of this employee id")
	cmd.Flags().IntVar(&more, "more", 0, "number of additional pages to load")
	cmd.Flags().BoolVar(&all, "all", false, "load every remaining page")

	return cmd
}

func employeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees available as filters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.load(cmd.Context(), ""); err != nil {
				return err
			}
			return renderEmployees(cmd.OutOrStdout(), s.view.Employees())
		},
	}
}

func approveCmd() *cobra.Command {
	var employeeID string

	cmd := &cobra.Command{
		Use:   "approve <transaction-id>",
		Short: "Toggle the approval of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			if err := s.load(ctx, employeeID); err != nil {
				return err
			}

			id := args[0]
			for {
				err := s.view.Approve(ctx, id)
				if err == nil {
					break
				}
				if !errors.Is(err, review.ErrTransactionNotVisible) || !s.view.CanViewMore() {
					return err
				}
				if err := s.view.ViewMore(ctx); err != nil {
					return fmt.Errorf("view more: %w", err)
				}
			}

			return printView(cmd, s.view, employeeID)
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "look for the transaction among this employee's transactions")

	return cmd
}

func printView(cmd *cobra.Command, view *review.View, employeeID string) error {
	txs, ok := view.Transactions()
	if !ok {
		return errors.New("no transactions loaded")
	}

	title := "Transactions"
	if employeeID != "" {
		title = fmt.Sprintf("Transactions of %s", employeeID)
	}
	return renderTransactions(cmd.OutOrStdout(), title, txs, view.CanViewMore())
}
