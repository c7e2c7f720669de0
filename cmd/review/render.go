package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/ogurasousui/transaction-review/internal/client/review"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	approvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func renderTransactions(w io.Writer, title string, txs []review.Transaction, canViewMore bool) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(title)); err != nil {
		return err
	}
	if len(txs) == 0 {
		_, err := fmt.Fprintln(w, hintStyle.Render("No transactions."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tDATE\tEMPLOYEE\tMERCHANT\tAMOUNT\tSTATUS"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tx := range txs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			tx.Date,
			fullName(tx.Employee),
			tx.Merchant,
			tx.Amount.StringFixed(2),
			approvalLabel(tx.Approved)); err != nil {
			return fmt.Errorf("failed to write transaction row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if canViewMore {
		_, err := fmt.Fprintln(w, hintStyle.Render("More transactions available (use --more)."))
		return err
	}
	return nil
}

func renderEmployees(w io.Writer, options []review.Employee) error {
	if options == nil {
		_, err := fmt.Fprintln(w, hintStyle.Render("No employees."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tNAME"); err != nil {
		return err
	}
	for _, e := range options {
		id := e.ID
		if id == review.EmptyEmployee.ID {
			id = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", id, fullName(e)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func fullName(e review.Employee) string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func approvalLabel(approved bool) string {
	if approved {
		return approvedStyle.Render("approved")
	}
	return pendingStyle.Render("pending")
}
