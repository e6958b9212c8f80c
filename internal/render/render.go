// Package render formats CLI output tables.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/cashwatch/cashwatch/internal/database/repository"
	"github.com/cashwatch/cashwatch/internal/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ExpenseTable renders projected expenses ascending by date.
func ExpenseTable(expenses []service.ProjectedExpense, accountNames map[string]string, symbol string) string {
	if len(expenses) == 0 {
		return mutedStyle.Render("no projected expenses in the horizon") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %-32s %-20s %10s", "DATE", "NAME", "ACCOUNT", "AMOUNT")))
	b.WriteString("\n")
	for _, e := range expenses {
		name := accountNames[e.AccountID]
		if name == "" {
			name = e.AccountID
		}
		b.WriteString(fmt.Sprintf("%-12s %-32s %-20s %9s%s\n",
			e.Date.Format("2006-01-02"), truncate(e.Name, 32), truncate(name, 20), symbol, e.Amount.StringFixed(2)))
	}
	return b.String()
}

// Summary renders the shortfall report.
func Summary(rep service.ShortfallReport, horizonDays int, symbol string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("projected outflow over %d days: %s%s", horizonDays, symbol, rep.TotalProjected.StringFixed(2))))
	b.WriteString("\n")
	if len(rep.Shortfalls) == 0 {
		b.WriteString(okStyle.Render("no accounts at risk"))
		b.WriteString("\n")
		return b.String()
	}
	for _, s := range rep.Shortfalls {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%s is projected %s%s short", s.AccountName, symbol, s.Shortfall.StringFixed(2))))
		b.WriteString("\n")
	}
	return b.String()
}

// ItemTable renders recurring items.
func ItemTable(items []repository.RecurringItem, accountNames map[string]string, symbol string) string {
	if len(items) == 0 {
		return mutedStyle.Render("no recurring items detected yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-36s %-24s %-16s %-10s %10s %-12s %-6s", "ID", "NAME", "ACCOUNT", "FREQ", "AMOUNT", "NEXT", "FLAGS")))
	b.WriteString("\n")
	for _, item := range items {
		account := accountNames[item.AccountID]
		if account == "" {
			account = item.AccountID
		}
		flags := ""
		if !item.IsActive {
			flags += "muted "
		}
		if item.IsUserConfirmed {
			flags += "ok"
		}
		line := fmt.Sprintf("%-36s %-24s %-16s %-10s %9s%s %-12s %-6s",
			item.ID, truncate(item.Name, 24), truncate(account, 16), item.Frequency, symbol, item.Amount.StringFixed(2),
			item.NextProjectedDate.Format("2006-01-02"), flags)
		if !item.IsActive {
			line = mutedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// AccountTable renders accounts with balances.
func AccountTable(accounts []repository.Account, symbol string) string {
	if len(accounts) == 0 {
		return mutedStyle.Render("no accounts") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %-16s %12s %12s", "NAME", "TYPE", "AVAILABLE", "CURRENT")))
	b.WriteString("\n")
	for _, a := range accounts {
		b.WriteString(fmt.Sprintf("%-24s %-16s %12s %12s\n",
			truncate(a.Name, 24), a.AccountType, balanceStr(a.AvailableBalance, symbol), balanceStr(a.CurrentBalance, symbol)))
	}
	return b.String()
}

func balanceStr(d *decimal.Decimal, symbol string) string {
	if d == nil {
		return "-"
	}
	return symbol + d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
