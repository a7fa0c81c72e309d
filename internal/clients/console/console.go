// Package console is the interaction surface: nested text menus driving the
// accounting facade. It owns all prompting and printing; no ledger rule
// lives here.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"max.ks1230/accounting/internal/entity/ledger"
	"max.ks1230/accounting/internal/logger"
	"max.ks1230/accounting/internal/model/accounting"
	"max.ks1230/accounting/internal/model/records"
)

const (
	mainMenu = `=== Main menu ===
1. Log in
2. Register
3. Exit`

	userMenu = `=== User menu ===
1. Ledger management
2. Statistics
3. Log out`

	ledgerMenu = `=== Ledger management ===
1. Add income
2. Add expense
3. List all records
4. Modify a record
5. Delete a record
6. Back`

	statsMenu = `=== Statistics ===
1. Records by date range
2. Totals by date range
3. Totals by category
4. Back`

	categoryMenu = "Type: 1.Medical 2.Food 3.Transport 4.Shopping 5.Other"

	invalidChoiceMessage = "Invalid choice, try again"
	byeMessage           = "Bye!"
)

type Client struct {
	in  *bufio.Scanner
	out io.Writer
}

func New() *Client {
	return &Client{
		in:  bufio.NewScanner(os.Stdin),
		out: os.Stdout,
	}
}

// Run serves the main menu until the operator exits or ctx is cancelled.
func (c *Client) Run(ctx context.Context, svc *accounting.Service) {
	logger.Info("Start serving the menu")

	for ctx.Err() == nil {
		c.print(mainMenu)
		switch c.prompt("Choose an option: ") {
		case "1":
			c.login(ctx, svc)
		case "2":
			name := c.prompt("Name: ")
			secret := c.prompt("Password: ")
			c.report(svc.Register(ctx, name, secret))
		case "3":
			c.print(byeMessage)
			return
		default:
			c.print(invalidChoiceMessage)
		}
	}
}

func (c *Client) login(ctx context.Context, svc *accounting.Service) {
	name := c.prompt("Name: ")
	secret := c.prompt("Password: ")
	c.report(svc.Login(ctx, name, secret))
	if svc.LoggedIn() {
		c.userLoop(ctx, svc)
	}
}

func (c *Client) userLoop(ctx context.Context, svc *accounting.Service) {
	for ctx.Err() == nil {
		c.print(userMenu)
		switch c.prompt("Choose an option: ") {
		case "1":
			c.ledgerLoop(ctx, svc)
		case "2":
			c.statsLoop(ctx, svc)
		case "3":
			c.print(svc.Logout())
			return
		default:
			c.print(invalidChoiceMessage)
		}
	}
}

func (c *Client) ledgerLoop(ctx context.Context, svc *accounting.Service) {
	for ctx.Err() == nil {
		c.print(ledgerMenu)
		switch c.prompt("Choose an option: ") {
		case "1":
			c.report(svc.AddRecord(ctx, ledger.Income, c.promptInput(false)))
		case "2":
			c.report(svc.AddRecord(ctx, ledger.Expense, c.promptInput(false)))
		case "3":
			c.report(svc.ListAll(ctx))
		case "4":
			v, ok := c.promptVariant()
			if !ok {
				continue
			}
			id := c.prompt("Record ID: ")
			c.report(svc.UpdateRecord(ctx, v, id, c.promptInput(true)))
		case "5":
			v, ok := c.promptVariant()
			if !ok {
				continue
			}
			c.report(svc.DeleteRecord(ctx, v, c.prompt("Record ID: ")))
		case "6":
			return
		default:
			c.print(invalidChoiceMessage)
		}
	}
}

func (c *Client) statsLoop(ctx context.Context, svc *accounting.Service) {
	for ctx.Err() == nil {
		c.print(statsMenu)
		switch c.prompt("Choose an option: ") {
		case "1":
			from := c.prompt("Start date (YYYY-MM-DD): ")
			to := c.prompt("End date (YYYY-MM-DD): ")
			v, ok := c.promptVariant()
			if !ok {
				continue
			}
			c.report(svc.RecordsByRange(ctx, v, from, to))
		case "2":
			from := c.prompt("Start date (YYYY-MM-DD): ")
			to := c.prompt("End date (YYYY-MM-DD): ")
			c.report(svc.TotalsByRange(ctx, from, to))
		case "3":
			c.report(svc.TotalsByCategory(ctx))
		case "4":
			return
		default:
			c.print(invalidChoiceMessage)
		}
	}
}

// promptInput collects the record fields. With keepCurrent the prompts make
// clear that an empty answer keeps the stored value.
func (c *Client) promptInput(keepCurrent bool) records.Input {
	suffix := ""
	if keepCurrent {
		suffix = " (empty keeps current)"
	}
	in := records.Input{}
	in.Amount = c.prompt("Amount" + suffix + ": ")
	c.print(categoryMenu)
	in.CategoryChoice = c.prompt("Choose a type (1-5)" + suffix + ": ")
	if keepCurrent {
		in.Date = c.prompt("Date (YYYY-MM-DD)" + suffix + ": ")
	} else {
		in.Date = c.prompt("Date (YYYY-MM-DD, empty for today): ")
	}
	in.Note = c.prompt("Note (optional)" + suffix + ": ")
	return in
}

func (c *Client) promptVariant() (ledger.Variant, bool) {
	switch c.prompt("Record type (1.Income 2.Expense): ") {
	case "1":
		return ledger.Income, true
	case "2":
		return ledger.Expense, true
	}
	c.print(invalidChoiceMessage)
	return 0, false
}

func (c *Client) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *Client) print(msg string) {
	fmt.Fprintln(c.out, msg)
}

// report prints the user-facing message and logs the underlying error,
// which never leaves this boundary.
func (c *Client) report(msg string, err error) {
	if err != nil {
		logger.Error("operation failed", zap.Error(err))
	}
	c.print(msg)
}
