package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Thaonnor/tally/internal/cli"
	"github.com/Thaonnor/tally/internal/config"
	"github.com/Thaonnor/tally/internal/core"
	"github.com/Thaonnor/tally/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	store := cli.OpenStore(ctx, logger, cfg.DBPath)
	defer store.Close()

	var err error
	switch args[0] {
	case "init":
		// Schema and system category are ensured by OpenStore.
		logger.Info("Database initialized", "path", cfg.DBPath)
	case "accounts":
		err = runAccounts(ctx, store, args[1:])
	case "categories":
		err = runCategories(ctx, store, args[1:])
	case "transactions":
		err = runTransactions(ctx, store, args[1:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: tally <command> [arguments]

commands:
  init                                        create the database file, schema, and system category
  accounts     list|get|add|update|archive    manage accounts
  categories   list|get|add|update|archive    manage categories
  transactions add|list                       record and page through transactions`)
}

func runAccounts(ctx context.Context, store *storage.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("accounts: missing subcommand (list|get|add|update|archive)")
	}

	switch args[0] {
	case "list":
		accounts, err := store.Accounts.ListActive(ctx)
		if err != nil {
			return err
		}
		return printJSON(accounts)

	case "get":
		fs := flag.NewFlagSet("accounts get", flag.ExitOnError)
		id := fs.Int64("id", 0, "account id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		account, err := store.Accounts.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(account)

	case "add", "update":
		fs := flag.NewFlagSet("accounts "+args[0], flag.ExitOnError)
		id := fs.Int64("id", 0, "account id (update only)")
		name := fs.String("name", "", "account name")
		accountType := fs.String("type", "", "account type (checking, savings, credit, ...)")
		institution := fs.String("institution", "", "institution name")
		balance := fs.String("balance", "", "current balance, e.g. 1000.50")
		order := fs.String("order", "", "display order")
		last4 := fs.String("last4", "", "last 4 digits of the account number")
		include := fs.Bool("include-net-worth", true, "include in net worth")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		req := core.CreateAccountRequest{
			Name:               *name,
			AccountType:        *accountType,
			Institution:        optString(*institution),
			IncludeInNetWorth:  include,
			AccountNumberLast4: optString(*last4),
		}
		if *balance != "" {
			d, err := decimal.NewFromString(*balance)
			if err != nil {
				return fmt.Errorf("parse balance: %w", err)
			}
			req.CurrentBalance = &d
		}
		var err error
		if req.DisplayOrder, err = optInt64(*order); err != nil {
			return fmt.Errorf("parse order: %w", err)
		}

		if args[0] == "add" {
			newID, err := store.Accounts.Insert(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"id": newID})
		}
		return store.Accounts.Update(ctx, *id, req)

	case "archive":
		fs := flag.NewFlagSet("accounts archive", flag.ExitOnError)
		id := fs.Int64("id", 0, "account id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return store.Accounts.Archive(ctx, *id)

	default:
		return fmt.Errorf("accounts: unknown subcommand %q", args[0])
	}
}

func runCategories(ctx context.Context, store *storage.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("categories: missing subcommand (list|get|add|update|archive)")
	}

	switch args[0] {
	case "list":
		categories, err := store.Categories.ListActive(ctx)
		if err != nil {
			return err
		}
		return printJSON(categories)

	case "get":
		fs := flag.NewFlagSet("categories get", flag.ExitOnError)
		id := fs.Int64("id", 0, "category id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		category, err := store.Categories.Get(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(category)

	case "add", "update":
		fs := flag.NewFlagSet("categories "+args[0], flag.ExitOnError)
		id := fs.Int64("id", 0, "category id (update only)")
		name := fs.String("name", "", "category name")
		order := fs.String("order", "", "display order")
		parent := fs.String("parent", "", "parent category id")
		discretionary := fs.String("discretionary", "", "default discretionary flag (true|false)")
		fixed := fs.String("fixed", "", "default fixed flag (true|false)")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		req := core.CreateCategoryRequest{Name: *name}
		var err error
		if req.DisplayOrder, err = optInt64(*order); err != nil {
			return fmt.Errorf("parse order: %w", err)
		}
		if req.ParentCategoryID, err = optInt64(*parent); err != nil {
			return fmt.Errorf("parse parent: %w", err)
		}
		if req.DefaultDiscretionary, err = optBool(*discretionary); err != nil {
			return fmt.Errorf("parse discretionary: %w", err)
		}
		if req.DefaultFixed, err = optBool(*fixed); err != nil {
			return fmt.Errorf("parse fixed: %w", err)
		}

		if args[0] == "add" {
			newID, err := store.Categories.Insert(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(map[string]int64{"id": newID})
		}
		return store.Categories.Update(ctx, *id, req)

	case "archive":
		fs := flag.NewFlagSet("categories archive", flag.ExitOnError)
		id := fs.Int64("id", 0, "category id")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		return store.Categories.Archive(ctx, *id)

	default:
		return fmt.Errorf("categories: unknown subcommand %q", args[0])
	}
}

func runTransactions(ctx context.Context, store *storage.Store, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("transactions: missing subcommand (add|list)")
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("transactions add", flag.ExitOnError)
		account := fs.Int64("account", 0, "account id")
		date := fs.String("date", "", "transaction date (YYYY-MM-DD)")
		amount := fs.String("amount", "", "amount, e.g. 25.50")
		description := fs.String("description", "", "description")
		payee := fs.String("payee", "", "payee")
		memo := fs.String("memo", "", "memo")
		category := fs.String("category", "", "category id")
		pending := fs.Bool("pending", false, "pending flag")
		cleared := fs.Bool("cleared", false, "cleared flag")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		d, err := decimal.NewFromString(*amount)
		if err != nil {
			return fmt.Errorf("parse amount: %w", err)
		}
		req := core.CreateTransactionRequest{
			AccountID:   *account,
			Date:        *date,
			Amount:      d,
			Description: optString(*description),
			Payee:       optString(*payee),
			Memo:        optString(*memo),
			Pending:     *pending,
			Cleared:     *cleared,
		}
		if req.CategoryID, err = optInt64(*category); err != nil {
			return fmt.Errorf("parse category: %w", err)
		}

		newID, err := store.Transactions.Insert(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(map[string]int64{"id": newID})

	case "list":
		fs := flag.NewFlagSet("transactions list", flag.ExitOnError)
		account := fs.Int64("account", 0, "account id")
		limit := fs.Int64("limit", 50, "page size")
		offset := fs.Int64("offset", 0, "page offset")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		transactions, err := store.Transactions.ListByAccount(ctx, *account, *limit, *offset)
		if err != nil {
			return err
		}
		return printJSON(transactions)

	default:
		return fmt.Errorf("transactions: unknown subcommand %q", args[0])
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt64(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func optBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
