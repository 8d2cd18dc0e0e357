package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	catalogapp "github.com/fliamecomm/storefront/internal/application/catalog"
	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/infrastructure/config"
	"github.com/fliamecomm/storefront/internal/infrastructure/event"
	"github.com/fliamecomm/storefront/internal/infrastructure/logger"
	"github.com/fliamecomm/storefront/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		timeout  time.Duration
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Command timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, logger.NewGormLogger(log, logger.MapGormLogLevel("warn")))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Nothing subscribes here; catalog events from the CLI are dropped
	bus := event.NewInMemoryEventBus(log)
	catalogService := catalogapp.NewCatalogService(
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCategoryRepository(db.DB),
		persistence.NewGormBrandRepository(db.DB),
		persistence.NewGormLikeRepository(db.DB),
		nil, nil, bus, log,
	)

	if err := run(ctx, args, catalogService, persistence.NewGormUserRepository(db.DB), log); err != nil {
		log.Fatal("Command failed", zap.String("command", args[0]), zap.Error(err))
	}
}

func run(ctx context.Context, args []string, catalog *catalogapp.CatalogService, users identity.UserRepository, log *zap.Logger) error {
	switch args[0] {
	case "createstaff":
		if len(args) < 3 {
			return fmt.Errorf("usage: manage createstaff <username> <password> [email]")
		}
		email := ""
		if len(args) > 3 {
			email = args[3]
		}
		user, err := identity.NewStaffUser(args[1], email, args[2])
		if err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		log.Info("Staff user created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
		return nil

	case "brand", "category":
		if len(args) < 2 {
			return fmt.Errorf("usage: manage %s <add|delete|list> [argument]", args[0])
		}
		return runCatalog(ctx, args[0], args[1], args[2:], catalog, log)

	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: manage export <file.xlsx>")
		}
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := catalog.ExportProducts(ctx, f); err != nil {
			return err
		}
		log.Info("Products exported", zap.String("file", args[1]))
		return nil

	default:
		printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCatalog(ctx context.Context, kind, action string, rest []string, catalog *catalogapp.CatalogService, log *zap.Logger) error {
	switch action {
	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("usage: manage %s add <name>", kind)
		}
		if kind == "brand" {
			b, err := catalog.CreateBrand(ctx, rest[0])
			if err != nil {
				return err
			}
			log.Info("Brand created", zap.String("id", b.ID.String()), zap.String("name", b.Name))
			return nil
		}
		cat, err := catalog.CreateCategory(ctx, rest[0])
		if err != nil {
			return err
		}
		log.Info("Category created", zap.String("id", cat.ID.String()), zap.String("name", cat.Name))
		return nil

	case "delete":
		if len(rest) == 0 {
			return fmt.Errorf("usage: manage %s delete <id>", kind)
		}
		id, err := uuid.Parse(rest[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", rest[0], err)
		}
		if kind == "brand" {
			err = catalog.DeleteBrand(ctx, id)
		} else {
			err = catalog.DeleteCategory(ctx, id)
		}
		if err != nil {
			return err
		}
		log.Info("Deleted along with its products", zap.String("kind", kind), zap.String("id", id.String()))
		return nil

	case "list":
		if kind == "brand" {
			brands, err := catalog.ListBrands(ctx)
			if err != nil {
				return err
			}
			for _, b := range brands {
				fmt.Printf("  %s  %s\n", b.ID, b.Name)
			}
			return nil
		}
		categories, err := catalog.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("  %s  %s\n", c.ID, c.Name)
		}
		return nil
	}
	return fmt.Errorf("unknown %s action %q", kind, action)
}

func printUsage() {
	fmt.Println(`Storefront management tool

Usage:
  manage [flags] <command> [arguments]

Commands:
  createstaff <username> <password> [email]  Create a staff account
  brand add <name>                           Create a brand
  brand delete <id>                          Delete a brand and its products
  brand list                                 List brands
  category add <name>                        Create a category
  category delete <id>                       Delete a category and its products
  category list                              List categories
  export <file.xlsx>                         Write the product sheet

Flags:
  -log-level string     Log level: debug, info, warn, error (default: info)
  -timeout duration     Command timeout (default: 30s)

Database settings come from config.toml and SHOP_DATABASE_* variables.`)
}
