package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/foodikal/ny-backend/internal/auth"
	"github.com/foodikal/ny-backend/internal/config"
	"github.com/foodikal/ny-backend/internal/domain"
	"github.com/foodikal/ny-backend/internal/repository/postgres"
	"github.com/foodikal/ny-backend/internal/service"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize the database schema and seed data",
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Create all tables if they do not exist",
				Action: runSchema,
			},
			{
				Name:  "menu",
				Usage: "Load menu items from a JSON file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path to the menu JSON file",
						Value:   "./data/seeds/menu.json",
						EnvVars: []string{"SEED_MENU_FILE"},
					},
				},
				Action: runMenuSeed,
			},
			{
				Name:  "orders",
				Usage: "Load demo orders from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path to the orders CSV file",
						Value:   "./data/seeds/orders.csv",
						EnvVars: []string{"SEED_ORDERS_FILE"},
					},
				},
				Action: runOrderSeed,
			},
			{
				Name:  "hash-password",
				Usage: "Derive the ADMIN_PASSWORD_HASH value for a plain password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "password",
						Usage:    "Plain admin password",
						Required: true,
					},
				},
				Action: runHashPassword,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB() (*postgres.DB, error) {
	cfg := config.Load()
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func runSchema(c *cli.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitSchema(c.Context); err != nil {
		return err
	}
	log.Println("schema initialized")
	return nil
}

func runMenuSeed(c *cli.Context) error {
	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read menu file: %w", err)
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse menu file: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitSchema(c.Context); err != nil {
		return err
	}

	repo := postgres.NewMenuRepository(db)
	seeded := 0
	for i := range items {
		if !domain.ValidCategory(items[i].Category) {
			log.Printf("skipping %q: unknown category %q", items[i].Name, items[i].Category)
			continue
		}
		if err := repo.Create(c.Context, &items[i]); err != nil {
			return fmt.Errorf("failed to seed %q: %w", items[i].Name, err)
		}
		seeded++
	}
	log.Printf("seeded %d menu items", seeded)
	return nil
}

func runOrderSeed(c *cli.Context) error {
	file, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to open orders file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to parse orders file: %w", err)
	}

	inputs, err := parseOrderRows(records)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitSchema(c.Context); err != nil {
		return err
	}

	// The service prices the rows from the seeded catalog, same as a real
	// checkout.
	svc := service.NewOrderService(
		postgres.NewOrderRepository(db),
		postgres.NewMenuRepository(db),
		postgres.NewPromoRepository(db),
		nil,
	)
	for _, in := range inputs {
		if _, err := svc.Create(c.Context, in); err != nil {
			return fmt.Errorf("failed to seed order for %q on %s: %w",
				in.CustomerName, in.DeliveryDate, err)
		}
	}
	log.Printf("seeded %d demo orders", len(inputs))
	return nil
}

// parseOrderRows turns the CSV rows into order inputs. Each data row is one
// line item: customer_name, customer_contact, delivery_date, item_id,
// quantity. Consecutive rows with the same customer and date form one order.
func parseOrderRows(records [][]string) ([]service.CreateOrderInput, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("orders file has no data rows")
	}

	var inputs []service.CreateOrderInput
	last := -1
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != 5 {
			return nil, fmt.Errorf("line %d: want 5 columns, got %d", line, len(rec))
		}
		itemID, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad item id %q", line, rec[3])
		}
		qty, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad quantity %q", line, rec[4])
		}

		if last < 0 || inputs[last].CustomerName != rec[0] || inputs[last].DeliveryDate != rec[2] {
			inputs = append(inputs, service.CreateOrderInput{
				CustomerName:    rec[0],
				CustomerContact: rec[1],
				DeliveryDate:    rec[2],
			})
			last = len(inputs) - 1
		}
		inputs[last].Items = append(inputs[last].Items, service.OrderItemInput{
			ItemID:   itemID,
			Quantity: qty,
		})
	}
	return inputs, nil
}

func runHashPassword(c *cli.Context) error {
	fmt.Println(auth.HashPassword(c.String("password"), "", 0))
	return nil
}
