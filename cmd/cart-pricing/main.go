package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/nikolayk812/shop-pricing/internal/config"
	"github.com/nikolayk812/shop-pricing/internal/dispatch"
	"github.com/nikolayk812/shop-pricing/internal/domain"
	"github.com/nikolayk812/shop-pricing/internal/eventlog"
	"github.com/nikolayk812/shop-pricing/internal/logger"
	"github.com/nikolayk812/shop-pricing/internal/messaging/kafka"
	"github.com/nikolayk812/shop-pricing/internal/migrations"
	"github.com/nikolayk812/shop-pricing/internal/port"
	"github.com/nikolayk812/shop-pricing/internal/repository"
	"github.com/nikolayk812/shop-pricing/internal/storage/memory"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
)

type options struct {
	customerType string
	customerID   string
	firstName    string
	lastName     string
	company      string
	registration string
	turnover     string
	vatNumber    string
	items        string
	persist      bool
	migrate      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config.FromEnv: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer func() { _ = log.Sync() }()

	customer, err := opts.customer()
	if err != nil {
		return err
	}

	cart, err := domain.NewCart(customer)
	if err != nil {
		return fmt.Errorf("domain.NewCart: %w", err)
	}

	lines, err := parseItems(opts.items)
	if err != nil {
		return err
	}

	for _, l := range lines {
		if err := cart.AddProduct(l.product, l.quantity); err != nil {
			return fmt.Errorf("cart.AddProduct: %w", err)
		}
	}

	total, err := cart.CalculateTotal()
	if err != nil {
		return fmt.Errorf("cart.CalculateTotal: %w", err)
	}

	if err := printCart(stdout, cart, total); err != nil {
		return err
	}

	delivered := memory.NewEventBuffer()
	sinks := []port.EventSink{eventlog.New(log), delivered}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			return fmt.Errorf("kafka.NewProducer: %w", err)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("failed to close kafka producer", zap.Error(err))
			}
		}()
		sinks = append(sinks, producer)
	}

	if opts.persist {
		if err := persist(ctx, cfg.Postgres, opts.migrate, cart, log); err != nil {
			return err
		}
	}

	// stored events are drained only after the commit
	events, err := dispatch.New(log, sinks...).Dispatch(ctx, cart)
	if err != nil {
		// the CLI does not retry, the caller reruns the command
		log.Error("events were not delivered to every sink",
			zap.Int("events", len(events)),
			zap.Error(err))
		return fmt.Errorf("dispatcher.Dispatch: %w", err)
	}

	_, err = fmt.Fprintf(stdout, "events %d\n", len(delivered.ByAggregate(cart.ID().String())))
	return err
}

func persist(ctx context.Context, cfg config.Postgres, migrate bool, cart *domain.Cart, log *zap.Logger) error {
	pool, err := repository.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("repository.Connect: %w", err)
	}
	defer pool.Close()

	if migrate {
		applied, err := migrations.Up(ctx, pool)
		if err != nil {
			return fmt.Errorf("migrations.Up: %w", err)
		}
		log.Info("migrations applied", zap.Int("count", applied))
	}

	events := cart.DomainEvents()

	err = repository.InTx(ctx, pool, func(carts port.CartRepository, store port.EventStore) error {
		if err := carts.SaveItems(ctx, cart); err != nil {
			return fmt.Errorf("carts.SaveItems: %w", err)
		}
		return store.Publish(ctx, events)
	})
	if err != nil {
		return fmt.Errorf("repository.InTx: %w", err)
	}

	return nil
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("cart-pricing", flag.ContinueOnError)
	fs.StringVar(&opts.customerType, "customer", "individual", "customer type: individual|business")
	fs.StringVar(&opts.customerID, "id", "", "customer id")
	fs.StringVar(&opts.firstName, "first-name", "", "individual first name")
	fs.StringVar(&opts.lastName, "last-name", "", "individual last name")
	fs.StringVar(&opts.company, "company", "", "business company name")
	fs.StringVar(&opts.registration, "registration", "", "business registration number")
	fs.StringVar(&opts.turnover, "turnover", "0", "business annual turnover in EUR")
	fs.StringVar(&opts.vatNumber, "vat", "", "business VAT number (optional)")
	fs.StringVar(&opts.items, "items", "", "comma separated product=quantity pairs, e.g. laptop=2,high_end_phone=1")
	fs.BoolVar(&opts.persist, "persist", false, "store cart items and events in postgres (CART_DATABASE_URL)")
	fs.BoolVar(&opts.migrate, "migrate", false, "apply pending schema migrations before -persist")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	return opts, nil
}

func (o options) customer() (domain.Customer, error) {
	switch strings.ToLower(strings.TrimSpace(o.customerType)) {
	case "individual":
		c, err := domain.NewIndividualCustomer(o.customerID, o.firstName, o.lastName)
		if err != nil {
			return nil, fmt.Errorf("domain.NewIndividualCustomer: %w", err)
		}
		return c, nil
	case "business":
		turnover, err := decimal.NewFromString(o.turnover)
		if err != nil {
			return nil, fmt.Errorf("turnover[%s] is not valid: %w", o.turnover, err)
		}

		var opts []domain.BusinessCustomerOption
		if o.vatNumber != "" {
			opts = append(opts, domain.WithVATNumber(o.vatNumber))
		}

		c, err := domain.NewBusinessCustomer(o.customerID, o.company, o.registration, turnover, opts...)
		if err != nil {
			return nil, fmt.Errorf("domain.NewBusinessCustomer: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCustomerType, o.customerType)
	}
}

type line struct {
	product  domain.ProductType
	quantity int
}

func parseItems(s string) ([]line, error) {
	var lines []line

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name, qty, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("item[%s] is not product=quantity", pair)
		}

		product, err := domain.ParseProductType(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("domain.ParseProductType: %w", err)
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return nil, fmt.Errorf("quantity[%s] is not valid: %w", qty, err)
		}

		lines = append(lines, line{product: product, quantity: quantity})
	}

	return lines, nil
}

func printCart(w io.Writer, cart *domain.Cart, total domain.Money) error {
	items := cart.Items()

	products := make([]domain.ProductType, 0, len(items))
	for p := range items {
		products = append(products, p)
	}
	slices.Sort(products)

	if _, err := fmt.Fprintf(w, "cart %s\n", cart.ID()); err != nil {
		return err
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, "  %-16s x%d\n", p, items[p]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total %s\n", total)
	return err
}
