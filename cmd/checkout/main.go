// Command checkout runs one full ordering flow against a backend:
// fetch a product and its options, apply the default selection, add the
// configured line to the cart and submit the order.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/orderfoodonline/checkout/internal/api"
	"github.com/orderfoodonline/checkout/internal/checkout"
	"github.com/orderfoodonline/checkout/internal/config"
	"github.com/orderfoodonline/checkout/internal/options"
	"github.com/orderfoodonline/checkout/internal/session"
	"github.com/orderfoodonline/checkout/pkg/logger"
)

func main() {
	productID := flag.Int64("product", 1, "product id to order")
	quantity := flag.Int("quantity", 1, "line quantity")
	addressID := flag.Int64("address", 1, "delivery address id")
	payment := flag.String("payment", "cash", "payment type label")
	note := flag.String("note", "", "free-text order note")
	token := flag.String("token", "", "bearer token to log in with (kept for later runs)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	sessions, err := session.Open(cfg.Session.Dir)
	if err != nil {
		log.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	if *token != "" {
		if err := sessions.Login(session.Snapshot{Token: *token}); err != nil {
			log.Error("failed to store session", "error", err)
			os.Exit(1)
		}
	}
	if !sessions.Snapshot().LoggedIn {
		log.Error("no session token; pass -token or log in first")
		os.Exit(1)
	}

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, sessions, log)

	ctx := context.Background()

	product, err := client.Product(ctx, *productID)
	if err != nil {
		log.Error("failed to fetch product", "product_id", *productID, "error", err)
		os.Exit(1)
	}

	groups, err := client.ProductOptions(ctx, *productID)
	if err != nil {
		log.Error("failed to fetch product options", "product_id", *productID, "error", err)
		os.Exit(1)
	}

	sel := options.DefaultSelection(groups)
	submission, err := options.BuildSubmission(*product, groups, sel, *quantity, *note)
	if err != nil {
		log.Error("selection invalid", "error", err)
		os.Exit(1)
	}

	log.Info("adding to cart",
		"product", product.Name,
		"quantity", submission.CartPayload.Quantity,
		"line_total", submission.LineTotal.StringFixed(2),
	)
	if err := client.AddCartLine(ctx, submission.CartPayload); err != nil {
		log.Error("failed to add cart line", "error", err)
		os.Exit(1)
	}

	cart := checkout.NewLocalCart()
	if lines, err := client.Cart(ctx); err == nil {
		cart.Replace(lines)
	}

	submitter := checkout.NewSubmitter(client, sessions, cart, log)
	result := submitter.Submit(ctx, checkout.SubmitRequest{
		AddressID:   *addressID,
		PaymentType: *payment,
		UserNote:    *note,
	})

	if result.State != checkout.StateSuccess {
		log.Error("order failed", "reason", string(result.Reason), "message", result.Reason.Message())
		os.Exit(1)
	}

	fmt.Printf("order %s placed, total %s\n", result.OrderID, result.TotalAmount.StringFixed(2))
}
