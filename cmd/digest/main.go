package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"sellerdesk/internal/api"
	"sellerdesk/internal/config"
	"sellerdesk/internal/models"
	"sellerdesk/internal/notify"
	"sellerdesk/internal/realtime"
	"sellerdesk/internal/store"
)

// The digest tool sends the seller a daily WhatsApp summary of orders,
// revenue and outstanding payments. Run it from cron once a day; the ledger
// in the cache database keeps a rerun from sending the same digest twice.
func main() {
	sendCmd := flag.NewFlagSet("send", flag.ExitOnError)
	session := sendCmd.String("session", "", "Remote session cookie value")
	to := sendCmd.String("to", "", "Phone number to send the digest to")
	date := sendCmd.String("date", "", "Digest date, YYYY-MM-DD (default today)")
	force := sendCmd.Bool("force", false, "Send even if already recorded for this date")
	dryRun := sendCmd.Bool("dry-run", false, "Print the digest instead of sending it")

	if len(os.Args) < 2 {
		fmt.Println("expected 'send' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "send":
		sendCmd.Parse(os.Args[2:])
		if *session == "" || *to == "" {
			fmt.Println("session and to are required")
			sendCmd.PrintDefaults()
			os.Exit(1)
		}
		sendDigest(*session, *to, *date, *force, *dryRun)
	default:
		fmt.Println("expected 'send' subcommand")
		os.Exit(1)
	}
}

func sendDigest(session, to, date string, force, dryRun bool) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		log.Fatalf("Invalid date %q: %v", date, err)
	}

	db, err := store.NewStore(cfg.CachePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	// Ensure tables exist if running before the server ever did
	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	sellerKey := realtime.SafeKey(cfg.SellerID)
	if !force && !dryRun {
		sent, err := db.DigestSent(sellerKey, date)
		if err != nil {
			log.Fatalf("Failed to check digest ledger: %v", err)
		}
		if sent {
			fmt.Printf("Digest for %s already sent, use -force to resend.\n", date)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := api.NewClient(cfg.APIBaseURL).WithSession(session)

	orders, err := client.ListOrders(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch orders: %v", err)
	}
	cancellations, err := client.ListCancellations(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch cancellations: %v", err)
	}

	info, err := client.SellerInfo(ctx)
	if err != nil {
		log.Printf("Could not load seller info: %v", err)
	}

	stats := computeStats(orders, cancellations, date)
	message := notify.DigestMessage(info.Name, date, stats)

	if dryRun {
		fmt.Println(message)
		return
	}

	if err := client.SendMessage(ctx, to, message); err != nil {
		log.Fatalf("Failed to send digest: %v", err)
	}
	if err := db.RecordDigest(sellerKey, date); err != nil {
		log.Fatalf("Digest sent but not recorded: %v", err)
	}
	fmt.Printf("Digest for %s sent to %s.\n", date, to)
}

// computeStats buckets orders placed on the digest date and the payments
// still open across all dates.
func computeStats(orders []models.Order, cancellations []models.CancellationRequest, date string) notify.DigestStats {
	var stats notify.DigestStats
	for _, o := range orders {
		if strings.HasPrefix(o.CreatedAt, date) {
			stats.Orders++
			if o.OrderStatus != models.OrderCancelled {
				stats.Revenue += o.Total()
			}
		}
		switch o.PaymentStatus {
		case models.PaymentPending, models.PaymentRequested, models.PaymentVerified:
			stats.PendingPayments++
			stats.PendingAmount += o.Total()
		}
	}
	for _, c := range cancellations {
		if c.Status == "pending" {
			stats.Cancellations++
		}
	}
	return stats
}
