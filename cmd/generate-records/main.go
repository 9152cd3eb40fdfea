package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ncruces/go-strftime"

	"github.com/pstuifzand/microqrart/internal/model"
	"github.com/pstuifzand/microqrart/internal/storage"
)

func main() {
	count := flag.Int("count", 1000, "Number of records to generate")
	output := flag.String("output", "records.json", "Output file path")
	dateFormat := flag.String("date-format", "%Y/%m/%d", "strftime pattern for the date column")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	if *count < 1 {
		fmt.Fprintf(os.Stderr, "count must be at least 1\n")
		os.Exit(1)
	}

	records := generateRecords(rand.New(rand.NewSource(*seed)), *count, *dateFormat, time.Now())

	store := storage.NewJSONStore(*output)
	if err := store.Save(records); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %d records\n", len(records))
	fmt.Printf("Saved to: %s\n", *output)
	if info, err := os.Stat(*output); err == nil {
		fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
	}
}

var (
	categories = []string{
		"Wi-Fi", "Business card", "Event entry", "Menu", "Coupon",
		"Ticket", "Payment", "Location", "Contact", "Website",
	}
	places = []string{
		"Home", "Office", "Cafe", "Station", "Library",
		"Gym", "Studio", "Warehouse", "Clinic", "Shop",
	}
	hosts = []string{"wifi", "meishi", "event", "menu", "pay", "maps"}
)

// generateRecords returns count records dated one day apart, newest first
func generateRecords(r *rand.Rand, count int, dateFormat string, now time.Time) model.List {
	records := make(model.List, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewString()
		host := hosts[r.Intn(len(hosts))]
		records = append(records, model.Record{
			ID:     id,
			Title:  fmt.Sprintf("%s %s %d", places[r.Intn(len(places))], categories[r.Intn(len(categories))], i+1),
			Source: fmt.Sprintf("https://%s.example.com/qr/%s", host, id[:8]),
			Image:  fmt.Sprintf("https://%s.example.com/img/%s.png", host, id[:8]),
			Date:   strftime.Format(dateFormat, now.AddDate(0, 0, -i)),
		})
	}
	return records
}
