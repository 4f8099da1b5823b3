package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/procat-batchedit/internal/models/m_outbox"
)

// Config holds the outbox cleanup settings.
type Config struct {
	SpannerDB     string
	RetentionDays int
	DryRun        bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.RetentionDays, "retention", 30, "Keep events written in the last N days")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	if config.SpannerDB == "" {
		log.Fatal("Error: -database flag is required")
	}
	if config.RetentionDays < 1 {
		log.Fatal("Error: -retention must be at least 1 day")
	}

	ctx := context.Background()

	if err := cleanupOutbox(ctx, config); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Println("Cleanup completed successfully")
}

func cleanupOutbox(ctx context.Context, config Config) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -config.RetentionDays)

	log.Printf("Starting outbox cleanup...")
	log.Printf("  Cutoff: %s (retention: %d days)", cutoff.Format(time.RFC3339), config.RetentionDays)
	log.Printf("  Dry run: %v", config.DryRun)

	if config.DryRun {
		return dryRunCleanup(ctx, client, cutoff)
	}

	return performCleanup(ctx, client, cutoff)
}

// expiredFilter selects events older than @cutoff.
func expiredFilter(cutoff time.Time) (string, map[string]interface{}) {
	return fmt.Sprintf("%s < @cutoff", m_outbox.CreatedAt), map[string]interface{}{"cutoff": cutoff}
}

func dryRunCleanup(ctx context.Context, client *spanner.Client, cutoff time.Time) error {
	where, params := expiredFilter(cutoff)
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT %s, COUNT(*) FROM %s WHERE %s GROUP BY %s",
			m_outbox.EventType, m_outbox.TableName, where, m_outbox.EventType),
		Params: params,
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	total := int64(0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}

		var eventType string
		var count int64
		if err := row.Columns(&eventType, &count); err != nil {
			return fmt.Errorf("failed to parse row: %w", err)
		}

		log.Printf("  Would delete %d %s events", count, eventType)
		total += count
	}

	log.Printf("DRY RUN: Would delete %d total events", total)
	log.Println("Run without -dry-run to actually delete events")

	return nil
}

func performCleanup(ctx context.Context, client *spanner.Client, cutoff time.Time) error {
	where, params := expiredFilter(cutoff)

	// Partitioned DML, the outbox may be far larger than one transaction allows
	rowCount, err := client.PartitionedUpdate(ctx, spanner.Statement{
		SQL:    fmt.Sprintf("DELETE FROM %s WHERE %s", m_outbox.TableName, where),
		Params: params,
	})
	if err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	log.Printf("Deleted %d events", rowCount)
	return nil
}
