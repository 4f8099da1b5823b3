package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/procat-batchedit/internal/app/product/repo"
	"github.com/light-bringer/procat-batchedit/internal/pkg/committer"
)

const migrationsTable = "schema_migrations"

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "product-grid-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	seedDemo   = flag.Bool("seed", getEnvOrDefault("SEED_DEMO_DATA", "") == "true", "Insert the demo products when the products table is empty")
)

func databasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID)
}

func main() {
	flag.Parse()

	ctx := context.Background()

	// Check if using emulator
	emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST")
	if emulatorHost != "" {
		log.Printf("Using Spanner emulator at %s", emulatorHost)
	}

	if err := run(ctx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

func run(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	databaseAdmin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer databaseAdmin.Close()

	if err := ensureInstance(ctx, instanceAdmin); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx, databaseAdmin); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := applyMigrations(ctx, databaseAdmin); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if *seedDemo {
		if err := seedProducts(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return nil
}

func ensureInstance(ctx context.Context, instanceAdmin *instance.InstanceAdminClient) error {
	log.Printf("Ensuring instance %s exists...", *instanceID)

	instanceName := fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)

	_, err := instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: instanceName,
	})

	if err == nil {
		log.Println("Instance already exists")
		return nil
	}

	// Create instance if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Println("Creating instance...")
		op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
			Parent:     fmt.Sprintf("projects/%s", *projectID),
			InstanceId: *instanceID,
			Instance: &instancepb.Instance{
				Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
				DisplayName: "Product Grid (dev)",
				NodeCount:   1,
			},
		})
		if err != nil {
			// Ignore if already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create instance: %w", err)
			}
			log.Println("Instance already exists")
			return nil
		}

		// Don't wait too long on emulator
		if _, err := op.Wait(ctx); err != nil {
			// Emulator might complete immediately, ignore certain errors
			if status.Code(err) != codes.AlreadyExists {
				log.Printf("Warning during instance creation: %v", err)
			}
		}

		log.Println("Instance created successfully")
		return nil
	}

	log.Printf("Warning: unexpected error checking instance: %v", err)
	return nil
}

func ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	log.Printf("Ensuring database %s exists...", *databaseID)

	dbPath := databasePath()

	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{
		Name: dbPath,
	})

	if err == nil {
		log.Println("Database already exists")
		return nil
	}

	// Create database if it doesn't exist
	if status.Code(err) == codes.NotFound {
		log.Println("Creating database...")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
		})
		if err != nil {
			// Ignore if database already exists
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			log.Println("Database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		log.Println("Database created successfully")
		return nil
	}

	// For other errors on emulator, just proceed - the DB might exist
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		log.Printf("Proceeding with database (emulator mode): %v", err)
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	log.Printf("Applying migrations from %s...", *migrateDir)

	dbPath := databasePath()

	// Make sure the bookkeeping table exists before reading it
	if err := updateDDL(ctx, adminClient, dbPath, []string{
		"CREATE TABLE IF NOT EXISTS " + migrationsTable + " (\n" +
			"  name STRING(255) NOT NULL,\n" +
			"  applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true),\n" +
			") PRIMARY KEY (name)",
	}); err != nil {
		return fmt.Errorf("failed to create %s: %w", migrationsTable, err)
	}

	// Get list of migration files
	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		log.Println("No migration files found")
		return nil
	}

	client, err := spanner.NewClient(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	applied, err := appliedMigrations(ctx, client)
	if err != nil {
		return err
	}

	for _, file := range files {
		migrationName := filepath.Base(file)
		if applied[migrationName] {
			log.Printf("Skipping %s, already applied", migrationName)
			continue
		}
		log.Printf("Applying %s...", migrationName)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		// Split into individual DDL statements
		statements := splitDDLStatements(string(content))

		if err := updateDDL(ctx, adminClient, dbPath, statements); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", migrationName, err)
		}

		_, err = client.Apply(ctx, []*spanner.Mutation{
			spanner.Insert(migrationsTable, []string{"name", "applied_at"}, []interface{}{migrationName, spanner.CommitTimestamp}),
		})
		if err != nil {
			return fmt.Errorf("failed to record %s: %w", migrationName, err)
		}

		log.Printf("Successfully applied %s", migrationName)
	}

	return nil
}

func updateDDL(ctx context.Context, adminClient *database.DatabaseAdminClient, dbPath string, statements []string) error {
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   dbPath,
		Statements: statements,
	})
	if err != nil {
		return fmt.Errorf("failed to start DDL update: %w", err)
	}
	return op.Wait(ctx)
}

func appliedMigrations(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	applied := make(map[string]bool)

	iter := client.Single().Read(ctx, migrationsTable, spanner.AllKeys(), []string{"name"})
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", migrationsTable, err)
		}

		var name string
		if err := row.Columns(&name); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", migrationsTable, err)
		}
		applied[name] = true
	}

	return applied, nil
}

// seedProducts inserts the demo catalogue into an empty products table.
func seedProducts(ctx context.Context) error {
	client, err := spanner.NewClient(ctx, databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	productRepo := repo.NewProductRepo(client)

	existing, err := productRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Products table holds %d rows, skipping seed", len(existing))
		return nil
	}

	plan := committer.NewPlan()
	for _, p := range repo.DemoProducts() {
		mut, err := productRepo.InsertMut(p)
		if err != nil {
			return err
		}
		plan.Add(mut)
	}

	if err := committer.NewCommitter(client).Apply(ctx, plan); err != nil {
		return err
	}

	log.Printf("Seeded %d demo products", plan.Count())
	return nil
}

func splitDDLStatements(content string) []string {
	// Remove comments and empty lines
	lines := strings.Split(content, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content = strings.Join(cleaned, "\n")

	// Split by semicolon
	statements := strings.Split(content, ";")
	var result []string
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			result = append(result, stmt)
		}
	}

	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
