package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "datra-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Sugar()
	defer func() { _ = log.Sync() }()

	if emulatorHost := os.Getenv("SPANNER_EMULATOR_HOST"); emulatorHost != "" {
		log.Infof("Using Spanner emulator at %s", emulatorHost)
	}

	if err := run(context.Background(), log); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Info("Migrations completed successfully")
}

func run(ctx context.Context, log *zap.SugaredLogger) error {
	if err := ensureInstance(ctx, log); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := ensureDatabase(ctx, log); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := applyMigrations(ctx, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func ensureInstance(ctx context.Context, log *zap.SugaredLogger) error {
	log.Infof("Ensuring instance %s exists...", *instanceID)

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
	})
	switch {
	case err == nil:
		log.Info("Instance already exists")
		return nil
	case status.Code(err) != codes.NotFound:
		log.Warnf("Unexpected error checking instance: %v", err)
		return nil
	}

	log.Info("Creating instance...")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", *projectID),
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
			DisplayName: "Datra Development Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		log.Info("Instance already exists")
		return nil
	}

	// The emulator may complete immediately
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		log.Warnf("Instance creation did not finish cleanly: %v", err)
	}

	log.Info("Instance created")
	return nil
}

func ensureDatabase(ctx context.Context, log *zap.SugaredLogger) error {
	log.Infof("Ensuring database %s exists...", *databaseID)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{
		Name: databasePath(),
	})
	if err == nil {
		log.Info("Database already exists")
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			log.Warnf("Proceeding with database (emulator mode): %v", err)
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	log.Info("Creating database...")
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create database: %w", err)
		}
		log.Info("Database already exists")
		return nil
	}

	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}

	log.Info("Database created")
	return nil
}

func applyMigrations(ctx context.Context, log *zap.SugaredLogger) error {
	log.Infof("Applying migrations from %s...", *migrateDir)

	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		log.Info("No migration files found")
		return nil
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	// Glob returns files in lexical order, so the numeric prefixes define the order.
	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := splitDDLStatements(string(content))
		if len(statements) == 0 {
			log.Infof("Skipping empty migration %s", name)
			continue
		}

		log.Infof("Applying %s (%d statements)...", name, len(statements))
		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}

		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}
	}

	return nil
}

func databasePath() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s", *projectID, *instanceID, *databaseID)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
