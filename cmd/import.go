package cmd

import (
	"context"
	"fmt"

	"github.com/harked/alfresco-bulk-import/core/config"
	"github.com/harked/alfresco-bulk-import/core/database"
	"github.com/harked/alfresco-bulk-import/core/logger"
	"github.com/harked/alfresco-bulk-import/core/repo"
	"github.com/harked/alfresco-bulk-import/core/storage"
	"github.com/harked/alfresco-bulk-import/feature/bulkimport"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the import command
	importSource string
	importRoot   string
)

// importCmd runs one bulk import synchronously and exits.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Run a bulk import once and exit",
	Long: `Run one bulk import over the source directory without starting the server.

Examples:
  # Import the configured source directory
  import

  # Import a specific directory under a specific root folder
  import --source /data/drop --root migrated`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", "", "Source directory (overrides configuration)")
	importCmd.Flags().StringVar(&importRoot, "root", "", "Import root folder name (overrides configuration)")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if importSource != "" {
		cfg.Source.Dir = importSource
	}
	if importRoot != "" {
		cfg.Repo.RootFolder = importRoot
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// Connect to the node index database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repository := repo.NewRepository(db)
	if err := repository.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate node index schema: %w", err)
	}

	// Connect to storage
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	if err := ensureBucket(ctx, client, cfg.Storage); err != nil {
		return fmt.Errorf("failed to ensure content bucket: %w", err)
	}

	svc := bulkimport.NewService(repository, client, cfg.Storage.Bucket, cfg.Repo, cfg.Source.Dir, l)

	result, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	l.Info("Import complete",
		zap.Int("items", result.Items),
		zap.Int("folders", result.Folders),
		zap.Int("versions", result.Versions),
		zap.Int("properties", result.Properties),
		zap.Int64("bytes_written", result.BytesWritten),
	)
	return nil
}
