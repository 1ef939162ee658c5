package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reelworks/reel-api/api"
	"github.com/reelworks/reel-api/api/types"
	"github.com/reelworks/reel-api/internal/database"
	"github.com/reelworks/reel-api/internal/services/jobs"
	"github.com/reelworks/reel-api/internal/services/reels"
	"github.com/reelworks/reel-api/internal/services/transcripts"
	"github.com/reelworks/reel-api/internal/services/workers"
	"github.com/reelworks/reel-api/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Reel Revision API server with the configured settings.

The server handles metadata commits, rollbacks, transcript replacement,
and background reprocess jobs.

Example:
  reel-api serve
  reel-api serve --port 9090
  reel-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Database
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Services
	reelService := reels.NewService(reels.NewRepository(db.DB))
	transcriptService := transcripts.NewService(transcripts.NewRepository(db.DB))
	jobService := jobs.NewService(jobs.NewRepository(db.DB))

	// Background reprocess workers
	reprocessor := workers.NewPipelineReprocessor(reelService, &workers.StaticProbe{}, cfg.Jobs.StepDelay)
	pool := workers.NewWorkerPool(jobService, reprocessor, cfg.Jobs.Workers, cfg.Jobs.PollInterval)

	deps := &types.Dependencies{
		DB:                db,
		ReelService:       reelService,
		TranscriptService: transcriptService,
		JobService:        jobService,
		WorkerPool:        pool,
	}

	srv := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	srv.SetDependencies(deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	if err := pool.Start(workerCtx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	fmt.Printf("Starting Reel Revision API server on %s:%d\n", serverHost, serverPort)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s:%d\n", serverHost, serverPort)

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}
