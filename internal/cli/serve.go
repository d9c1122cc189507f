package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/deepceutix/datagen/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API and run pages.

Examples:
  datagen serve              # listen on DATAGEN_ADDR (default :8080)
  datagen serve --port 3000  # listen on :3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides DATAGEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewAppContext(ctx)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	addr := app.Config.Server.Addr
	if servePort > 0 {
		addr = fmt.Sprintf(":%d", servePort)
	}
	srv := web.NewHTTPServer(addr, web.NewServer(app.Service, app.Artifacts, app.Metrics, app.Logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Logger.Info(fmt.Sprintf("listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
