package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chatmd/chatmd/internal"
	"github.com/chatmd/chatmd/internal/config"
	"github.com/chatmd/chatmd/internal/web"
)

var (
	serveHost string
	servePort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the web UI for browser-based conversion",
	Long: `Start a local web server for browser-based conversion: upload an
export ZIP, preview conversations, and download the converted Markdown
bundle. Uploads are kept in memory only and expire after one hour.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("host") {
			serveHost = cfg.ServeHost
		}
		if !cmd.Flags().Changed("port") {
			servePort = cfg.ServePort
		}

		server := web.NewServer(web.Config{Host: serveHost, Port: servePort})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		fmt.Printf("chatmd web UI listening on http://%s:%d (Ctrl+C to stop)\n", serveHost, servePort)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				internal.LogWarn("shutdown: %v", err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 5000, "Port for the web UI")
}
