// Command admin manages portfolio messages and projects from the terminal
// through the HTTP API.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard"
	"github.com/portfolio-hub/portfolio-backend/internal/dashboard/client"
)

var (
	version = "dev"
	apiURL  string
	token   string
	timeout time.Duration
	api     *client.Client
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "admin",
		Short:   "Manage portfolio messages and projects",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			api = client.New(apiURL,
				client.WithToken(token),
				client.WithHTTPClient(&http.Client{Timeout: timeout}),
			)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&apiURL, "api", envOr("PORTFOLIO_API_URL", "http://localhost:8080"), "portfolio API base URL")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("PORTFOLIO_TOKEN"), "admin session token")
	root.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(
		newLoginCmd(),
		newHashPasswordCmd(),
		newStatsCmd(),
		newMessagesCmd(),
		newProjectsCmd(),
	)
	return root
}

// notifier prints dashboard notifications to the command's stderr.
func notifier(cmd *cobra.Command) dashboard.Notifier {
	return dashboard.NotifierFunc(func(n dashboard.Notification) {
		fmt.Fprintln(cmd.ErrOrStderr(), renderNotification(n))
	})
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
