package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio-assistant/internal/chatclient"
	"portfolio-assistant/internal/session"
	"portfolio-assistant/internal/surface"
)

var (
	endpoint string
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Terminal chat with the portfolio assistant",
	Long: `Opens the inline chat panel against a running portfolio API.
Press ctrl+o to open the chat as a modal overlay and esc to close it.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "base URL of the portfolio API")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write debug logs to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client := chatclient.New(endpoint, nil, logger)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	subject := ""
	if doc, err := client.Portfolio(ctx); err != nil {
		logger.Warn("portfolio fetch failed", zap.Error(err))
	} else {
		subject = doc.Subject()
	}
	cancel()

	app := surface.NewApp(func() *session.Session {
		return session.New(client, logger)
	}, subject)
	defer app.Close()

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

// newLogger solo escribe a archivo: la terminal es de la TUI.
func newLogger(path string) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
