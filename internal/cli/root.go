// Package cli implements the study command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/ladderflash/internal/backend"
	"github.com/vytor/ladderflash/internal/config"
	"github.com/vytor/ladderflash/internal/credentials"
	"github.com/vytor/ladderflash/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "study",
	Short:         "Study leveled flashcards",
	Long:          "study drives a LadderFlash server: manage decks and cards, edit level ladders and run review sessions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "Server base URL (overrides LADDERFLASH_API_URL)")
	rootCmd.PersistentFlags().String("token-file", "", "Where the access token is kept (overrides LADDERFLASH_TOKEN_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "DEBUG, INFO, WARN or ERROR (overrides LOG_LEVEL)")

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(decksCmd, deckCmd, newDeckCmd, newCardCmd)
	rootCmd.AddCommand(sessionCmd, editLevelsCmd, statsCmd)
}

// env bundles what every command needs.
type env struct {
	cfg    config.ClientConfig
	log    *logger.Logger
	creds  *credentials.File
	client *backend.Client
	out    io.Writer
}

// newEnv resolves configuration with flags taking precedence over the
// environment, then builds the logger and remote client.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg := config.LoadClient()
	if v, _ := cmd.Flags().GetString("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v, _ := cmd.Flags().GetString("token-file"); v != "" {
		cfg.TokenFile = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithCaller(false),
	)
	logger.SetDefault(log)
	log.Debug("api_url=%s token_file=%s", cfg.APIURL, cfg.TokenFile)

	creds := credentials.NewFile(cfg.TokenFile)
	return &env{
		cfg:    cfg,
		log:    log,
		creds:  creds,
		client: backend.New(cfg.APIURL, creds, backend.WithTimeout(cfg.RequestTimeout)),
		out:    cmd.OutOrStdout(),
	}, nil
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}
