// Package cli implements the chat-memory CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/chat-memory/internal/config"
	"github.com/rcliao/chat-memory/internal/learner"
	"github.com/rcliao/chat-memory/internal/logging"
	"github.com/rcliao/chat-memory/internal/store"
)

var (
	dbPath     string
	configPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "chat-memory",
	Short: "Persistent chat memory with pattern learning",
	Long: "Logs chat prompt/response turns, mines recurring prompt patterns from them,\n" +
		"and answers near-identical prompts from learned response templates.\n" +
		"SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CHAT_MEMORY_DB_PATH or ~/.chat-memory/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ~/.chat-memory/config.yaml)")
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, ".chat-memory", "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

func openStore() (*store.SQLiteStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// cliLogger builds a console logger for learner warnings. Mining and
// matching degrade silently, so stderr warnings are all the CLI needs.
func cliLogger() *zap.Logger {
	logger, err := logging.New("warn", "console")
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newLearner(s *store.SQLiteStore, cfg *config.Config) *learner.Learner {
	return learner.New(s, cliLogger(), cfg.Learner)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
