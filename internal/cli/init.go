package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize pantry storage",
		Long:  "Create configuration and data directories, then initialize the storage backend.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("resolve config directory: %s", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Sprintf("create config directory: %s", err))
	}

	cfg, err := loadConfig()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("load configuration: %s", err))
	}

	configPath := filepath.Join(configDir, configFileName)
	if err := writeConfigIfMissing(configPath, configFile{
		Backend: cfg.Backend,
		DataDir: cfg.DataDir,
		Locale:  cfg.Locale,
	}); err != nil {
		return exitError(exitSysError, fmt.Sprintf("write config: %s", err))
	}

	// Initialize the data directory via Attach then Detach.
	b := sqlite.NewBackend().WithLogger(newLogger())
	if err := b.Attach(cfg); err != nil {
		return exitError(exitSysError, fmt.Sprintf("initialize storage: %s", err))
	}
	if err := b.Detach(); err != nil {
		return exitError(exitSysError, fmt.Sprintf("finalize storage: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Pantry initialized successfully")
	return nil
}
