package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/taskmill/internal/config"
	"github.com/Iron-Ham/taskmill/internal/engine"
	"github.com/Iron-Ham/taskmill/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "taskmill",
	Short: "Task dependency graph and workflow manager",
	Long: `Taskmill tracks a project's tasks as a dependency graph: each task
carries a status, a priority, and edges to the tasks it depends on.
It selects the next actionable task, audits the graph for cycles and
dangling references, and scores task complexity to suggest breakdowns.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/taskmill/config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "task snapshot file (overrides store.path)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("file"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/taskmill")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TASKMILL")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TASKMILL_STORE_PATH for store.path
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// openEngine loads the snapshot named by the active configuration.
func openEngine() (*engine.Engine, *config.Config, error) {
	cfg := config.Get()

	log, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log = logging.NopLogger()
	}

	path := cfg.ResolveStorePath()
	eng, err := engine.Open(path,
		engine.WithLogger(log.WithStore(path)),
		engine.WithLockTimeout(cfg.Store.LockTimeout))
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}
