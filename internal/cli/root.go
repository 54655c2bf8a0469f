// filepath: internal/cli/root.go
package cli

import (
	"blog/internal/config"
	"blog/internal/logging"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variables use this prefix, e.g. BLOG_PORT or BLOG_LOG_LEVEL.
const envPrefix = "BLOG"

const defaultConfigPath = "config.toml"

var (
	// Version info
	Version   = "1.0.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Resolved path of the config file, used to persist a generated session secret.
	cfgFile string
)

// NewRootCmd builds the command tree. Running the root command starts the HTTP server.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "blog",
		Short:         "Blog web application",
		Long:          `A small blogging site with posts, likes, comments, per-post analytics and an admin panel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// PersistentPreRunE loads the configuration before any command runs.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(initConfigPath(cmd))
		},
	}

	registerFlags(rootCmd)

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newHousekeepingCmd())
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	StartTime = time.Now()

	if err := NewRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("config_path", defaultConfigPath, "Path to the base configuration file. (Env: BLOG_CONFIG_PATH)")
	pf.String("log-level", "", "Logging level (debug, info, warn, error). (Env: BLOG_LOG_LEVEL)")
	pf.String("db-path", "", "Path to the SQLite database file. (Env: BLOG_DB_PATH)")
	pf.String("upload-dir", "", "Directory for uploaded images (local storage). (Env: BLOG_UPLOAD_DIR)")

	// Server-specific flags
	f := cmd.Flags()
	f.String("host", "", "Interface the HTTP server binds to. (Env: BLOG_HOST)")
	f.Int("port", 0, "Port for the HTTP server. (Env: BLOG_PORT)")
	f.String("password", "", "Password for the 'admin' user. (Env: BLOG_PASSWORD)")
	f.Bool("reset_pw", false, "If true, reset admin password on startup. (Env: BLOG_RESET_PW=true)")
	f.String("session-secret", "", "Secret key for signing session cookies. (Env: BLOG_SESSION_SECRET)")
	f.String("session-backend", "", "Session store: database, memory or redis. (Env: BLOG_SESSION_BACKEND)")
	f.String("max-upload-size", "", "Max size of a post submission (e.g. '8MB'). (Env: BLOG_MAX_UPLOAD_SIZE)")
	f.String("init_config", "", "Path to a TOML file for one-time creation of users. (Env: BLOG_INIT_CONFIG)")
	f.Bool("audit-enabled", false, "Enable audit logging. (Env: BLOG_AUDIT_ENABLED=true)")
}

// newViper binds the command's flags and the BLOG_ environment. Viper resolves
// a changed flag before an environment variable.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

// initializeConfig loads the config file and applies environment and flag overrides.
func initializeConfig(cmd *cobra.Command) error {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return err
	}

	cfgFile = v.GetString("config_path")
	if cfgFile == "" {
		cfgFile = defaultConfigPath
	}

	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	applyOverrides(cfg, v)
	applyDefaults(cfg)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

// applyOverrides copies every value set through the environment or a flag into c.
func applyOverrides(c *config.Config, v *viper.Viper) {
	if v.IsSet("host") {
		c.Server.Host = v.GetString("host")
	}
	if v.IsSet("port") {
		c.Server.Port = v.GetInt("port")
	}
	if v.IsSet("max-upload-size") {
		c.Server.MaxUploadSize = v.GetString("max-upload-size")
	}
	if v.IsSet("db-path") {
		c.Database.Path = v.GetString("db-path")
	}
	if v.IsSet("upload-dir") {
		c.Storage.UploadDir = v.GetString("upload-dir")
	}
	if v.IsSet("log-level") {
		c.Logging.Level = v.GetString("log-level")
	}
	if v.IsSet("audit-enabled") {
		c.Logging.AuditEnabled = v.GetBool("audit-enabled")
	}
	if v.IsSet("session-backend") {
		c.Session.Backend = v.GetString("session-backend")
	}
	if v.IsSet("session-secret") {
		c.SessionSecret = v.GetString("session-secret")
	}
	if v.IsSet("password") {
		c.AdminPassword = v.GetString("password")
	}
	if v.IsSet("reset_pw") {
		c.ResetAdminPassword = v.GetBool("reset_pw")
	}
}

func applyDefaults(c *config.Config) {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.Path == "" {
		c.Database.Path = "blog.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// initConfigPath returns the --init_config value, falling back to BLOG_INIT_CONFIG.
func initConfigPath(cmd *cobra.Command) string {
	if p, err := cmd.Flags().GetString("init_config"); err == nil && p != "" {
		return p
	}
	return os.Getenv(envPrefix + "_INIT_CONFIG")
}
