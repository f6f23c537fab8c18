/*
 * file: config.go
 * package: config
 * description:
 *     Command-line and environment configuration for the match server,
 *     following the same cobra+pflag+viper wiring pattern used across the
 *     example corpus: flags are the source of truth, viper mirrors them
 *     from environment variables under a fixed prefix when the flag
 *     itself was not set explicitly.
 */

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable the server reads at boot.
type Config struct {
	Bind string
	Port int

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// MaxActiveGames is the per-player concurrent-game cap the round-robin
	// tournament engine enforces when deciding which games to start.
	MaxActiveGames int

	Verbose bool
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.MaxActiveGames < 1 {
		return fmt.Errorf("max-active-games must be at least 1, got %d", c.MaxActiveGames)
	}
	return nil
}

// DSN renders the postgres connection string gorm's driver expects.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// NewCommand builds the server's root cobra command. run is invoked with
// the fully populated, validated Config once flags/env have been parsed.
func NewCommand(run func(cfg *Config) error) *cobra.Command {
	cfg := &Config{}

	v := viper.New()
	v.SetEnvPrefix("MATCHKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "matchkeep",
		Short:         "Multi-tenant turn-based match and tournament server.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", "0.0.0.0", "address to bind to (env: MATCHKEEP_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", 8080, "port to listen on (env: MATCHKEEP_PORT)")
	fs.StringVar(&cfg.DBHost, "db-host", "localhost", "postgres host (env: MATCHKEEP_DB_HOST)")
	fs.IntVar(&cfg.DBPort, "db-port", 5432, "postgres port (env: MATCHKEEP_DB_PORT)")
	fs.StringVar(&cfg.DBUser, "db-user", "matchkeep", "postgres user (env: MATCHKEEP_DB_USER)")
	fs.StringVar(&cfg.DBPassword, "db-password", "", "postgres password (env: MATCHKEEP_DB_PASSWORD)")
	fs.StringVar(&cfg.DBName, "db-name", "matchkeep", "postgres database name (env: MATCHKEEP_DB_NAME)")
	fs.StringVar(&cfg.DBSSLMode, "db-sslmode", "disable", "postgres sslmode (env: MATCHKEEP_DB_SSLMODE)")
	fs.IntVar(&cfg.MaxActiveGames, "max-active-games", 1, "per-player cap on concurrently active tournament games (env: MATCHKEEP_MAX_ACTIVE_GAMES)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose GORM query logging (env: MATCHKEEP_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})

	return cmd
}
