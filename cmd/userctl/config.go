package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hairizuan-noorazman/user-admin/apiclient"
	"github.com/hairizuan-noorazman/user-admin/storage"
	"github.com/hairizuan-noorazman/user-admin/userstate"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileName = ".userctl"

var cfg *viper.Viper

func initConfig() error {
	if flagEnvFile != "" {
		if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", flagEnvFile, err)
		}
	}

	cfg = viper.New()
	cfg.SetConfigName(configFileName)
	cfg.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		cfg.AddConfigPath(home)
	}

	cfg.SetDefault("url", "http://localhost:3000")
	cfg.SetDefault("limit", userstate.DefaultLimit)
	cfg.SetDefault("timeout", apiclient.DefaultTimeout)
	cfg.SetDefault("log_level", "warn")
	cfg.SetDefault("log_format", "text")

	cfg.SetDefault("storage.type", storage.TypeLocal)
	cfg.SetDefault("storage.base_dir", "./photos")
	cfg.SetDefault("storage.public_base_url", "")
	cfg.SetDefault("storage.s3_bucket", "")
	cfg.SetDefault("storage.s3_region", "us-east-1")
	cfg.SetDefault("storage.s3_endpoint", "")
	cfg.SetDefault("storage.s3_path_style", false)
	cfg.SetDefault("storage.s3_access_key", "")
	cfg.SetDefault("storage.s3_secret_key", "")
	cfg.SetDefault("storage.s3_presign_expiry", "0s")

	cfg.SetEnvPrefix("USERCTL")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// CLI flags take highest priority
	if flagURL != "" {
		cfg.Set("url", flagURL)
	}
	if flagLimit > 0 {
		cfg.Set("limit", flagLimit)
	}
	if flagLogLevel != "" {
		cfg.Set("log_level", flagLogLevel)
	}
	if flagDebug {
		cfg.Set("log_level", "debug")
	}

	return nil
}

func getConfigURL() string {
	return strings.TrimRight(cfg.GetString("url"), "/")
}

func getConfigLimit() int {
	if l := cfg.GetInt("limit"); l > 0 {
		return l
	}
	return userstate.DefaultLimit
}

func getStorageConfig() storage.Config {
	return storage.Config{
		Type:          cfg.GetString("storage.type"),
		BaseDir:       cfg.GetString("storage.base_dir"),
		PublicBaseURL: cfg.GetString("storage.public_base_url"),
		Bucket:        cfg.GetString("storage.s3_bucket"),
		Region:        cfg.GetString("storage.s3_region"),
		Endpoint:      cfg.GetString("storage.s3_endpoint"),
		UsePathStyle:  cfg.GetBool("storage.s3_path_style"),
		AccessKeyID:   cfg.GetString("storage.s3_access_key"),
		SecretKey:     cfg.GetString("storage.s3_secret_key"),
		PresignExpiry: cfg.GetDuration("storage.s3_presign_expiry"),
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

const configTemplate = `# userctl configuration
url: http://localhost:3000
limit: 10
timeout: 30s
log_level: warn
log_format: text

storage:
  type: local
  base_dir: ./photos
  public_base_url: ""
  s3_bucket: ""
  s3_region: us-east-1
`

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file template at ~/.userctl.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			configPath := filepath.Join(home, configFileName+".yaml")

			if _, err := os.Stat(configPath); err == nil {
				printMessage(cmd.OutOrStdout(), "Config file already exists at "+configPath)
				return nil
			}

			if err := os.WriteFile(configPath, []byte(configTemplate), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			printMessage(cmd.OutOrStdout(), "Config file created at "+configPath)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			sc := getStorageConfig()

			if flagJSON {
				printJSON(w, map[string]interface{}{
					"url":       getConfigURL(),
					"limit":     getConfigLimit(),
					"timeout":   cfg.GetDuration("timeout").String(),
					"log_level": cfg.GetString("log_level"),
					"storage":   sc.Type,
					"config":    cfg.ConfigFileUsed(),
				})
				return nil
			}

			printMessage(w, fmt.Sprintf("URL:       %s", getConfigURL()))
			printMessage(w, fmt.Sprintf("Limit:     %d", getConfigLimit()))
			printMessage(w, fmt.Sprintf("Timeout:   %s", cfg.GetDuration("timeout")))
			printMessage(w, fmt.Sprintf("Log level: %s", cfg.GetString("log_level")))
			printMessage(w, fmt.Sprintf("Storage:   %s", sc.Type))

			if cfgFile := cfg.ConfigFileUsed(); cfgFile != "" {
				printMessage(w, fmt.Sprintf("Config file: %s", cfgFile))
			} else {
				printMessage(w, "Config file: (none)")
			}

			return nil
		},
	}
}
