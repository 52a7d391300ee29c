package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hairizuan-noorazman/user-admin/database"
	"github.com/hairizuan-noorazman/user-admin/devserver"
	"github.com/spf13/viper"
)

// ServerConfig holds the configuration of the development API server.
type ServerConfig struct {
	Server   devserver.Config
	Database database.Config
	Log      LogConfig
	Photos   PhotosConfig
	Seed     bool
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// PhotosConfig controls serving locally stored photos under /photos/.
type PhotosConfig struct {
	Dir string
}

// LoadServerConfig loads configuration from file and environment variables.
func LoadServerConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("userserver")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")

	v.SetDefault("database.driver", database.DriverSQLite)
	v.SetDefault("database.path", "./users.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "users")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("photos.dir", "")
	v.SetDefault("seed", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config ServerConfig

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")

	config.Database.Driver = v.GetString("database.driver")
	config.Database.Path = v.GetString("database.path")
	config.Database.Host = v.GetString("database.host")
	config.Database.Port = v.GetInt("database.port")
	config.Database.User = v.GetString("database.user")
	config.Database.Password = v.GetString("database.password")
	config.Database.Database = v.GetString("database.database")
	config.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	config.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	config.Database.LogQueries = v.GetBool("database.log_queries")

	config.Log.Level = v.GetString("log.level")
	config.Log.Format = v.GetString("log.format")

	config.Photos.Dir = v.GetString("photos.dir")
	config.Seed = v.GetBool("seed")

	if config.Server.ReadTimeout <= 0 {
		config.Server.ReadTimeout = 15 * time.Second
	}
	if config.Server.WriteTimeout <= 0 {
		config.Server.WriteTimeout = 15 * time.Second
	}

	return &config, nil
}
