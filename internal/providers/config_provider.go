package providers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"brickdeals/internal/structures"
)

const appVersion = "1.2.0"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "BRICKDEALS_LOG_LEVEL")
	viper.BindEnv("database.path", "BRICKDEALS_DB_PATH")
	viper.BindEnv("catalog.apiKey", "BRICKDEALS_CATALOG_API_KEY")
	viper.BindEnv("catalog.apiUrl", "BRICKDEALS_CATALOG_API_URL")
	viper.BindEnv("push.gatewayUrl", "BRICKDEALS_PUSH_GATEWAY_URL")
	viper.BindEnv("security.adminKey", "BRICKDEALS_ADMIN_KEY")
	viper.BindEnv("cache.enabled", "BRICKDEALS_CACHE_ENABLED")
	viper.BindEnv("cache.size", "BRICKDEALS_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "BrickDealsDaemon"
	conf.Version = appVersion
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
