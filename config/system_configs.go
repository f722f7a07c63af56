package config

import (
	"dashboard/model"
	"encoding/json"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "8080"
	defaultDbDriver = "postgres"
	defaultMongoDb  = "Dashboard"
	defaultRefresh  = 18
)

type SystemConfigs struct {
	Config *model.EnvConfig
}

func LoadConfigs() (*SystemConfigs, error) {
	godotenv.Load()

	rawJson := os.Getenv("config")
	if rawJson == "" {
		return nil, fmt.Errorf("environment variable 'config' is empty or not set")
	}
	return ParseConfigs(rawJson)
}

// ParseConfigs decodes the JSON config and fills defaults
func ParseConfigs(rawJson string) (*SystemConfigs, error) {
	var envCfg model.EnvConfig
	if err := json.Unmarshal([]byte(rawJson), &envCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if envCfg.Port == "" {
		envCfg.Port = defaultPort
	}
	if envCfg.DbDriver == "" {
		envCfg.DbDriver = defaultDbDriver
	}
	if envCfg.MongoDatabase == "" {
		envCfg.MongoDatabase = defaultMongoDb
	}
	if envCfg.RefreshHour == 0 && envCfg.RefreshMinute == 0 {
		envCfg.RefreshHour = defaultRefresh
	}
	if envCfg.DbDsn == "" {
		return nil, fmt.Errorf("config: dbDsn is required")
	}
	if envCfg.JwtSecret == "" {
		return nil, fmt.Errorf("config: jwtSecret is required")
	}

	return &SystemConfigs{
		Config: &envCfg,
	}, nil
}

type ConfigManager struct {
	value atomic.Value
}

func NewConfigManager(initial *model.RuntimeConfig) *ConfigManager {
	cm := &ConfigManager{}
	cm.value.Store(initial)
	return cm
}

func (cm *ConfigManager) GetConfig() *model.RuntimeConfig {
	return cm.value.Load().(*model.RuntimeConfig)
}

func (cm *ConfigManager) UpdateConfig(newCfg *model.RuntimeConfig) {
	cm.value.Store(newCfg)
}
