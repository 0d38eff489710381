package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type LedgerConfig struct {
	Env           string `yaml:"env" env-default:"local"`
	LedgerDB      `yaml:"ledger_db"`
	LogConfig     `yaml:"log_config"`
	KafkaService  `yaml:"kafka-service"`
	MetricsServer `yaml:"metrics_server"`
	Rewards       `yaml:"rewards"`
	Withdrawals   `yaml:"withdrawals"`
}

type LedgerDB struct {
	Dsn            string `yaml:"dsn" env:"LEDGER_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"text"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"ledger-events"`
}

type MetricsServer struct {
	Host string `yaml:"host" env-default:"0.0.0.0"`
	Port string `yaml:"port" env-default:"9091"`
}

type Rewards struct {
	DirectBonusRate  float64 `yaml:"direct_bonus_rate" env-default:"0.10"`
	DailyYieldRate   float64 `yaml:"daily_yield_rate" env-default:"0.02"`
	ReferralMaxDepth int     `yaml:"referral_max_depth" env-default:"10"`
	DailyCronSpec    string  `yaml:"daily_cron_spec" env-default:"30 5 * * *"`
}

type Withdrawals struct {
	MinAmount float64 `yaml:"min_amount" env-default:"10"`
	MaxAmount float64 `yaml:"max_amount" env-default:"1000"`
}

func MustLoad() *LedgerConfig {

	// Processing env config variable and file
	configPath := os.Getenv("EUROBYTE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("EUROBYTE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg LedgerConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
