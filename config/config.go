// Package config provides configuration management for the Lodgepay payment service.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"sync"
)

// Config holds all configuration for the Lodgepay payment service.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
type Config struct {
	IsDebug        bool  `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	DisablePayment bool  `yaml:"disable_payment" env:"DISABLE_PAYMENT" env-default:"false"`
	LogRecords     int64 `yaml:"log_records" env:"LOG_RECORDS" env-default:"0"`
	Listen         struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5200"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:""`
	} `yaml:"mongo"`
	Merchant struct {
		// Endpoint is the processor post URL. The default points at the
		// Merchant Warrior base environment and is for local development only.
		Endpoint    string `yaml:"endpoint" env:"MERCHANT_ENDPOINT" env-default:"https://base.merchantwarrior.com/post/"`
		UUID        string `yaml:"uuid" env:"MERCHANT_UUID" env-default:""`
		ApiKey      string `yaml:"api_key" env:"MERCHANT_API_KEY" env-default:""`
		Passphrase  string `yaml:"passphrase" env:"MERCHANT_PASSPHRASE" env-default:""`
		Currency    string `yaml:"currency" env:"MERCHANT_CURRENCY" env-default:"AUD"`
		Product     string `yaml:"product" env:"MERCHANT_PRODUCT" env-default:"Accommodation Payment"`
		AmountLimit string `yaml:"amount_limit" env:"MERCHANT_AMOUNT_LIMIT" env-default:"99999.99"`
	} `yaml:"merchant"`
	// Customer holds fallback values for optional customer fields.
	// They are applied once at request assembly when the caller leaves
	// a field empty; deployments should override the email placeholder.
	Customer struct {
		Country  string `yaml:"country" env:"CUSTOMER_COUNTRY" env-default:"AU"`
		State    string `yaml:"state" env:"CUSTOMER_STATE" env-default:"QLD"`
		City     string `yaml:"city" env:"CUSTOMER_CITY" env-default:"Camberwell"`
		Address  string `yaml:"address" env:"CUSTOMER_ADDRESS" env-default:"3/689 Burke Rd Camberwell"`
		PostCode string `yaml:"post_code" env:"CUSTOMER_POST_CODE" env-default:"4000"`
		Email    string `yaml:"email" env:"CUSTOMER_EMAIL" env-default:"reservations@example.com"`
	} `yaml:"customer"`
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path.
// Configuration values can be overridden by environment variables.
// This function uses a singleton pattern and only loads the config once.
//
// Environment variables take precedence over YAML values. See Config struct
// for the list of supported environment variables.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("load config: %w; %s", err, desc)
			instance = nil
		}
	})
	return instance, err
}
