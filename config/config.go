package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config.yaml"

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		SecretKey string `yaml:"secret_key"`
	} `yaml:"jwt"`

	Model struct {
		APIKey         string `yaml:"api_key"`
		BaseURL        string `yaml:"base_url"`
		ChatModel      string `yaml:"chat_model"`
		RouterModel    string `yaml:"router_model"`
		EmbeddingModel string `yaml:"embedding_model"`
	} `yaml:"model"`

	Milvus struct {
		Endpoint   string `yaml:"endpoint"`
		APIKey     string `yaml:"api_key"`
		Collection string `yaml:"collection"`
	} `yaml:"milvus"`

	MQ struct {
		NameServer []string `yaml:"name_server"`
	} `yaml:"mq"`

	OSS struct {
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"access_key_id"`
		AccessKeySecret string `yaml:"access_key_secret"`
		BucketName      string `yaml:"bucket_name"`
	} `yaml:"oss"`

	Knowledge struct {
		// Personal color reference documents, indexed into Milvus
		ImmutableDir string `yaml:"immutable_dir"`

		// Trend documents refreshed by the external crawler
		MutableDir string `yaml:"mutable_dir"`
	} `yaml:"knowledge"`
}

// Cfg holds the loaded configuration for the whole process.
var Cfg *Config

// Load reads the YAML config file and applies environment overrides for
// secrets. The path defaults to ./config.yaml and may be overridden with
// the CONFIG_PATH environment variable.
func Load() error {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %v", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %v", path, err)
	}

	applyEnvOverrides(cfg)

	Cfg = cfg
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MODEL_API_KEY"); v != "" {
		cfg.Model.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.JWT.SecretKey = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MILVUS_API_KEY"); v != "" {
		cfg.Milvus.APIKey = v
	}
	if v := os.Getenv("OSS_ACCESS_KEY_SECRET"); v != "" {
		cfg.OSS.AccessKeySecret = v
	}
}
