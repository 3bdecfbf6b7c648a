package config

import (
	"backend/models"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultPath = "config/config.yaml"

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwtSecret"`
}

// AIConfig trỏ tới Python AI service, timeout tính bằng giây.
type AIConfig struct {
	BaseURL                string `yaml:"baseURL"`
	DashboardTimeoutSec    int    `yaml:"dashboardTimeout"`
	ChatTimeoutSec         int    `yaml:"chatTimeout"`
	VisualSearchTimeoutSec int    `yaml:"visualSearchTimeout"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
	AI       AIConfig       `yaml:"ai"`
}

func LoadConfig(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}

	applyDefaults(&config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Port == "" {
		config.Server.Port = "3050"
	}
	if config.AI.BaseURL == "" {
		config.AI.BaseURL = "http://127.0.0.1:8000"
	}
	if config.AI.DashboardTimeoutSec == 0 {
		config.AI.DashboardTimeoutSec = 15
	}
	if config.AI.ChatTimeoutSec == 0 {
		// Lớn hơn timeout 18s phía Python một chút
		config.AI.ChatTimeoutSec = 20
	}
	if config.AI.VisualSearchTimeoutSec == 0 {
		// Gemini xử lý ảnh lâu hơn, Python cho phép tới 30s
		config.AI.VisualSearchTimeoutSec = 32
	}
}

func (a AIConfig) DashboardTimeout() time.Duration {
	return time.Duration(a.DashboardTimeoutSec) * time.Second
}

func (a AIConfig) ChatTimeout() time.Duration {
	return time.Duration(a.ChatTimeoutSec) * time.Second
}

func (a AIConfig) VisualSearchTimeout() time.Duration {
	return time.Duration(a.VisualSearchTimeoutSec) * time.Second
}

func SetupMySQLConnection(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Database.Username,
		config.Database.Password,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedisConnection(config Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.Database,
	})
}
