package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		// TTL сессионного токена в часах. 168 = 7 дней.
		TTLHours int `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Auth struct {
		// Регистрация ограничена одним почтовым провайдером
		AllowedEmailDomain string `yaml:"allowed_email_domain"`
		// Время жизни кода верификации в минутах
		VerificationCodeTTL int `yaml:"verification_code_ttl"`
		// Время жизни кода сброса пароля в минутах
		ResetCodeTTL  int    `yaml:"reset_code_ttl"`
		AdminEmail    string `yaml:"admin_email"`
		AdminPassword string `yaml:"admin_password"`
		AdminName     string `yaml:"admin_name"`
	} `yaml:"auth"`

	RateLimit struct {
		VerifyLimit         int `yaml:"verify_limit"`
		VerifyWindowMinutes int `yaml:"verify_window_minutes"`
		ResendLimit         int `yaml:"resend_limit"`
		ResendWindowMinutes int `yaml:"resend_window_minutes"`
	} `yaml:"rate_limit"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: из config.yaml в обычном режиме,
// из переменных окружения - в тестовом (когда задан DATABASE_URL).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.applyDefaults()
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.Auth.AllowedEmailDomain = os.Getenv("ALLOWED_EMAIL_DOMAIN")

	cfg.applyDefaults()
	AppConfig = &cfg
}

// GetConfig возвращает загруженную конфигурацию
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// applyDefaults проставляет значения по умолчанию для незаполненных полей
func (cfg *Config) applyDefaults() {
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 168 // 7 дней
	}
	if cfg.Auth.VerificationCodeTTL == 0 {
		cfg.Auth.VerificationCodeTTL = 15
	}
	if cfg.Auth.ResetCodeTTL == 0 {
		cfg.Auth.ResetCodeTTL = 15
	}
	if cfg.Auth.AllowedEmailDomain == "" {
		cfg.Auth.AllowedEmailDomain = "gmail.com"
	}
	if cfg.RateLimit.VerifyLimit == 0 {
		cfg.RateLimit.VerifyLimit = 5
	}
	if cfg.RateLimit.VerifyWindowMinutes == 0 {
		cfg.RateLimit.VerifyWindowMinutes = 15
	}
	if cfg.RateLimit.ResendLimit == 0 {
		cfg.RateLimit.ResendLimit = 3
	}
	if cfg.RateLimit.ResendWindowMinutes == 0 {
		cfg.RateLimit.ResendWindowMinutes = 10
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}

// IsProduction сообщает, работаем ли мы в продакшене
func (cfg *Config) IsProduction() bool {
	return cfg.Server.Env == "production"
}
