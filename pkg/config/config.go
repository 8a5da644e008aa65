package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Lifecycle LifecycleConfig
	Storage   StorageConfig
	Payment   PaymentConfig
	Mail      MailConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LifecycleConfig drives the document lifecycle engine: expiry classification,
// upload gating and the transient notification feed.
type LifecycleConfig struct {
	WarningThresholdDays     int
	MaxUploadSizeBytes       int64
	MaxFileCount             int
	AllowedMimeTypes         []string
	AutoHideDuration         time.Duration
	MaxRetainedNotifications int
	ReclassifyInterval       time.Duration
	StrictTransitions        bool
	NotifyOnSuccess          bool
}

type StorageConfig struct {
	Driver    string // "local" or "s3"
	UploadDir string
	Bucket    string
	Region    string
}

type PaymentConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	Currency       string
}

type MailConfig struct {
	ResendAPIKey     string
	From             string
	ReminderInterval time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine; environment variables alone work for Docker/K8s.

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))

	warnDays, _ := strconv.Atoi(getEnv("LIFECYCLE_WARNING_THRESHOLD_DAYS", "30"))
	maxSize, _ := strconv.ParseInt(getEnv("LIFECYCLE_MAX_UPLOAD_SIZE_BYTES", "10485760"), 10, 64)
	maxFiles, _ := strconv.Atoi(getEnv("LIFECYCLE_MAX_FILE_COUNT", "10"))
	autoHideMs, _ := strconv.Atoi(getEnv("LIFECYCLE_NOTIFY_AUTOHIDE_MS", "5000"))
	maxRetained, _ := strconv.Atoi(getEnv("LIFECYCLE_MAX_RETAINED_NOTIFICATIONS", "3"))
	reclassifyHours, _ := strconv.Atoi(getEnv("LIFECYCLE_RECLASSIFY_INTERVAL_HOURS", "24"))
	strictTransitions := getEnv("LIFECYCLE_STRICT_TRANSITIONS", "false") == "true"
	notifyOnSuccess := getEnv("LIFECYCLE_NOTIFY_ON_SUCCESS", "true") == "true"
	reminderHours, _ := strconv.Atoi(getEnv("MAIL_REMINDER_INTERVAL_HOURS", "24"))

	allowedTypes := strings.Split(getEnv(
		"LIFECYCLE_ALLOWED_MIME_TYPES",
		"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document,image/jpeg,image/png",
	), ",")
	for i := range allowedTypes {
		allowedTypes[i] = strings.TrimSpace(allowedTypes[i])
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "mti_portal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Lifecycle: LifecycleConfig{
			WarningThresholdDays:     warnDays,
			MaxUploadSizeBytes:       maxSize,
			MaxFileCount:             maxFiles,
			AllowedMimeTypes:         allowedTypes,
			AutoHideDuration:         time.Duration(autoHideMs) * time.Millisecond,
			MaxRetainedNotifications: maxRetained,
			ReclassifyInterval:       time.Duration(reclassifyHours) * time.Hour,
			StrictTransitions:        strictTransitions,
			NotifyOnSuccess:          notifyOnSuccess,
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			UploadDir: getEnv("STORAGE_UPLOAD_DIR", "uploads"),
			Bucket:    getEnv("STORAGE_S3_BUCKET", ""),
			Region:    getEnv("STORAGE_S3_REGION", "af-south-1"),
		},
		Payment: PaymentConfig{
			BaseURL:        getEnv("PAYMENT_GATEWAY_URL", ""),
			ConsumerKey:    getEnv("PAYMENT_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("PAYMENT_CONSUMER_SECRET", ""),
			CallbackURL:    getEnv("PAYMENT_CALLBACK_URL", ""),
			Currency:       getEnv("PAYMENT_CURRENCY", "KES"),
		},
		Mail: MailConfig{
			ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
			From:             getEnv("MAIL_FROM", "no-reply@mti-portal.example"),
			ReminderInterval: time.Duration(reminderHours) * time.Hour,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
