package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	DatabaseURL            string
	JWTSecret              string
	GoogleAudience         string
	AllowOrigins           []string
	LogstashTCPAddr        string
	MinIOEndpoint          string
	MinIOAccessKey         string
	MinIOSecretKey         string
	MinIOUseSSL            bool
	MinIOBucketAvatars     string
	MinIOBucketImports     string
	MinIOPublicURL         string
	SessionTTL             string
	FrontendBaseURL        string
	SMTPHost               string
	SMTPPort               string
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	PasswordResetTTL       string
	PasswordResetOTPLength int
	ImportMaxRows          int
	ImportMaxFileBytes     int64
	ImportArchiveEnabled   bool
	AvatarMaxBytes         int64
	AvatarMaxDimension     int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("PASSWORD_RESET_OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	importMaxRows := 5000
	if v, err := strconv.Atoi(getenv("IMPORT_MAX_ROWS", "5000")); err == nil && v > 0 {
		importMaxRows = v
	}

	importMaxBytes := int64(10 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("IMPORT_MAX_FILE_BYTES", "10485760"), 10, 64); err == nil && v > 0 {
		importMaxBytes = v
	}

	avatarMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("AVATAR_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		avatarMax = v
	}

	avatarMaxDim := 512
	if v, err := strconv.Atoi(getenv("AVATAR_MAX_DIMENSION", "512")); err == nil && v > 0 {
		avatarMaxDim = v
	}

	return Config{
		Port:                   getenv("PORT", "8080"),
		DatabaseURL:            must("DATABASE_URL"),
		JWTSecret:              must("JWT_SECRET"),
		GoogleAudience:         getenv("GOOGLE_AUDIENCE", ""),
		LogstashTCPAddr:        getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:          must("MINIO_ENDPOINT"),
		MinIOAccessKey:         must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:         must("MINIO_SECRET_KEY"),
		MinIOUseSSL:            getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketAvatars:     getenv("MINIO_BUCKET_AVATARS", "partnertrack-avatars"),
		MinIOBucketImports:     getenv("MINIO_BUCKET_IMPORTS", "partnertrack-imports"),
		MinIOPublicURL:         getenv("MINIO_PUBLIC_URL", ""),
		SessionTTL:             getenv("SESSION_TTL", "24h"),
		FrontendBaseURL:        getenv("FRONTEND_BASE_URL", ""),
		AllowOrigins:           splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		SMTPHost:               getenv("SMTP_HOST", ""),
		SMTPPort:               getenv("SMTP_PORT", ""),
		SMTPUsername:           getenv("SMTP_USERNAME", ""),
		SMTPPassword:           getenv("SMTP_PASSWORD", ""),
		SMTPFrom:               getenv("SMTP_FROM", ""),
		PasswordResetTTL:       getenv("PASSWORD_RESET_TTL", "15m"),
		PasswordResetOTPLength: otpLen,
		ImportMaxRows:          importMaxRows,
		ImportMaxFileBytes:     importMaxBytes,
		ImportArchiveEnabled:   getenv("IMPORT_ARCHIVE_ENABLED", "true") == "true",
		AvatarMaxBytes:         avatarMax,
		AvatarMaxDimension:     avatarMaxDim,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
