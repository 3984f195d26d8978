package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store and blob backends
const (
	StoreFirestore = "firestore"
	StoreSQLite    = "sqlite"
	BlobGCS        = "gcs"
	BlobLocal      = "local"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	FirebaseProjectID     string
	FirebaseAPIKey        string
	FirebaseStorageBucket string
	CredentialsFile       string
	CredentialsJSON       string
	AuthEmailDomain       string

	StoreBackend     string
	DBPath           string
	OfflineCachePath string

	BlobBackend string
	BlobDir     string
	BlobBaseURL string

	RedisURL    string
	SyncChannel string
	CORSOrigins string
}

var AppConfig *Config

func Load() {
	_ = godotenv.Load()

	port := GetEnv("PORT", "3000")
	AppConfig = &Config{
		Port:     port,
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		FirebaseProjectID:     GetEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseAPIKey:        GetEnv("FIREBASE_API_KEY", ""),
		FirebaseStorageBucket: GetEnv("FIREBASE_STORAGE_BUCKET", ""),
		CredentialsFile:       GetEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		CredentialsJSON:       GetEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
		AuthEmailDomain:       GetEnv("AUTH_EMAIL_DOMAIN", "study-tracker.local"),

		StoreBackend:     strings.ToLower(GetEnv("STORE_BACKEND", StoreFirestore)),
		DBPath:           GetEnv("DB_PATH", "./data/study-tracker.db"),
		OfflineCachePath: GetEnv("OFFLINE_CACHE_PATH", ""),

		BlobBackend: strings.ToLower(GetEnv("BLOB_BACKEND", BlobGCS)),
		BlobDir:     GetEnv("BLOB_DIR", "./data/blobs"),
		BlobBaseURL: GetEnv("BLOB_BASE_URL", "http://localhost:"+port+"/files"),

		RedisURL:    GetEnv("REDIS_URL", ""),
		SyncChannel: GetEnv("SYNC_CHANNEL", "sync"),
		CORSOrigins: GetEnv("CORS_ORIGINS", "*"),
	}
}

// Validate reports settings the selected backends cannot run without
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case StoreFirestore, StoreSQLite:
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", StoreFirestore, StoreSQLite, c.StoreBackend))
	}
	switch c.BlobBackend {
	case BlobGCS, BlobLocal:
	default:
		errs = append(errs, fmt.Errorf("BLOB_BACKEND must be %q or %q, got %q", BlobGCS, BlobLocal, c.BlobBackend))
	}

	if c.UsesFirebase() && c.FirebaseProjectID == "" {
		errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required"))
	}
	if c.BlobBackend == BlobGCS && c.FirebaseStorageBucket == "" {
		errs = append(errs, errors.New("FIREBASE_STORAGE_BUCKET is required for the gcs blob backend"))
	}
	if c.FirebaseAPIKey == "" {
		errs = append(errs, errors.New("FIREBASE_API_KEY is required"))
	}
	if c.AuthEmailDomain == "" {
		errs = append(errs, errors.New("AUTH_EMAIL_DOMAIN is required"))
	}

	return errors.Join(errs...)
}

// UsesFirebase reports whether a Firebase app is needed for the document or blob store
func (c *Config) UsesFirebase() bool {
	return c.StoreBackend == StoreFirestore || c.BlobBackend == BlobGCS
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
