package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("BLOB_BACKEND", "local")
	t.Setenv("FIREBASE_API_KEY", "key")

	Load()

	assert.Equal(t, "8081", AppConfig.Port)
	assert.Equal(t, StoreSQLite, AppConfig.StoreBackend)
	assert.Equal(t, "http://localhost:8081/files", AppConfig.BlobBaseURL)
	assert.Equal(t, "sync", AppConfig.SyncChannel)
	assert.False(t, AppConfig.UsesFirebase())
	assert.NoError(t, AppConfig.Validate())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		StoreBackend:          StoreFirestore,
		BlobBackend:           BlobGCS,
		FirebaseProjectID:     "demo",
		FirebaseAPIKey:        "key",
		FirebaseStorageBucket: "demo.appspot.com",
		AuthEmailDomain:       "study.local",
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Missing project", mutate: func(c *Config) { c.FirebaseProjectID = "" }, errorMsg: "FIREBASE_PROJECT_ID"},
		{name: "Missing bucket", mutate: func(c *Config) { c.FirebaseStorageBucket = "" }, errorMsg: "FIREBASE_STORAGE_BUCKET"},
		{name: "Missing api key", mutate: func(c *Config) { c.FirebaseAPIKey = "" }, errorMsg: "FIREBASE_API_KEY"},
		{name: "Unknown store", mutate: func(c *Config) { c.StoreBackend = "mongo" }, errorMsg: "STORE_BACKEND"},
		{name: "Unknown blob backend", mutate: func(c *Config) { c.BlobBackend = "s3" }, errorMsg: "BLOB_BACKEND"},
		{
			name: "Local backends need no project",
			mutate: func(c *Config) {
				c.StoreBackend = StoreSQLite
				c.BlobBackend = BlobLocal
				c.FirebaseProjectID = ""
				c.FirebaseStorageBucket = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errorMsg)
			}
		})
	}
}
