package bootstrap

import (
	"testing"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "vit_connect",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 10,
		SessionKey:       "a-strong-key-0123456789abcdef0123456789",
		SessionName:      "vitconnect-session",
		StorageLocalPath: "./uploads/media",
		StorageLocalURL:  "/files/media",
		BaseURL:          "http://localhost:3000",
	}
}

func TestValidateConfig_OK(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	if err := ValidateConfig(coreCfg, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}
	appCfg := validAppConfig()
	appCfg.MongoURI = "not-a-mongo-uri"

	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err == nil {
		t.Error("expected error for invalid MongoDB URI")
	}
}

func TestValidateConfig_PartialGoogleCredentials(t *testing.T) {
	coreCfg := &config.CoreConfig{Env: "dev"}

	appCfg := validAppConfig()
	appCfg.GoogleClientID = "client-id-only"
	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err == nil {
		t.Error("expected error when only google_client_id is set")
	}

	appCfg = validAppConfig()
	appCfg.GoogleClientSecret = "secret-only"
	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err == nil {
		t.Error("expected error when only google_client_secret is set")
	}

	appCfg = validAppConfig()
	appCfg.GoogleClientID = "client-id"
	appCfg.GoogleClientSecret = "client-secret"
	if err := ValidateConfig(coreCfg, appCfg, testLogger()); err != nil {
		t.Errorf("expected complete Google credentials to validate, got %v", err)
	}
}

func TestValidateConfig_DefaultSessionKeyInProd(t *testing.T) {
	appCfg := validAppConfig()
	appCfg.SessionKey = "dev-only-change-me-please-0123456789ABCDEF"

	// Accepted in dev
	if err := ValidateConfig(&config.CoreConfig{Env: "dev"}, appCfg, testLogger()); err != nil {
		t.Errorf("expected default key to be accepted in dev, got %v", err)
	}

	// Rejected in prod
	if err := ValidateConfig(&config.CoreConfig{Env: "prod"}, appCfg, testLogger()); err == nil {
		t.Error("expected default session key to be rejected in prod")
	}
}
