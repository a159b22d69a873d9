package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "TOKEN_TTL", "STORE_BACKEND", "ADMIN_USER_IDS", "GOOGLE_SHEETS_SPREADSHEET_ID", "JWT_SECRET", "RESET_TOKEN_IN_RESPONSE"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.ResetTTL)
	assert.Equal(t, BackendSheets, cfg.Store.Backend)
	assert.Nil(t, cfg.AdminUserIDs)
	assert.True(t, cfg.InsecureSecret())
	assert.False(t, cfg.ResetTokenInResponse)
}

func TestLoad_ResetTokenFlag(t *testing.T) {
	t.Setenv("RESET_TOKEN_IN_RESPONSE", "true")
	assert.True(t, Load().ResetTokenInResponse)

	t.Setenv("RESET_TOKEN_IN_RESPONSE", "nope")
	assert.False(t, Load().ResetTokenInResponse)
}

func TestLoad_ParsesLists(t *testing.T) {
	t.Setenv("ADMIN_USER_IDS", " a , ,b")
	t.Setenv("TOKEN_TTL", "3600")
	t.Setenv("STORE_BACKEND", "Memory")

	cfg := Load()

	assert.Equal(t, []string{"a", "b"}, cfg.AdminUserIDs)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.StoreConfigured())
}

func TestStoreConfigured(t *testing.T) {
	cfg := Config{Store: StoreConfig{Backend: BackendSheets, SpreadsheetID: "sheet"}}
	assert.False(t, cfg.StoreConfigured())

	cfg.Store.CredentialsJSON = "{}"
	assert.True(t, cfg.StoreConfigured())

	cfg.Store = StoreConfig{Backend: BackendPostgres}
	assert.False(t, cfg.StoreConfigured())
	cfg.Store.DatabaseURL = "postgres://x"
	assert.True(t, cfg.StoreConfigured())

	cfg.Store = StoreConfig{Backend: "bogus"}
	assert.False(t, cfg.StoreConfigured())
}
