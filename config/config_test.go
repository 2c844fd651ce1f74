package config

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("DATABASE_NAME", "salonbook_test")
	t.Setenv("CANCELLATION_WINDOW_HOURS", "6")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "salonbook_test", AppConfig.DatabaseName)
	assert.Equal(t, 6*time.Hour, CancellationWindow())
	assert.Equal(t, 24*time.Hour, ReminderLead())
	assert.Equal(t, "usd", AppConfig.StripeCurrency)
	assert.False(t, IsProduction())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	AppConfig.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, Location())

	AppConfig.Timezone = "Africa/Nairobi"
	loc := Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Africa/Nairobi", loc.String())
}

func TestDurationsFallBackWhenUnset(t *testing.T) {
	AppConfig.CancellationWindowHours = 0
	AppConfig.ReminderLeadHours = -1
	AppConfig.SalonCacheTTLSeconds = 0

	assert.Equal(t, 4*time.Hour, CancellationWindow())
	assert.Equal(t, 24*time.Hour, ReminderLead())
	assert.Equal(t, 5*time.Minute, SalonCacheTTL())
}

func TestValidateRequiresSecretInProduction(t *testing.T) {
	err := Config{Env: "production"}.Validate()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	assert.NoError(t, Config{Env: "production", JWTSecret: "s3cret"}.Validate())
	assert.NoError(t, Config{Env: "development"}.Validate())
}
