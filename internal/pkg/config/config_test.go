//go:build unit

package config_test

import (
	"testing"

	"booking-pricing/internal/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *config.Config)
		expectErr string
	}{
		{name: "test config is valid", mutate: func(*config.Config) {}},
		{
			name:   "platform url set",
			mutate: func(c *config.Config) { c.Platform.BaseURL = "http://platform.local/v1" },
		},
		{
			name:      "relative platform url",
			mutate:    func(c *config.Config) { c.Platform.BaseURL = "platform.local/v1" },
			expectErr: "AMENITY_PRICING_BASE_URL",
		},
		{
			name:      "zero concurrency",
			mutate:    func(c *config.Config) { c.Platform.Concurrency = 0 },
			expectErr: "AMENITY_PRICING_CONCURRENCY",
		},
		{
			name:      "zero timeout",
			mutate:    func(c *config.Config) { c.Platform.Timeout = 0 },
			expectErr: "AMENITY_PRICING_TIMEOUT",
		},
		{
			name:      "negative pool size",
			mutate:    func(c *config.Config) { c.DB.MaxConns = -1 },
			expectErr: "DB_MAX_CONNS",
		},
		{
			name:      "currency is not a code",
			mutate:    func(c *config.Config) { c.Pricing.DefaultCurrency = "EURO" },
			expectErr: "PRICING_DEFAULT_CURRENCY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewTestConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()

			if tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.expectErr)
		})
	}
}
