package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "READ_TIMEOUT", "WRITE_TIMEOUT", "MONGODB_DSN", "MONGO_DB", "AGENT_QUERY_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 180*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "concierge", cfg.MongoDB)
	assert.Equal(t, 120*time.Second, cfg.AgentQueryTimeout)

	// Long agent turns must finish before the server cuts the response.
	assert.Greater(t, cfg.WriteTimeout, cfg.AgentQueryTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("AGENT_QUERY_TIMEOUT", "45")
	t.Setenv("MONGO_DB", "concierge_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.AgentQueryTimeout)
	assert.Equal(t, "concierge_test", cfg.MongoDB)
}

func TestAgentConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{
			name: "fully configured",
			cfg: Config{
				GoogleCloudProject:  "my-project",
				GoogleCloudLocation: "us-central1",
				ReasoningEngine:     "projects/p/locations/l/reasoningEngines/42",
			},
			want: true,
		},
		{
			name: "missing project",
			cfg: Config{
				GoogleCloudLocation: "us-central1",
				ReasoningEngine:     "projects/p/locations/l/reasoningEngines/42",
			},
			want: false,
		},
		{
			name: "missing engine resource",
			cfg: Config{
				GoogleCloudProject:  "my-project",
				GoogleCloudLocation: "us-central1",
			},
			want: false,
		},
		{
			name: "nothing set",
			cfg:  Config{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.AgentConfigured())
		})
	}
}
