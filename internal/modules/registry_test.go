package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latch-lang/latch/internal/config"
)

func TestRegistryIncludesAllFourteenModules(t *testing.T) {
	reg := Registry(config.Default())

	want := []string{
		"fs", "proc", "http", "json", "env", "path", "time",
		"ai", "regex", "csv", "base64", "hash", "math", "set",
	}
	assert.Len(t, reg, len(want))
	for _, name := range want {
		assert.Contains(t, reg, name)
		assert.NotEmpty(t, reg[name])
	}
}

func TestRegistryAIModuleCarriesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.AIEndpoint = "https://example.test/v1"
	reg := Registry(cfg)

	assert.Contains(t, reg, "ai")
	assert.Contains(t, reg["ai"], "ask")
}
