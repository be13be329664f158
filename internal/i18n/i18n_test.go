// internal/i18n/i18n_test.go
package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, Initialize("en"))

	assert.Equal(t, []string{"en", "uk"}, GetSupportedLanguages())
	assert.True(t, IsSupported("uk"))
	assert.False(t, IsSupported("zh_TW"))

	assert.Equal(t, "0 hours 8 minutes", T("en", KeyPlaylistDuration, 0, 8))
	assert.Equal(t, "0 год 8 хв", T("uk", KeyPlaylistDuration, 0, 8))
	assert.Equal(t, "Contract not found", T("fr", KeyContractNotFound))
	assert.Equal(t, "missing.key", T("en", "missing.key"))
}

func TestLocalesHaveSameKeys(t *testing.T) {
	load := func(name string) map[string]string {
		data, err := localeFS.ReadFile("locales/" + name)
		require.NoError(t, err)
		var m map[string]string
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	en := load("en.json")
	uk := load("uk.json")

	for key := range en {
		assert.Contains(t, uk, key)
	}
	assert.Len(t, uk, len(en))
}
