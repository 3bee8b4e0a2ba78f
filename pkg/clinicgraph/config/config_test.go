package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfig_String tests string extraction with defaults.
func TestConfig_String(t *testing.T) {
	cfg := New(map[string]any{
		"clinic_name": "Good Health Clinic",
		"count":       3,
	})

	assert.Equal(t, "Good Health Clinic", cfg.String("clinic_name", "fallback"))
	assert.Equal(t, "fallback", cfg.String("missing", "fallback"))
	assert.Equal(t, "fallback", cfg.String("count", "fallback"))
}

// TestConfig_Duration tests the accepted duration representations.
func TestConfig_Duration(t *testing.T) {
	cfg := New(map[string]any{
		"as_string":  "90s",
		"as_int":     30,
		"as_float":   1.5,
		"as_native":  2 * time.Minute,
		"bad_string": "ninety seconds",
	})

	assert.Equal(t, 90*time.Second, cfg.Duration("as_string", time.Second))
	assert.Equal(t, 30*time.Second, cfg.Duration("as_int", time.Second))
	assert.Equal(t, 1500*time.Millisecond, cfg.Duration("as_float", time.Second))
	assert.Equal(t, 2*time.Minute, cfg.Duration("as_native", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("bad_string", time.Second))
	assert.Equal(t, time.Second, cfg.Duration("missing", time.Second))
}

// TestConfig_Bool tests boolean extraction.
func TestConfig_Bool(t *testing.T) {
	cfg := New(map[string]any{"enabled": true, "name": "x"})

	assert.True(t, cfg.Bool("enabled", false))
	assert.True(t, cfg.Bool("missing", true))
	assert.False(t, cfg.Bool("name", false))
}

// TestConfig_Int tests integer conversion rules.
func TestConfig_Int(t *testing.T) {
	cfg := New(map[string]any{
		"as_int":       5,
		"as_int64":     int64(7),
		"whole_float":  3.0,
		"frac_float":   3.5,
		"not_a_number": "five",
	})

	assert.Equal(t, 5, cfg.Int("as_int", 0))
	assert.Equal(t, 7, cfg.Int("as_int64", 0))
	assert.Equal(t, 3, cfg.Int("whole_float", 0))
	assert.Equal(t, 9, cfg.Int("frac_float", 9))
	assert.Equal(t, 9, cfg.Int("not_a_number", 9))
}

// TestConfig_Float tests float extraction.
func TestConfig_Float(t *testing.T) {
	cfg := New(map[string]any{"temperature": 0.7, "count": 2})

	assert.Equal(t, 0.7, cfg.Float("temperature", 0))
	assert.Equal(t, 2.0, cfg.Float("count", 0))
	assert.Equal(t, 0.5, cfg.Float("missing", 0.5))
}

// TestConfig_StringSlice tests slice conversion.
func TestConfig_StringSlice(t *testing.T) {
	cfg := New(map[string]any{
		"typed": []string{"a", "b"},
		"anys":  []any{"a", "b"},
		"mixed": []any{"a", 2},
	})

	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("typed", nil))
	assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("anys", nil))
	assert.Equal(t, []string{"z"}, cfg.StringSlice("mixed", []string{"z"}))
	assert.Equal(t, []string{"z"}, cfg.StringSlice("missing", []string{"z"}))
}

// TestConfig_HasAndAny tests key presence and raw access.
func TestConfig_HasAndAny(t *testing.T) {
	cfg := New(map[string]any{"key": 42})

	assert.True(t, cfg.Has("key"))
	assert.False(t, cfg.Has("missing"))
	assert.Equal(t, 42, cfg.Any("key", nil))
	assert.Equal(t, "d", cfg.Any("missing", "d"))
}

// TestNew_NilData tests that a nil map yields a usable empty config.
func TestNew_NilData(t *testing.T) {
	cfg := New(nil)
	assert.NotNil(t, cfg.Raw())
	assert.Equal(t, "d", cfg.String("anything", "d"))
}

// TestFromYAML tests YAML parsing.
func TestFromYAML(t *testing.T) {
	cfg, err := FromYAML([]byte("clinic_name: Good Health Clinic\ntemperature: 0\nlog_level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "Good Health Clinic", cfg.String("clinic_name", ""))
	assert.Equal(t, 0.0, cfg.Float("temperature", 1))
	assert.Equal(t, "debug", cfg.String("log_level", ""))

	_, err = FromYAML([]byte("\tnot yaml"))
	assert.Error(t, err)
}

// TestFromJSON tests JSON parsing.
func TestFromJSON(t *testing.T) {
	cfg, err := FromJSON([]byte(`{"model": "gpt-4o-mini", "max_tokens": 256}`))
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.String("model", ""))
	assert.Equal(t, 256, cfg.Int("max_tokens", 0))

	_, err = FromJSON([]byte("{"))
	assert.Error(t, err)
}

// TestFromFile tests extension-based loading.
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "clinic.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("clinic_name: Riverside\n"), 0o644))

	cfg, err := FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Riverside", cfg.String("clinic_name", ""))

	txtPath := filepath.Join(dir, "clinic.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o644))
	_, err = FromFile(txtPath)
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
