package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEngineConfigDefaults 缺失字段使用默认值
func TestParseEngineConfigDefaults(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte("columns: 10\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Columns)
	assert.Equal(t, DefaultGridRows, cfg.Rows)
	assert.Equal(t, DefaultBonusPopupDelay, cfg.BonusPopupDelay)
}

// TestParseEngineConfigValidation 非法配置应返回错误
func TestParseEngineConfigValidation(t *testing.T) {
	_, err := ParseEngineConfig([]byte("columns: -1\n"))
	assert.Error(t, err)

	_, err = ParseEngineConfig([]byte("bonusPopupDelay: -0.5\n"))
	assert.Error(t, err)

	_, err = ParseEngineConfig([]byte("columns: [1, 2]\n"))
	assert.Error(t, err)
}

// TestLoadEngineConfig 测试从文件加载
func TestLoadEngineConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("columns: 4\nrows: 3\nbonusPopupDelay: 1.5\n"), 0o644))

	cfg, err := LoadEngineConfig(path)
	require.NoError(t, err)
	assert.Equal(t, &EngineConfig{Columns: 4, Rows: 3, BonusPopupDelay: 1.5}, cfg)

	shipped, err := LoadEngineConfig(filepath.Join("..", "..", "data", "engine.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEngineConfig(), shipped)
}
