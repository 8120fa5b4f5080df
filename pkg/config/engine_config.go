package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig 放置引擎配置
type EngineConfig struct {
	Columns int `yaml:"columns"` // 房间网格列数
	Rows    int `yaml:"rows"`    // 房间网格行数

	// BonusPopupDelay 同一次提交中相邻两个奖励弹窗之间的延迟（秒）
	// 引擎只把延迟写进奖励事件，实际调度由表现层负责
	BonusPopupDelay float64 `yaml:"bonusPopupDelay"`
}

// 默认值
const (
	DefaultGridColumns     = 8
	DefaultGridRows        = 6
	DefaultBonusPopupDelay = 0.6
)

// DefaultEngineConfig 返回默认引擎配置
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Columns:         DefaultGridColumns,
		Rows:            DefaultGridRows,
		BonusPopupDelay: DefaultBonusPopupDelay,
	}
}

// LoadEngineConfig 从YAML文件加载引擎配置
func LoadEngineConfig(filepath string) (*EngineConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config file %s: %w", filepath, err)
	}
	cfg, err := ParseEngineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseEngineConfig 从YAML数据解析引擎配置，缺失字段使用默认值
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config YAML: %w", err)
	}

	applyEngineDefaults(&cfg)

	if err := validateEngineConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &cfg, nil
}

// applyEngineDefaults 为未配置的字段设置默认值
func applyEngineDefaults(cfg *EngineConfig) {
	if cfg.Columns == 0 {
		cfg.Columns = DefaultGridColumns
	}
	if cfg.Rows == 0 {
		cfg.Rows = DefaultGridRows
	}
	if cfg.BonusPopupDelay == 0 {
		cfg.BonusPopupDelay = DefaultBonusPopupDelay
	}
}

func validateEngineConfig(cfg *EngineConfig) error {
	if cfg.Columns < 1 || cfg.Rows < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", cfg.Columns, cfg.Rows)
	}
	if cfg.BonusPopupDelay < 0 {
		return fmt.Errorf("bonusPopupDelay cannot be negative, got %f", cfg.BonusPopupDelay)
	}
	return nil
}
