package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EditorSettings 编辑器设置
// 全局设置，不绑定到特定房间
type EditorSettings struct {
	ShowGrid   bool   `yaml:"showGrid"`   // 是否绘制网格线
	ShowEvents bool   `yaml:"showEvents"` // 是否显示奖励事件列表
	AutoSave   bool   `yaml:"autoSave"`   // 每次提交后自动保存布局
	LastRoomID string `yaml:"lastRoomId"` // 上次编辑的房间
}

// DefaultSettings 返回默认设置
func DefaultSettings() *EditorSettings {
	return &EditorSettings{
		ShowGrid:   true,
		ShowEvents: true,
		AutoSave:   false,
		LastRoomID: "bedroom",
	}
}

// SettingsManager 设置管理器
// 负责编辑器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	settings     *EditorSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "editor"
)

// NewSettingsManager 创建设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EditorSettings {
	return sm.settings
}

// ToggleGrid 切换网格线显示
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) ToggleGrid() bool {
	sm.settings.ShowGrid = !sm.settings.ShowGrid
	return sm.settings.ShowGrid
}

// ToggleEvents 切换奖励事件列表显示
func (sm *SettingsManager) ToggleEvents() bool {
	sm.settings.ShowEvents = !sm.settings.ShowEvents
	return sm.settings.ShowEvents
}

// ToggleAutoSave 切换自动保存
func (sm *SettingsManager) ToggleAutoSave() bool {
	sm.settings.AutoSave = !sm.settings.AutoSave
	return sm.settings.AutoSave
}

// SetLastRoom 记录上次编辑的房间
func (sm *SettingsManager) SetLastRoom(roomID string) {
	if roomID != "" {
		sm.settings.LastRoomID = roomID
	}
}
