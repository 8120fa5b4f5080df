package game

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoLayout 房间没有保存过布局
var ErrNoLayout = errors.New("no saved layout")

// 存储路径常量
const layoutObject = "layouts"

// SaveManager 布局存档管理器
//
// 职责：
//   - 按房间 ID 保存和加载 LayoutSaveData
//   - 存档格式：YAML（与项目其他数据文件一致）→ zstd 压缩
//
// 架构说明：
//   - 数据持久化到 gdata（跨平台存储）
//   - gdataManager 为 nil 时进入降级模式，存档只保存在内存中
type SaveManager struct {
	gdataManager *gdata.Manager
	memory       map[string][]byte // 降级模式下的存档

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *SaveManager: 存档管理器实例
//   - error: 压缩器初始化失败时返回错误
func NewSaveManager(gdataManager *gdata.Manager) (*SaveManager, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	if gdataManager == nil {
		log.Printf("[SaveManager] Warning: no storage available, layouts are kept in memory only")
	}

	return &SaveManager{
		gdataManager: gdataManager,
		memory:       make(map[string][]byte),
		encoder:      encoder,
		decoder:      decoder,
	}, nil
}

// IsPersistent 存档是否会写入磁盘
func (sm *SaveManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// SaveLayout 保存房间布局
//
// 返回：
//   - error: 序列化或写入失败时返回错误
func (sm *SaveManager) SaveLayout(data *LayoutSaveData) error {
	if data == nil || data.RoomID == "" {
		return fmt.Errorf("layout data must have a room id")
	}

	raw, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	compressed := sm.encoder.EncodeAll(raw, make([]byte, 0, len(raw)/2))

	if sm.gdataManager == nil {
		sm.memory[data.RoomID] = compressed
	} else if err := sm.gdataManager.SaveObjectProp(layoutObject, data.RoomID, compressed); err != nil {
		return fmt.Errorf("failed to save layout for room %s: %w", data.RoomID, err)
	}

	log.Printf("[SaveManager] Saved layout for room %s (%d bytes, %d compressed, %d instances)",
		data.RoomID, len(raw), len(compressed), data.InstanceCount())
	return nil
}

// HasLayout 房间是否有存档
func (sm *SaveManager) HasLayout(roomID string) bool {
	if sm.gdataManager == nil {
		_, ok := sm.memory[roomID]
		return ok
	}
	return sm.gdataManager.ObjectPropExists(layoutObject, roomID)
}

// LoadLayout 加载房间布局
//
// 返回：
//   - *LayoutSaveData: 布局存档
//   - error: 没有存档时返回 ErrNoLayout；解压、解析失败或版本不兼容时返回错误
func (sm *SaveManager) LoadLayout(roomID string) (*LayoutSaveData, error) {
	if !sm.HasLayout(roomID) {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNoLayout)
	}

	var compressed []byte
	if sm.gdataManager == nil {
		compressed = sm.memory[roomID]
	} else {
		loaded, err := sm.gdataManager.LoadObjectProp(layoutObject, roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to load layout for room %s: %w", roomID, err)
		}
		compressed = loaded
	}

	raw, err := sm.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress layout for room %s: %w", roomID, err)
	}

	var data LayoutSaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse layout for room %s: %w", roomID, err)
	}
	if data.Version != LayoutSaveVersion {
		return nil, fmt.Errorf("incompatible layout version for room %s: %d (expected %d)",
			roomID, data.Version, LayoutSaveVersion)
	}

	log.Printf("[SaveManager] Loaded layout for room %s (%d instances)", roomID, data.InstanceCount())
	return &data, nil
}

// MemoryRooms 降级模式下已保存的房间 ID（排序）
func (sm *SaveManager) MemoryRooms() []string {
	ids := make([]string, 0, len(sm.memory))
	for id := range sm.memory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
