package game

import (
	"errors"
	"testing"

	"github.com/decker502/roomdecor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout(roomID string) *LayoutSaveData {
	data := NewLayoutSaveData(roomID)
	data.RoomTag = types.TagOffice.String()
	data.Bases = append(data.Bases, InstanceData{
		InstanceID:      "0b7e8f5c-2d4a-4e61-8c3f-9a1b2c3d4e5f",
		DefinitionID:    "bookshelf",
		Role:            "base",
		Anchor:          types.Cell{X: 2, Y: 1},
		FirstTimePlaced: true,
		IsUnboxed:       true,
		Base: &BaseStateData{
			CompletedComboCells: []types.Cell{{X: 0, Y: 0}},
			StackLevel:          1,
		},
	})
	return data
}

// TestSaveManagerMemoryMode 降级模式下存档保存在内存中
func TestSaveManagerMemoryMode(t *testing.T) {
	sm, err := NewSaveManager(nil)
	require.NoError(t, err)
	assert.False(t, sm.IsPersistent())
	assert.False(t, sm.HasLayout("study"))

	require.NoError(t, sm.SaveLayout(sampleLayout("study")))
	require.NoError(t, sm.SaveLayout(sampleLayout("attic")))
	assert.True(t, sm.HasLayout("study"))
	assert.Equal(t, []string{"attic", "study"}, sm.MemoryRooms())

	loaded, err := sm.LoadLayout("study")
	require.NoError(t, err)
	assert.Equal(t, "office", loaded.RoomTag)
	require.Len(t, loaded.Bases, 1)
	assert.Equal(t, sampleLayout("study").Bases[0], loaded.Bases[0])
}

// TestSaveManagerErrors 加载失败的各种情况
func TestSaveManagerErrors(t *testing.T) {
	sm, err := NewSaveManager(nil)
	require.NoError(t, err)

	t.Run("没有存档", func(t *testing.T) {
		_, err := sm.LoadLayout("missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoLayout))
	})

	t.Run("缺少房间ID", func(t *testing.T) {
		assert.Error(t, sm.SaveLayout(NewLayoutSaveData("")))
		assert.Error(t, sm.SaveLayout(nil))
	})

	t.Run("数据损坏", func(t *testing.T) {
		sm.memory["broken"] = []byte("definitely not zstd")
		_, err := sm.LoadLayout("broken")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoLayout))
	})

	t.Run("版本不兼容", func(t *testing.T) {
		data := sampleLayout("future")
		data.Version = LayoutSaveVersion + 1
		require.NoError(t, sm.SaveLayout(data))
		_, err := sm.LoadLayout("future")
		assert.Error(t, err)
	})
}

// TestSaveManagerPersistent gdata 模式下存档写入磁盘，新的管理器可以读回
func TestSaveManagerPersistent(t *testing.T) {
	storage := openTestStorage(t)

	sm, err := NewSaveManager(storage)
	require.NoError(t, err)
	assert.True(t, sm.IsPersistent())
	require.NoError(t, sm.SaveLayout(sampleLayout("study")))
	assert.Empty(t, sm.MemoryRooms())

	reopened, err := NewSaveManager(storage)
	require.NoError(t, err)
	assert.True(t, reopened.HasLayout("study"))
	assert.False(t, reopened.HasLayout("kitchen"))

	loaded, err := reopened.LoadLayout("study")
	require.NoError(t, err)
	assert.Equal(t, "study", loaded.RoomID)
	assert.Equal(t, 1, loaded.InstanceCount())

	_, err = reopened.LoadLayout("kitchen")
	assert.True(t, errors.Is(err, ErrNoLayout))
}
