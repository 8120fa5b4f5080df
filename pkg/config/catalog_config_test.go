package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/roomdecor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
definitions:
  - id: bed_kit
    size: {width: 2, height: 2}
    layer: kit
  - id: bed_frame
    name: Bed Frame
    size: {width: 2, height: 2}
    price: 120
    furnitureTag: bedroom
    tagMatchBonusPoints: 40
    stackReceiver: true
    requiredBase: bed_kit
    hasComboSprite: true
    comboTrigger: duvet
    comboValue: 15
  - id: duvet
    size: {width: 2, height: 1}
    price: 30
    compatibleWith: [bed_frame]
`

// TestParseCatalog 测试目录解析与引用解析
func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(testCatalogYAML), "test")
	require.NoError(t, err)

	assert.Equal(t, []string{"bed_kit", "bed_frame", "duvet"}, catalog.Order)

	kit, ok := catalog.Get("bed_kit")
	require.True(t, ok)
	assert.True(t, kit.IsKit())
	assert.Equal(t, "bed_kit", kit.Name, "name defaults to id")

	bed, ok := catalog.Get("bed_frame")
	require.True(t, ok)
	assert.Equal(t, types.TagBedroom, bed.FurnitureTag)
	assert.Equal(t, types.LayerFurniture, bed.Layer)
	assert.Equal(t, 1, bed.MaxStackLevel, "stack receivers default to one slot")
	assert.Same(t, kit, bed.RequiredBase)

	duvet, ok := catalog.Get("duvet")
	require.True(t, ok)
	assert.Same(t, duvet, bed.ComboTrigger)
	assert.True(t, duvet.IsCompatibleWith(bed))
	assert.False(t, bed.IsCompatibleWith(duvet))
	assert.Equal(t, types.TagNone, duvet.FurnitureTag)

	assert.Len(t, catalog.ByLayer(types.LayerKit), 1)
	assert.Len(t, catalog.ByLayer(types.LayerFurniture), 2)
}

// TestParseCatalogSchemaErrors 模式校验应拒绝结构错误的文档
func TestParseCatalogSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "缺少 definitions",
			yaml: "items: []\n",
		},
		{
			name: "拼写错误的字段",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    stackabel: true\n",
		},
		{
			name: "尺寸为 0",
			yaml: "definitions:\n  - id: a\n    size: {width: 0, height: 1}\n",
		},
		{
			name: "负价格",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    price: -5\n",
		},
		{
			name: "未知的层",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    layer: ceiling\n",
		},
		{
			name: "ID 格式错误",
			yaml: "definitions:\n  - id: Bad-Id\n    size: {width: 1, height: 1}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml), "test")
			assert.Error(t, err)
		})
	}
}

// TestParseCatalogReferenceErrors 引用解析错误
func TestParseCatalogReferenceErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "未知的兼容底座",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    compatibleWith: [missing]\n",
		},
		{
			name: "requiredBase 不是套件",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n  - id: b\n    size: {width: 1, height: 1}\n    requiredBase: a\n",
		},
		{
			name: "重复的 ID",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n  - id: a\n    size: {width: 1, height: 1}\n",
		},
		{
			name: "未知的房间类别",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    furnitureTag: dungeon\n",
		},
		{
			name: "组合外观缺少触发定义",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    hasComboSprite: true\n",
		},
		{
			name: "套件不能堆叠",
			yaml: "definitions:\n  - id: a\n    size: {width: 1, height: 1}\n    layer: kit\n    stackable: true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml), "test")
			assert.Error(t, err)
		})
	}
}

// TestNewCatalogFromCode 用代码构造定义
func TestNewCatalogFromCode(t *testing.T) {
	kit := &CatalogDefinition{ID: "kit", Size: types.Size{Width: 1, Height: 1}, LayerName: "kit"}
	lamp := &CatalogDefinition{ID: "lamp", Size: types.Size{Width: 1, Height: 1}, RequiredBaseID: "kit"}

	catalog, err := NewCatalog(kit, lamp)
	require.NoError(t, err)
	assert.Same(t, kit, lamp.RequiredBase)
	assert.Len(t, catalog.List(), 2)

	_, err = NewCatalog(nil)
	assert.Error(t, err)
}

// TestLoadCatalogFile 测试从文件加载
func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, catalog.Definitions, 3)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// TestShippedCatalog 随游戏发布的目录必须能通过校验
func TestShippedCatalog(t *testing.T) {
	catalog, err := LoadCatalog(filepath.Join("..", "..", "data", "catalog.yaml"))
	require.NoError(t, err)

	bed, ok := catalog.Get("bed_frame")
	require.True(t, ok)
	assert.True(t, bed.IsStackReceiver)
	assert.Equal(t, 2, bed.MaxStackLevel)
	require.NotNil(t, bed.RequiredBase)
	assert.Equal(t, "bed_kit", bed.RequiredBase.ID)

	for _, def := range catalog.ByLayer(types.LayerFurniture) {
		for _, base := range def.CompatibleWith {
			assert.False(t, base.IsKit(), "%s lists kit %s as a topper base", def.ID, base.ID)
		}
	}
}
