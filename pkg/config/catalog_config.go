package config

import (
	"fmt"
	"os"

	"github.com/decker502/roomdecor/pkg/types"
	"gopkg.in/yaml.v3"
)

// CatalogDefinition 可放置物品的目录定义（不可变，被多个实例共享）
//
// YAML 中的引用字段（compatibleWith、requiredBase、comboTrigger）以 ID 书写，
// 加载完成后解析为指针，运行时只使用解析后的字段
type CatalogDefinition struct {
	ID    string     `yaml:"id"`    // 唯一ID，如 "bed_frame"
	Name  string     `yaml:"name"`  // 显示名称，默认等于 ID
	Size  types.Size `yaml:"size"`  // 未旋转方向的占地尺寸（格子）
	Price int        `yaml:"price"` // 价格，首次放置时作为奖励发放

	LayerName        string `yaml:"layer"`        // "furniture"（默认）或 "kit"
	FurnitureTagName string `yaml:"furnitureTag"` // 房间类别，如 "bedroom"，空表示无类别

	TagMatchBonusPoints int      `yaml:"tagMatchBonusPoints"` // 房间类别匹配奖励
	CompatibleWithIDs   []string `yaml:"compatibleWith"`      // 可以叠放在哪些底座之上

	IsWallMounted   bool `yaml:"wallMounted"`   // 是否挂墙
	IsStackable     bool `yaml:"stackable"`     // 是否可以堆叠到接收器上
	IsStackReceiver bool `yaml:"stackReceiver"` // 是否可以接收堆叠物
	MaxStackLevel   int  `yaml:"maxStackLevel"` // 最大堆叠数量（仅接收器）

	RequiredBaseID string `yaml:"requiredBase"` // 需要的套件定义ID，空表示无门控

	HasComboSprite bool   `yaml:"hasComboSprite"` // 是否有组合外观
	ComboTriggerID string `yaml:"comboTrigger"`   // 触发组合外观的定义ID
	ComboValue     int    `yaml:"comboValue"`     // 作为底座时，每个新组合格子的奖励

	// 解析后的字段
	Layer          types.Layer          `yaml:"-"`
	FurnitureTag   types.FurnitureTag   `yaml:"-"`
	CompatibleWith []*CatalogDefinition `yaml:"-"`
	RequiredBase   *CatalogDefinition   `yaml:"-"`
	ComboTrigger   *CatalogDefinition   `yaml:"-"`
}

// IsCompatibleWith 检查本定义能否叠放在 base 之上
func (d *CatalogDefinition) IsCompatibleWith(base *CatalogDefinition) bool {
	if d == nil || base == nil {
		return false
	}
	for _, c := range d.CompatibleWith {
		if c == base {
			return true
		}
	}
	return false
}

// IsKit 是否为套件层定义
func (d *CatalogDefinition) IsKit() bool {
	return d != nil && d.Layer == types.LayerKit
}

func (d *CatalogDefinition) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.ID
}

// Catalog 目录：按 ID 索引的全部定义
type Catalog struct {
	Definitions map[string]*CatalogDefinition
	Order       []string // 文件中的定义顺序
}

// catalogFile YAML 文件的顶层结构
type catalogFile struct {
	Definitions []*CatalogDefinition `yaml:"definitions"`
}

// LoadCatalog 从YAML文件加载目录
// 参数：
//
//	filepath - 目录文件路径
//
// 返回：
//
//	*Catalog - 解析并完成引用解析的目录
//	error - 读取、模式校验、解析或引用解析失败时返回错误
func LoadCatalog(filepath string) (*Catalog, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", filepath, err)
	}
	return ParseCatalog(data, filepath)
}

// ParseCatalog 从YAML数据解析目录
// source 仅用于错误信息（文件路径或嵌入资源名）
func ParseCatalog(data []byte, source string) (*Catalog, error) {
	if err := validateCatalogDocument(data); err != nil {
		return nil, fmt.Errorf("catalog %s failed schema validation: %w", source, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML from %s: %w", source, err)
	}

	catalog, err := NewCatalog(file.Definitions...)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in %s: %w", source, err)
	}
	return catalog, nil
}

// NewCatalog 由定义列表构建目录
//
// 依次执行：应用默认值 -> 校验 -> 解析引用。
// 测试和工具可以直接用代码构造定义后调用此函数
func NewCatalog(defs ...*CatalogDefinition) (*Catalog, error) {
	catalog := &Catalog{
		Definitions: make(map[string]*CatalogDefinition, len(defs)),
		Order:       make([]string, 0, len(defs)),
	}

	for i, def := range defs {
		if def == nil {
			return nil, fmt.Errorf("definition %d is nil", i)
		}
		applyDefinitionDefaults(def)
		if err := validateDefinition(def); err != nil {
			return nil, fmt.Errorf("definition %d (%s): %w", i, def.ID, err)
		}
		if _, dup := catalog.Definitions[def.ID]; dup {
			return nil, fmt.Errorf("duplicate definition id %q", def.ID)
		}
		catalog.Definitions[def.ID] = def
		catalog.Order = append(catalog.Order, def.ID)
	}

	for _, id := range catalog.Order {
		if err := catalog.resolve(catalog.Definitions[id]); err != nil {
			return nil, fmt.Errorf("definition %s: %w", id, err)
		}
	}

	return catalog, nil
}

// applyDefinitionDefaults 为缺失的可选字段设置默认值
func applyDefinitionDefaults(def *CatalogDefinition) {
	if def.Name == "" {
		def.Name = def.ID
	}

	// 堆叠接收器未配置上限时默认可以堆叠 1 个
	if def.IsStackReceiver && def.MaxStackLevel == 0 {
		def.MaxStackLevel = 1
	}
}

// validateDefinition 校验单个定义的字段合法性
func validateDefinition(def *CatalogDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("id is required")
	}
	if def.Size.Width < 1 || def.Size.Height < 1 {
		return fmt.Errorf("size must be at least 1x1, got %s", def.Size)
	}
	if def.Price < 0 {
		return fmt.Errorf("price cannot be negative, got %d", def.Price)
	}
	if def.TagMatchBonusPoints < 0 {
		return fmt.Errorf("tagMatchBonusPoints cannot be negative, got %d", def.TagMatchBonusPoints)
	}
	if def.ComboValue < 0 {
		return fmt.Errorf("comboValue cannot be negative, got %d", def.ComboValue)
	}
	if def.MaxStackLevel < 0 {
		return fmt.Errorf("maxStackLevel cannot be negative, got %d", def.MaxStackLevel)
	}

	layer, ok := types.ParseLayer(def.LayerName)
	if !ok {
		return fmt.Errorf("unknown layer %q", def.LayerName)
	}
	def.Layer = layer

	tag, ok := types.ParseFurnitureTag(def.FurnitureTagName)
	if !ok {
		return fmt.Errorf("unknown furnitureTag %q", def.FurnitureTagName)
	}
	def.FurnitureTag = tag

	if layer == types.LayerKit {
		if def.RequiredBaseID != "" {
			return fmt.Errorf("kit definitions cannot require another kit")
		}
		if def.IsStackable || def.IsStackReceiver || def.IsWallMounted {
			return fmt.Errorf("kit definitions cannot be stackable, stack receivers or wall mounted")
		}
	}
	if def.HasComboSprite && def.ComboTriggerID == "" {
		return fmt.Errorf("hasComboSprite requires comboTrigger")
	}

	return nil
}

// resolve 将 ID 引用解析为指针
func (c *Catalog) resolve(def *CatalogDefinition) error {
	def.CompatibleWith = def.CompatibleWith[:0]
	for _, id := range def.CompatibleWithIDs {
		target, ok := c.Definitions[id]
		if !ok {
			return fmt.Errorf("compatibleWith references unknown definition %q", id)
		}
		def.CompatibleWith = append(def.CompatibleWith, target)
	}

	def.RequiredBase = nil
	if def.RequiredBaseID != "" {
		target, ok := c.Definitions[def.RequiredBaseID]
		if !ok {
			return fmt.Errorf("requiredBase references unknown definition %q", def.RequiredBaseID)
		}
		if !target.IsKit() {
			return fmt.Errorf("requiredBase %q must be a kit-layer definition", def.RequiredBaseID)
		}
		def.RequiredBase = target
	}

	def.ComboTrigger = nil
	if def.ComboTriggerID != "" {
		target, ok := c.Definitions[def.ComboTriggerID]
		if !ok {
			return fmt.Errorf("comboTrigger references unknown definition %q", def.ComboTriggerID)
		}
		def.ComboTrigger = target
	}

	return nil
}

// Get 按 ID 获取定义
func (c *Catalog) Get(id string) (*CatalogDefinition, bool) {
	def, ok := c.Definitions[id]
	return def, ok
}

// List 按文件顺序返回全部定义
func (c *Catalog) List() []*CatalogDefinition {
	defs := make([]*CatalogDefinition, 0, len(c.Order))
	for _, id := range c.Order {
		defs = append(defs, c.Definitions[id])
	}
	return defs
}

// ByLayer 按文件顺序返回指定层的定义
func (c *Catalog) ByLayer(layer types.Layer) []*CatalogDefinition {
	defs := make([]*CatalogDefinition, 0)
	for _, def := range c.List() {
		if def.Layer == layer {
			defs = append(defs, def)
		}
	}
	return defs
}
