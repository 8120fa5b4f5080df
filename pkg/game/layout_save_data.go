package game

import (
	"fmt"
	"time"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// LayoutSaveVersion 布局存档版本号
// 数据结构发生不兼容变更时递增
const LayoutSaveVersion = 1

// LayoutSaveData 房间布局存档
//
// 恢复时按 套件 → 底座 → 叠放物/堆叠物 的顺序重放，
// 每个实例的 InstanceID、一次性标记、组合格子和堆叠层级原样保留
type LayoutSaveData struct {
	Version  int       `yaml:"version"`
	SaveTime time.Time `yaml:"saveTime"`

	RoomID  string `yaml:"roomId"`
	RoomTag string `yaml:"roomTag"`

	Kits    []InstanceData `yaml:"kits"`
	Bases   []InstanceData `yaml:"bases"`
	Layered []InstanceData `yaml:"layered"` // 按记录顺序：叠放物，然后堆叠物（自底向上）
}

// InstanceData 实例序列化数据
// 字段与 InstanceComponent 对应
type InstanceData struct {
	InstanceID   string     `yaml:"instanceId"`
	DefinitionID string     `yaml:"definitionId"`
	Role         string     `yaml:"role"`
	Anchor       types.Cell `yaml:"anchor"`
	RotationStep int        `yaml:"rotationStep"`

	FirstTimePlaced     bool `yaml:"firstTimePlaced"`
	HasReceivedTagBonus bool `yaml:"hasReceivedTagBonus"`
	IsUnboxed           bool `yaml:"isUnboxed"`

	Base  *BaseStateData  `yaml:"base,omitempty"`
	Layer *LayerStateData `yaml:"layer,omitempty"`
}

// BaseStateData 底座角色数据
type BaseStateData struct {
	CompletedComboCells []types.Cell `yaml:"completedComboCells"`
	StackLevel          int          `yaml:"stackLevel"`
}

// LayerStateData 叠放/堆叠角色数据（宿主实体在恢复时重新建立）
type LayerStateData struct {
	CurrentStackLevel int  `yaml:"currentStackLevel"`
	ComboDone         bool `yaml:"comboDone"`
}

// NewLayoutSaveData 创建空的布局存档
func NewLayoutSaveData(roomID string) *LayoutSaveData {
	return &LayoutSaveData{
		Version: LayoutSaveVersion,
		RoomID:  roomID,
		Kits:    []InstanceData{},
		Bases:   []InstanceData{},
		Layered: []InstanceData{},
	}
}

// InstanceCount 存档中的实例总数
func (d *LayoutSaveData) InstanceCount() int {
	return len(d.Kits) + len(d.Bases) + len(d.Layered)
}

// NewInstanceData 由实例组件生成序列化数据
func NewInstanceData(inst *components.InstanceComponent) InstanceData {
	data := InstanceData{
		InstanceID:          inst.InstanceID.String(),
		DefinitionID:        inst.Definition.ID,
		Role:                inst.Role.String(),
		Anchor:              inst.Anchor,
		RotationStep:        inst.RotationStep,
		FirstTimePlaced:     inst.FirstTimePlaced,
		HasReceivedTagBonus: inst.HasReceivedTagBonus,
		IsUnboxed:           inst.IsUnboxed,
	}
	if inst.Base != nil {
		data.Base = &BaseStateData{
			CompletedComboCells: inst.Base.ComboCells(),
			StackLevel:          inst.Base.StackLevel,
		}
	}
	if inst.Layer != nil {
		data.Layer = &LayerStateData{
			CurrentStackLevel: inst.Layer.CurrentStackLevel,
			ComboDone:         inst.Layer.ComboDone,
		}
	}
	return data
}

// ToInstance 由序列化数据重建实例组件（尚未放置）
//
// 参数：
//   - catalog: 用于解析 DefinitionID
//
// 返回：
//   - error: 定义不存在、InstanceID 或角色无法解析时返回错误
func (d InstanceData) ToInstance(catalog *config.Catalog) (*components.InstanceComponent, error) {
	def, ok := catalog.Get(d.DefinitionID)
	if !ok {
		return nil, fmt.Errorf("unknown definition %q", d.DefinitionID)
	}
	id, err := uuid.Parse(d.InstanceID)
	if err != nil {
		return nil, fmt.Errorf("invalid instance id %q: %w", d.InstanceID, err)
	}
	role, ok := types.ParseInstanceRole(d.Role)
	if !ok {
		return nil, fmt.Errorf("unknown role %q for %s", d.Role, d.InstanceID)
	}

	inst := components.NewInstance(def, d.RotationStep)
	inst.InstanceID = id
	inst.Role = role
	inst.Anchor = d.Anchor
	inst.FirstTimePlaced = d.FirstTimePlaced
	inst.HasReceivedTagBonus = d.HasReceivedTagBonus
	inst.IsUnboxed = d.IsUnboxed

	if d.Base != nil {
		cells := mapset.New[types.Cell]()
		for _, c := range d.Base.CompletedComboCells {
			cells.Put(c)
		}
		inst.Base = &components.BaseState{
			CompletedComboCells: cells,
			StackLevel:          d.Base.StackLevel,
		}
	}
	if d.Layer != nil {
		inst.Layer = &components.LayerState{
			CurrentStackLevel: d.Layer.CurrentStackLevel,
			ComboDone:         d.Layer.ComboDone,
		}
	}
	return inst, nil
}
