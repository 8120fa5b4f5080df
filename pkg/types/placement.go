package types

// Layer 区分两个互相独立的占用层
type Layer int

const (
	// LayerFurniture 家具层（底座、叠放物、堆叠物）
	LayerFurniture Layer = iota
	// LayerKit 套件层（地台、底板等门控物品）
	LayerKit
)

// String 返回层的配置文件名称
func (l Layer) String() string {
	switch l {
	case LayerFurniture:
		return "furniture"
	case LayerKit:
		return "kit"
	default:
		return "unknown"
	}
}

// ParseLayer 解析配置文件中的层名称，空字符串视为家具层
func ParseLayer(name string) (Layer, bool) {
	switch name {
	case "", "furniture":
		return LayerFurniture, true
	case "kit":
		return LayerKit, true
	default:
		return LayerFurniture, false
	}
}

// InstanceRole 已放置实例在网格中扮演的角色
type InstanceRole int

const (
	// RoleGeneric 不参与叠放的实例（套件层物品）
	RoleGeneric InstanceRole = iota
	// RoleBase 直接占用格子的底座
	RoleBase
	// RoleTopper 叠放在兼容底座之上的实例
	RoleTopper
	// RoleStackItem 堆叠在堆叠接收器上的实例
	RoleStackItem
)

func (r InstanceRole) String() string {
	switch r {
	case RoleGeneric:
		return "generic"
	case RoleBase:
		return "base"
	case RoleTopper:
		return "topper"
	case RoleStackItem:
		return "stackItem"
	default:
		return "unknown"
	}
}

// ParseInstanceRole 解析存档中的角色名称
func ParseInstanceRole(name string) (InstanceRole, bool) {
	for _, r := range []InstanceRole{RoleGeneric, RoleBase, RoleTopper, RoleStackItem} {
		if r.String() == name {
			return r, true
		}
	}
	return RoleGeneric, false
}

// PlacementMode 放置决策结果
type PlacementMode int

const (
	ModeNone PlacementMode = iota
	ModePlain
	ModeTopper
	ModeStack
)

func (m PlacementMode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeTopper:
		return "topper"
	case ModeStack:
		return "stack"
	default:
		return "none"
	}
}

// RejectReason 放置被拒绝的原因类别
type RejectReason int

const (
	RejectNone RejectReason = iota
	// RejectOutOfBounds 目标格子超出可放置区域
	RejectOutOfBounds
	// RejectOccupied 目标格子被不兼容的物品占用
	RejectOccupied
	// RejectNoWallAdjacent 挂墙物品四周没有墙
	RejectNoWallAdjacent
	// RejectStackFull 堆叠接收器已满，且不是重新放置已堆叠的实例
	RejectStackFull
	// RejectIncompatibleBase 底座不在兼容列表中，或底座尚未拆箱
	RejectIncompatibleBase
	// RejectInvalidRequest 请求本身无效（缺少定义、层不匹配、实例已在场上）
	RejectInvalidRequest
)

func (r RejectReason) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectOutOfBounds:
		return "OutOfBounds"
	case RejectOccupied:
		return "Occupied"
	case RejectNoWallAdjacent:
		return "NoWallAdjacent"
	case RejectStackFull:
		return "StackFull"
	case RejectIncompatibleBase:
		return "IncompatibleBase"
	case RejectInvalidRequest:
		return "InvalidRequest"
	default:
		return "unknown"
	}
}

// RewardKind 奖励事件类型
type RewardKind int

const (
	// RewardFirstPlacement 首次放置奖励（定义价格）
	RewardFirstPlacement RewardKind = iota
	// RewardTagBonus 房间类别匹配奖励
	RewardTagBonus
	// RewardCombo 叠放/堆叠组合奖励
	RewardCombo
)

func (k RewardKind) String() string {
	switch k {
	case RewardFirstPlacement:
		return "firstPlacement"
	case RewardTagBonus:
		return "tagBonus"
	case RewardCombo:
		return "combo"
	default:
		return "unknown"
	}
}
