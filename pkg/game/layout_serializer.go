package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/systems"
	"github.com/decker502/roomdecor/pkg/types"
)

// LayoutSerializer 房间布局序列化器
//
// 架构说明：
//   - 这是一个工具类，不是 ECS 系统
//   - 收集时只读取放置引擎的空间索引
//   - 恢复时通过放置引擎的公开接口重放，不直接修改空间索引
type LayoutSerializer struct {
	catalog *config.Catalog
}

// NewLayoutSerializer 创建布局序列化器
func NewLayoutSerializer(catalog *config.Catalog) *LayoutSerializer {
	return &LayoutSerializer{catalog: catalog}
}

// Collect 收集房间内所有已放置的实例
//
// 参数：
//   - ps: 放置引擎
//   - room: 房间（提供 ID 和房间类别）
//
// 返回：
//   - *LayoutSaveData: 布局存档
func (s *LayoutSerializer) Collect(ps *systems.PlacementSystem, room *Room) *LayoutSaveData {
	data := NewLayoutSaveData(room.ID)
	data.SaveTime = time.Now()
	data.RoomTag = room.CurrentRoomTag().String()

	grid := ps.Grid()
	for _, id := range grid.KitEntities() {
		if kit := ps.InstanceOf(id); kit != nil {
			data.Kits = append(data.Kits, NewInstanceData(kit))
		}
	}

	for _, record := range grid.Records() {
		base := ps.InstanceOf(record.Base)
		if base == nil {
			continue
		}
		data.Bases = append(data.Bases, NewInstanceData(base))

		if topper := ps.InstanceOf(record.Topper); topper != nil {
			data.Layered = append(data.Layered, NewInstanceData(topper))
		}
		for _, id := range record.Stack {
			if item := ps.InstanceOf(id); item != nil {
				data.Layered = append(data.Layered, NewInstanceData(item))
			}
		}
	}

	log.Printf("[LayoutSerializer] Collected room %s: tag=%s kits=%d bases=%d layered=%d",
		data.RoomID, data.RoomTag, len(data.Kits), len(data.Bases), len(data.Layered))
	return data
}

// Restore 把布局存档重放到（空的）放置引擎中
//
// 顺序：房间类别 → 套件 → 底座 → 叠放物/堆叠物。
// 一次性标记与组合格子随实例恢复，因此重放不会产生任何奖励。
// 出错时已经重放的部分保留在引擎中，调用方应丢弃该引擎
//
// 返回：
//   - error: 版本不兼容、数据无法解析或某个实例无法放置时返回错误
func (s *LayoutSerializer) Restore(ps *systems.PlacementSystem, room *Room, data *LayoutSaveData) error {
	if data == nil {
		return fmt.Errorf("layout data is nil")
	}
	if data.Version != LayoutSaveVersion {
		return fmt.Errorf("incompatible layout version: %d (expected %d)", data.Version, LayoutSaveVersion)
	}

	tag, ok := types.ParseFurnitureTag(data.RoomTag)
	if !ok {
		return fmt.Errorf("unknown room tag %q", data.RoomTag)
	}
	room.SetRoomTagIfUnset(tag)

	for _, d := range data.Kits {
		inst, err := d.ToInstance(s.catalog)
		if err != nil {
			return fmt.Errorf("failed to decode kit: %w", err)
		}
		if err := ps.RestoreKit(room, inst, d.Anchor).Err(); err != nil {
			return fmt.Errorf("failed to restore kit %s at %v: %w", d.DefinitionID, d.Anchor, err)
		}
	}

	restore := func(group string, items []InstanceData) error {
		for _, d := range items {
			inst, err := d.ToInstance(s.catalog)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", group, err)
			}
			res := ps.TryPlace(room, systems.PlaceRequest{
				Instance:     inst,
				Anchor:       d.Anchor,
				RotationStep: d.RotationStep,
				Restore:      true,
			})
			if err := res.Err(); err != nil {
				return fmt.Errorf("failed to restore %s %s at %v: %w", group, d.DefinitionID, d.Anchor, err)
			}
		}
		return nil
	}
	if err := restore("base", data.Bases); err != nil {
		return err
	}
	if err := restore("layered item", data.Layered); err != nil {
		return err
	}

	log.Printf("[LayoutSerializer] Restored room %s: %d instance(s)", data.RoomID, data.InstanceCount())
	return nil
}
