package systems

import (
	"log"

	"github.com/decker502/roomdecor/pkg/components"
	"github.com/decker502/roomdecor/pkg/config"
	"github.com/decker502/roomdecor/pkg/ecs"
	"github.com/decker502/roomdecor/pkg/types"
	"github.com/decker502/roomdecor/pkg/utils"
	"github.com/google/uuid"
)

// PlacementSystem 放置引擎
//
// 负责校验放置请求、决定放置模式（堆叠 / 挂墙 / 普通 / 叠放）、提交空间索引修改，
// 并驱动奖励计算与套件门控。空间索引只由本系统修改。
//
// 所有调用同步执行完毕后才返回；被拒绝的请求不修改任何状态
type PlacementSystem struct {
	entityManager *ecs.EntityManager
	grid          *RoomGridSystem
	bonus         *BonusSystem
	gating        *KitGatingSystem

	collider CollisionOracle
	walls    WallOracle

	// placed 已在场上的实例 → 实体
	placed map[uuid.UUID]ecs.EntityID
}

// NewPlacementSystem 创建放置引擎
// 参数:
//   - em: EntityManager 实例
//   - collider: 碰撞查询，nil 表示没有障碍
//   - walls: 墙体查询，nil 表示没有墙
//   - sink: 奖励接收方，nil 时奖励被丢弃
//   - cfg: 引擎配置，nil 时使用默认配置
func NewPlacementSystem(em *ecs.EntityManager, collider CollisionOracle, walls WallOracle, sink RewardSink, cfg *config.EngineConfig) *PlacementSystem {
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	if collider == nil {
		collider = openSpace{}
	}
	if walls == nil {
		walls = openSpace{}
	}

	grid := NewRoomGridSystem(em, cfg.Columns, cfg.Rows)
	bonus := NewBonusSystem(sink, cfg.BonusPopupDelay)

	return &PlacementSystem{
		entityManager: em,
		grid:          grid,
		bonus:         bonus,
		gating:        NewKitGatingSystem(em, grid, bonus),
		collider:      collider,
		walls:         walls,
		placed:        make(map[uuid.UUID]ecs.EntityID),
	}
}

// Grid 返回空间索引（只读用途）
func (s *PlacementSystem) Grid() *RoomGridSystem {
	return s.grid
}

// TryPlace 尝试放置一个物品
//
// 按固定顺序判断，第一个适用的模式生效：
//  1. 堆叠：可堆叠物品落在未满的堆叠接收器上（或重新放置已在该堆叠中的同一实例）
//  2. 挂墙：挂墙物品需要四周至少一面墙，必要时自动转向
//  3. 普通 / 叠放：格子全空 → 普通；全部落在同一个已拆箱的兼容底座上 → 叠放
//  4. 套件门控：计算新实例的拆箱状态
//  5. 提交并计算奖励
func (s *PlacementSystem) TryPlace(room RoomContext, req PlaceRequest) PlaceResult {
	def := req.Definition
	if def == nil && req.Instance != nil {
		def = req.Instance.Definition
	}
	if def == nil {
		return s.reject(nil, req.Anchor, types.RejectInvalidRequest)
	}
	if def.IsKit() || (req.Instance != nil && req.Instance.Definition != def) {
		return s.reject(def, req.Anchor, types.RejectInvalidRequest)
	}

	// 拒绝的请求不能修改调用方的实例数据，因此在副本上计算
	var candidate *components.InstanceComponent
	if req.Instance != nil {
		candidate = req.Instance.Clone()
		candidate.SetRotation(req.RotationStep)
	} else {
		candidate = components.NewInstance(def, req.RotationStep)
	}
	existing, alreadyPlaced := s.placed[candidate.InstanceID]

	// 1. 堆叠
	if def.IsStackable {
		record, reason := s.findStackReceiver(req.Anchor, candidate.Footprint, existing)
		switch {
		case record != nil && alreadyPlaced:
			return s.replaceStacked(room, record, existing)
		case alreadyPlaced:
			return s.reject(def, req.Anchor, types.RejectInvalidRequest)
		case record != nil:
			return s.commitStack(room, record, candidate)
		case reason != types.RejectNone:
			return s.reject(def, req.Anchor, reason)
		}
	}

	if alreadyPlaced {
		return s.reject(def, req.Anchor, types.RejectInvalidRequest)
	}

	// 2. 挂墙
	if def.IsWallMounted {
		if !s.alignToWall(req.Anchor, candidate) {
			return s.reject(def, req.Anchor, types.RejectNoWallAdjacent)
		}
	}

	// 3. 普通 / 叠放
	cells := s.grid.CellsFor(req.Anchor, candidate.Footprint)
	if !s.grid.InBounds(cells) {
		return s.reject(def, req.Anchor, types.RejectOutOfBounds)
	}

	free, blocked := true, false
	for _, c := range cells {
		if s.grid.BaseAt(c) != nil {
			free = false
		}
		if s.collider.IsBlocked(c, types.LayerFurniture) {
			blocked = true
		}
	}
	if free {
		if blocked {
			return s.reject(def, req.Anchor, types.RejectOccupied)
		}
		return s.commitPlain(room, req.Anchor, cells, candidate)
	}

	record, reason := s.resolveTopperBase(cells, def, req.Restore)
	if record == nil {
		return s.reject(def, req.Anchor, reason)
	}
	return s.commitTopper(room, record, req.Anchor, cells, candidate)
}

// findStackReceiver 在占地范围内查找可用的堆叠接收器
//
// 返回:
//   - record: 可用的接收器记录；existing 不为 0 时为已包含该实体的记录
//   - reason: 找到接收器但都已满时为 RejectStackFull；没有任何接收器时为 RejectNone（不适用堆叠模式）
func (s *PlacementSystem) findStackReceiver(anchor types.Cell, footprint types.Size, existing ecs.EntityID) (*components.PlacementRecord, types.RejectReason) {
	foundReceiver := false
	for _, c := range s.grid.CellsFor(anchor, footprint) {
		record := s.grid.BaseAt(c)
		if record == nil {
			continue
		}
		base := s.instance(record.Base)
		if base == nil || !base.Definition.IsStackReceiver {
			continue
		}
		foundReceiver = true

		if existing != 0 {
			for _, id := range record.Stack {
				if id == existing {
					return record, types.RejectNone
				}
			}
			continue
		}
		if len(record.Stack) < base.Definition.MaxStackLevel {
			return record, types.RejectNone
		}
	}
	if foundReceiver {
		return nil, types.RejectStackFull
	}
	return nil, types.RejectNone
}

// alignToWall 查询四个方向的墙体并调整旋转
// 当前朝向有墙时保持不变，否则取 上、左、下、右 顺序中第一个有墙的方向
func (s *PlacementSystem) alignToWall(anchor types.Cell, candidate *components.InstanceComponent) bool {
	var available []types.Direction
	for _, d := range types.AllDirections {
		if s.walls.HasWall(anchor, d) {
			available = append(available, d)
		}
	}
	if len(available) == 0 {
		return false
	}

	current := types.DirectionForRotation(candidate.RotationStep)
	for _, d := range available {
		if d == current {
			return true
		}
	}
	candidate.SetRotation(available[0].RotationStep())
	return true
}

// resolveTopperBase 判断 cells 能否作为叠放物落在某个底座上
func (s *PlacementSystem) resolveTopperBase(cells []types.Cell, def *config.CatalogDefinition, restoring bool) (*components.PlacementRecord, types.RejectReason) {
	record := s.grid.BaseAt(cells[0])
	if record == nil {
		return nil, types.RejectOccupied
	}
	for _, c := range cells[1:] {
		if s.grid.BaseAt(c) != record {
			return nil, types.RejectOccupied
		}
	}

	base := s.instance(record.Base)
	if base == nil || (!base.IsUnboxed && !restoring) || !def.IsCompatibleWith(base.Definition) {
		return nil, types.RejectIncompatibleBase
	}
	if record.HasTopper() {
		return nil, types.RejectOccupied
	}
	return record, types.RejectNone
}

// commitPlain 普通放置：成为新的底座
func (s *PlacementSystem) commitPlain(room RoomContext, anchor types.Cell, cells []types.Cell, inst *components.InstanceComponent) PlaceResult {
	inst.Role = types.RoleBase
	inst.Anchor = anchor
	inst.Cells = cells
	inst.IsUnboxed = s.gating.IsUnboxedIn(inst.Definition, cells)
	inst.EnsureBaseState().StackLevel = 0

	entity := s.attach(inst)
	s.grid.InsertBase(anchor, cells, entity)

	return s.finish(room, types.ModePlain, entity, inst, nil, false)
}

// commitTopper 叠放：挂到底座记录上，套件门控检查整个底座范围
func (s *PlacementSystem) commitTopper(room RoomContext, record *components.PlacementRecord, anchor types.Cell, cells []types.Cell, inst *components.InstanceComponent) PlaceResult {
	base := s.instance(record.Base)

	inst.Role = types.RoleTopper
	inst.Anchor = anchor
	inst.Cells = cells
	inst.IsUnboxed = s.gating.IsUnboxedIn(inst.Definition, record.Cells)
	layer := inst.EnsureLayerState()
	layer.Host = record.Base
	layer.CurrentStackLevel = 0

	entity := s.attach(inst)
	s.grid.InsertTopper(cells, entity)
	record.ComboSprite = ComboSpriteEligible(base.Definition, inst.Definition)

	return s.finish(room, types.ModeTopper, entity, inst, &ComboTarget{Base: base, NewCells: cells}, record.ComboSprite)
}

// commitStack 堆叠：锚点改为底座锚点，占地裁剪到底座范围内，拆箱状态继承底座
func (s *PlacementSystem) commitStack(room RoomContext, record *components.PlacementRecord, inst *components.InstanceComponent) PlaceResult {
	base := s.instance(record.Base)
	cells := utils.IntersectCells(s.grid.CellsFor(record.Anchor, inst.Footprint), record.Cells)

	inst.Role = types.RoleStackItem
	inst.Anchor = record.Anchor
	inst.Cells = cells
	inst.IsUnboxed = base.IsUnboxed

	entity := s.attach(inst)
	s.grid.InsertStackItem(record.Cells, entity)

	layer := inst.EnsureLayerState()
	layer.Host = record.Base
	layer.CurrentStackLevel = len(record.Stack)
	base.EnsureBaseState().StackLevel = len(record.Stack)

	return s.finish(room, types.ModeStack, entity, inst, &ComboTarget{Base: base, NewCells: cells}, record.ComboSprite)
}

// replaceStacked 重新放置已在堆叠中的同一实例：索引不变，奖励计算由一次性标记保证为 0
func (s *PlacementSystem) replaceStacked(room RoomContext, record *components.PlacementRecord, entity ecs.EntityID) PlaceResult {
	inst := s.instance(entity)
	base := s.instance(record.Base)
	return s.finish(room, types.ModeStack, entity, inst, &ComboTarget{Base: base, NewCells: inst.Cells}, record.ComboSprite)
}

// finish 设置房间类别、运行奖励计算并生成结果
func (s *PlacementSystem) finish(room RoomContext, mode types.PlacementMode, entity ecs.EntityID, inst *components.InstanceComponent, combo *ComboTarget, comboSprite bool) PlaceResult {
	def := inst.Definition
	if room != nil && def.FurnitureTag != types.TagNone {
		room.SetRoomTagIfUnset(def.FurnitureTag)
	}

	reward, events := s.bonus.Evaluate(room, inst, combo)

	log.Printf("[PlacementSystem] Placed %s (%s) at %v mode=%s unboxed=%v reward=%d",
		def.ID, inst.InstanceID, inst.Anchor, mode, inst.IsUnboxed, reward)

	return PlaceResult{
		Committed:    true,
		Mode:         mode,
		Reward:       reward,
		Events:       events,
		InstanceID:   inst.InstanceID,
		Entity:       entity,
		Cells:        append([]types.Cell(nil), inst.Cells...),
		RotationStep: inst.RotationStep,
		ComboSprite:  comboSprite,
	}
}

func (s *PlacementSystem) reject(def *config.CatalogDefinition, anchor types.Cell, reason types.RejectReason) PlaceResult {
	id := "<nil>"
	if def != nil {
		id = def.ID
	}
	log.Printf("[PlacementSystem] Rejected %s at %v: %s", id, anchor, reason)
	return PlaceResult{Reason: reason}
}

// TryRemove 移除格子上的物品
//
// 优先级：叠放物（底座保留）→ 最后放入的堆叠物 → 整个底座（释放所有覆盖的格子）。
// 不支持部分移除多格底座；格子上没有家具时返回空结果
func (s *PlacementSystem) TryRemove(cell types.Cell) RemoveResult {
	record := s.grid.BaseAt(cell)
	if record == nil {
		return RemoveResult{}
	}

	if record.HasTopper() {
		entity := s.grid.RemoveTopper(record)
		inst := s.detach(entity)
		inst.Layer.Host = 0
		log.Printf("[PlacementSystem] Removed topper %s from %v", inst.Definition.ID, record.Anchor)
		return RemoveResult{Removed: inst, Role: types.RoleTopper}
	}

	if len(record.Stack) > 0 {
		entity := s.grid.RemoveStackTop(record)
		inst := s.detach(entity)
		inst.Layer.Host = 0
		if base := s.instance(record.Base); base != nil {
			base.EnsureBaseState().StackLevel = len(record.Stack)
		}
		log.Printf("[PlacementSystem] Removed stack item %s from %v (level %d)", inst.Definition.ID, record.Anchor, len(record.Stack))
		return RemoveResult{Removed: inst, Role: types.RoleStackItem}
	}

	s.grid.RemoveBase(record)
	inst := s.detach(record.Base)
	freed := append([]types.Cell(nil), record.Cells...)
	log.Printf("[PlacementSystem] Removed base %s from %v, freed %d cell(s)", inst.Definition.ID, record.Anchor, len(freed))
	return RemoveResult{
		Removed:    inst,
		Role:       types.RoleBase,
		FreedCells: freed,
		FreedArea:  len(freed),
	}
}

// InsertKit 在套件层放置一个新套件
func (s *PlacementSystem) InsertKit(room RoomContext, def *config.CatalogDefinition, anchor types.Cell) KitResult {
	if def == nil || !def.IsKit() {
		return s.rejectKit(def, anchor, types.RejectInvalidRequest)
	}
	return s.insertKit(room, components.NewInstance(def, 0), anchor)
}

// RestoreKit 放置一个已有的套件实例（被拿起的套件或存档数据），保留其 InstanceID
func (s *PlacementSystem) RestoreKit(room RoomContext, inst *components.InstanceComponent, anchor types.Cell) KitResult {
	if inst == nil || inst.Definition == nil || !inst.Definition.IsKit() {
		return s.rejectKit(nil, anchor, types.RejectInvalidRequest)
	}
	candidate := inst.Clone()
	candidate.SetRotation(0)
	return s.insertKit(room, candidate, anchor)
}

func (s *PlacementSystem) insertKit(room RoomContext, inst *components.InstanceComponent, anchor types.Cell) KitResult {
	def := inst.Definition
	if _, ok := s.placed[inst.InstanceID]; ok {
		return s.rejectKit(def, anchor, types.RejectInvalidRequest)
	}

	cells := s.grid.CellsFor(anchor, inst.Footprint)
	if !s.grid.InBounds(cells) {
		return s.rejectKit(def, anchor, types.RejectOutOfBounds)
	}
	for _, c := range cells {
		if s.grid.KitAt(c) != nil || s.collider.IsBlocked(c, types.LayerKit) {
			return s.rejectKit(def, anchor, types.RejectOccupied)
		}
	}

	inst.Role = types.RoleGeneric
	inst.Anchor = anchor
	inst.Cells = cells
	inst.IsUnboxed = true

	entity := s.attach(inst)
	for _, c := range cells {
		s.grid.InsertKit(c, entity, anchor)
	}
	log.Printf("[PlacementSystem] Inserted kit %s (%s) at %v", def.ID, inst.InstanceID, anchor)

	reward, events, changes := s.gating.Resolve(room, cells)
	return KitResult{
		Committed:  true,
		InstanceID: inst.InstanceID,
		Entity:     entity,
		Cells:      append([]types.Cell(nil), cells...),
		Reward:     reward,
		Events:     events,
		Gating:     changes,
	}
}

func (s *PlacementSystem) rejectKit(def *config.CatalogDefinition, anchor types.Cell, reason types.RejectReason) KitResult {
	id := "<nil>"
	if def != nil {
		id = def.ID
	}
	log.Printf("[PlacementSystem] Rejected kit %s at %v: %s", id, anchor, reason)
	return KitResult{Reason: reason}
}

// RemoveKit 移除格子上的套件（整个套件的所有格子），并重新计算门控状态
// 移除套件只会让实例重新装箱，不会发放或回收奖励
func (s *PlacementSystem) RemoveKit(cell types.Cell) RemoveResult {
	record := s.grid.KitAt(cell)
	if record == nil {
		return RemoveResult{}
	}
	kit := s.instance(record.Kit)
	if kit == nil {
		return RemoveResult{}
	}

	freed := append([]types.Cell(nil), kit.Cells...)
	for _, c := range freed {
		if r := s.grid.KitAt(c); r != nil && r.Kit == record.Kit {
			s.grid.RemoveKit(c)
		}
	}
	s.detach(record.Kit)
	log.Printf("[PlacementSystem] Removed kit %s from %v", kit.Definition.ID, kit.Anchor)

	_, _, changes := s.gating.Resolve(nil, freed)
	return RemoveResult{
		Removed:    kit,
		Role:       types.RoleGeneric,
		FreedCells: freed,
		FreedArea:  len(freed),
		Gating:     changes,
	}
}

// IsCellOccupied 格子上是否有家具或套件
func (s *PlacementSystem) IsCellOccupied(cell types.Cell) bool {
	return s.grid.BaseAt(cell) != nil || s.grid.KitAt(cell) != nil
}

// InstanceAt 返回格子上最上层的实例：叠放物 → 堆叠顶部 → 底座 → 套件
func (s *PlacementSystem) InstanceAt(cell types.Cell) *components.InstanceComponent {
	if record := s.grid.BaseAt(cell); record != nil {
		if record.HasTopper() {
			return s.instance(record.Topper)
		}
		if top := record.TopOfStack(); top != 0 {
			return s.instance(top)
		}
		return s.instance(record.Base)
	}
	if kit := s.grid.KitAt(cell); kit != nil {
		return s.instance(kit.Kit)
	}
	return nil
}

// RecordAt 返回格子上的底座记录
func (s *PlacementSystem) RecordAt(cell types.Cell) *components.PlacementRecord {
	return s.grid.BaseAt(cell)
}

// IsUnboxed 查询已在场上的实例是否已拆箱，未知实例返回 false
func (s *PlacementSystem) IsUnboxed(id uuid.UUID) bool {
	inst, ok := s.Instance(id)
	return ok && inst.IsUnboxed
}

// Instance 按 InstanceID 查询已在场上的实例
func (s *PlacementSystem) Instance(id uuid.UUID) (*components.InstanceComponent, bool) {
	entity, ok := s.placed[id]
	if !ok {
		return nil, false
	}
	inst := s.instance(entity)
	return inst, inst != nil
}

// InstanceOf 按实体查询实例
func (s *PlacementSystem) InstanceOf(entity ecs.EntityID) *components.InstanceComponent {
	return s.instance(entity)
}

// PlacedCount 已在场上的实例数量（包括套件）
func (s *PlacementSystem) PlacedCount() int {
	return len(s.placed)
}

// attach 为实例创建实体
func (s *PlacementSystem) attach(inst *components.InstanceComponent) ecs.EntityID {
	entity := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entity, inst)
	s.placed[inst.InstanceID] = entity
	return entity
}

// detach 销毁实体并返回其实例数据
func (s *PlacementSystem) detach(entity ecs.EntityID) *components.InstanceComponent {
	inst := s.instance(entity)
	s.entityManager.DestroyEntity(entity)
	s.entityManager.RemoveMarkedEntities()
	if inst != nil {
		delete(s.placed, inst.InstanceID)
	}
	return inst
}

func (s *PlacementSystem) instance(id ecs.EntityID) *components.InstanceComponent {
	if id == 0 {
		return nil
	}
	inst, ok := ecs.GetComponent[*components.InstanceComponent](s.entityManager, id)
	if !ok {
		return nil
	}
	return inst
}
