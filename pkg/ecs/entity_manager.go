package ecs

import (
	"reflect"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，房间网格中用 0 表示“没有实体”
type EntityID uint64

// componentSet 单个实体的组件：组件类型 -> 组件实例
type componentSet map[reflect.Type]any

// EntityManager 管理所有实体和组件
//
// 房间中每个已放置的实例都是一个实体，房间网格本身也是一个实体。
// EntityManager 不是并发安全的，由放置系统独占使用
type EntityManager struct {
	lastID   EntityID
	entities map[EntityID]componentSet
	pending  mapset.Set[EntityID] // 已标记、等待清理的实体
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		entities: make(map[EntityID]componentSet),
		pending:  mapset.New[EntityID](),
	}
}

// CreateEntity 创建新实体并返回唯一ID（从 1 开始递增，不复用）
func (em *EntityManager) CreateEntity() EntityID {
	em.lastID++
	em.entities[em.lastID] = make(componentSet)
	return em.lastID
}

// Exists 检查实体是否存在（已标记删除但未清理的实体仍视为存在）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.entities[id]
	return ok
}

// DestroyEntity 标记实体待删除(不立即删除)
// 调用方在一次操作结束时调用 RemoveMarkedEntities 统一清理
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.pending.Put(id)
}

// AddComponent 为实体添加组件，同类型组件会被替换
// 实体不存在时忽略
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.put(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) put(id EntityID, componentType reflect.Type, component any) {
	if set, ok := em.entities[id]; ok {
		set[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	delete(em.entities[id], componentType)
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// RemoveMarkedEntities 清理所有标记删除的实体
//
// 返回:
//   - int: 实际清理的实体数量
func (em *EntityManager) RemoveMarkedEntities() int {
	removed := 0
	em.pending.Each(func(id EntityID) {
		if _, ok := em.entities[id]; ok {
			delete(em.entities, id)
			removed++
		}
	})
	em.pending = mapset.New[EntityID]()
	return removed
}

// EntityCount 返回当前实体数量（包括待删除的实体）
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// GetEntitiesWith 查询拥有全部指定组件类型的实体
//
// 返回: 按ID升序排列的实体列表（遍历顺序确定）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)
	for id, set := range em.entities {
		if set.hasAll(componentTypes) {
			result = append(result, id)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (s componentSet) hasAll(types []reflect.Type) bool {
	for _, t := range types {
		if _, ok := s[t]; !ok {
			return false
		}
	}
	return true
}
