package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testFootprintComponent struct {
	Width, Height int
}

type testLatchComponent struct {
	FirstTimePlaced bool
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始（0 保留给“无实体”）
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if !em.Exists(id1) || !em.Exists(id2) {
		t.Error("Created entities should exist")
	}
	if em.Exists(0) {
		t.Error("Entity 0 must never exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testFootprintComponent{Width: 2, Height: 3})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testFootprintComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testFootprintComponent)
	if retrieved.Width != 2 || retrieved.Height != 3 {
		t.Errorf("Component data mismatch, expected (2, 3), got (%d, %d)", retrieved.Width, retrieved.Height)
	}
}

// TestGenericComponentAccess 泛型访问与反射访问应返回同一个组件
func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	original := &testLatchComponent{}
	AddComponent(em, id, original)

	got, ok := GetComponent[*testLatchComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if got != original {
		t.Error("Generic GetComponent should return the stored pointer")
	}

	// 修改通过指针可见
	got.FirstTimePlaced = true
	comp, _ := em.GetComponent(id, reflect.TypeOf(&testLatchComponent{}))
	if !comp.(*testLatchComponent).FirstTimePlaced {
		t.Error("Mutation through generic pointer should be visible")
	}

	if !HasComponent[*testLatchComponent](em, id) {
		t.Error("HasComponent should report the component")
	}
	if _, ok := GetComponent[*testFootprintComponent](em, id); ok {
		t.Error("Missing component type should not be found")
	}
}

func TestHasComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加组件前应该返回false
	if em.HasComponent(id, reflect.TypeOf(&testFootprintComponent{})) {
		t.Error("Should not have component before adding")
	}

	em.AddComponent(id, &testFootprintComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testFootprintComponent{})) {
		t.Error("Should have component after adding")
	}

	em.RemoveComponent(id, reflect.TypeOf(&testFootprintComponent{}))
	if em.HasComponent(id, reflect.TypeOf(&testFootprintComponent{})) {
		t.Error("Should not have component after removing")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testFootprintComponent{})

	// 标记删除（重复标记只记录一次）
	em.DestroyEntity(id)
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	if removed := em.RemoveMarkedEntities(); removed != 1 {
		t.Errorf("Expected 1 removed entity, got %d", removed)
	}
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.EntityCount() != 0 {
		t.Errorf("Expected 0 entities, got %d", em.EntityCount())
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testFootprintComponent{})
	em.AddComponent(id1, &testLatchComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testFootprintComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testLatchComponent{})

	both := GetEntitiesWith2[*testFootprintComponent, *testLatchComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected only id1 with both components, got %v", both)
	}

	// 结果按ID升序
	footprints := GetEntitiesWith1[*testFootprintComponent](em)
	if len(footprints) != 2 || footprints[0] != id1 || footprints[1] != id2 {
		t.Errorf("Expected [id1 id2] in ascending order, got %v", footprints)
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testFootprintComponent{})
	em.AddComponent(id2, &testFootprintComponent{})
	em.AddComponent(id3, &testFootprintComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	remaining := GetEntitiesWith1[*testFootprintComponent](em)
	if len(remaining) != 1 || remaining[0] != id2 {
		t.Errorf("Expected only id2 to remain, got %v", remaining)
	}
}
