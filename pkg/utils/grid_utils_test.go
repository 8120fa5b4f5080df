package utils

import (
	"testing"

	"github.com/decker502/roomdecor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRotateFootprint 测试占地旋转
func TestRotateFootprint(t *testing.T) {
	tests := []struct {
		name  string
		size  types.Size
		steps int
		want  types.Size
	}{
		{name: "不旋转", size: types.Size{Width: 2, Height: 1}, steps: 0, want: types.Size{Width: 2, Height: 1}},
		{name: "旋转一步", size: types.Size{Width: 2, Height: 1}, steps: 1, want: types.Size{Width: 1, Height: -2}},
		{name: "旋转两步", size: types.Size{Width: 2, Height: 1}, steps: 2, want: types.Size{Width: -2, Height: -1}},
		{name: "旋转三步", size: types.Size{Width: 2, Height: 1}, steps: 3, want: types.Size{Width: -1, Height: 2}},
		{name: "负步数等价于反向旋转", size: types.Size{Width: 2, Height: 1}, steps: -1, want: types.Size{Width: -1, Height: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RotateFootprint(tt.size, tt.steps))
		})
	}
}

// TestRotateFootprintRoundTrip 旋转 4 次一步应回到原值
func TestRotateFootprintRoundTrip(t *testing.T) {
	for w := 1; w <= 4; w++ {
		for h := 1; h <= 4; h++ {
			original := types.Size{Width: w, Height: h}
			fp := original
			for i := 0; i < 4; i++ {
				fp = RotateFootprint(fp, 1)
				assert.Equal(t, original.Area(), fp.Area(), "rotation must preserve area")
			}
			assert.Equal(t, original, fp)
		}
	}
}

// TestCellsFor 测试占地格子计算
func TestCellsFor(t *testing.T) {
	anchor := types.Cell{X: 3, Y: 3}

	cells := CellsFor(anchor, types.Size{Width: 2, Height: 2})
	assert.Equal(t, []types.Cell{{X: 3, Y: 3}, {X: 4, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 4}}, cells)

	// 负方向延伸时锚点仍然包含在内
	cells = CellsFor(anchor, types.Size{Width: 1, Height: -2})
	assert.Equal(t, []types.Cell{{X: 3, Y: 2}, {X: 3, Y: 3}}, cells)

	cells = CellsFor(anchor, types.Size{Width: -2, Height: -1})
	assert.Equal(t, []types.Cell{{X: 2, Y: 3}, {X: 3, Y: 3}}, cells)
}

// TestCellsForRotationKeepsArea 任意旋转下覆盖的格子数等于面积
func TestCellsForRotationKeepsArea(t *testing.T) {
	size := types.Size{Width: 3, Height: 2}
	for step := 0; step < 4; step++ {
		fp := RotateFootprint(size, step)
		cells := CellsFor(types.Cell{X: 5, Y: 5}, fp)
		require.Len(t, cells, 6)
		assert.True(t, ContainsCell(cells, types.Cell{X: 5, Y: 5}), "anchor must be covered at step %d", step)
	}
}

// TestUnrotateOffset 任意旋转下，占地内的所有格子都还原到未旋转占地，且一一对应
func TestUnrotateOffset(t *testing.T) {
	size := types.Size{Width: 3, Height: 2}
	anchor := types.Cell{X: 4, Y: 4}
	unrotated := CellsFor(types.Cell{}, size)

	for step := 0; step < 4; step++ {
		seen := make(map[types.Cell]bool)
		for _, c := range CellsFor(anchor, RotateFootprint(size, step)) {
			offset := UnrotateOffset(c.Sub(anchor), step)
			assert.True(t, ContainsCell(unrotated, offset), "step %d: %v outside unrotated footprint", step, offset)
			assert.False(t, seen[offset], "step %d: %v mapped twice", step, offset)
			seen[offset] = true
		}
		assert.Len(t, seen, size.Area())
	}

	// 锚点总是还原为原点
	assert.Equal(t, types.Cell{}, UnrotateOffset(types.Cell{}, 3))
}

// TestIntersectCells 测试格子交集
func TestIntersectCells(t *testing.T) {
	a := []types.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	b := []types.Cell{{X: 2, Y: 0}, {X: 1, Y: 0}, {X: 9, Y: 9}}
	assert.Equal(t, []types.Cell{{X: 1, Y: 0}, {X: 2, Y: 0}}, IntersectCells(a, b))
	assert.Empty(t, IntersectCells(a, nil))
}

// TestMouseToGridCoords 测试鼠标坐标到网格坐标的转换
func TestMouseToGridCoords(t *testing.T) {
	tests := []struct {
		name      string
		mouseX    int
		mouseY    int
		wantCell  types.Cell
		wantValid bool
	}{
		{name: "左上角第一个格子", mouseX: 40, mouseY: 80, wantCell: types.Cell{X: 0, Y: 0}, wantValid: true},
		{name: "中间格子", mouseX: 40 + 3*64 + 32, mouseY: 80 + 2*64 + 10, wantCell: types.Cell{X: 3, Y: 2}, wantValid: true},
		{name: "网格左侧之外", mouseX: 39, mouseY: 100, wantValid: false},
		{name: "网格下方之外", mouseX: 100, mouseY: 80 + 6*64, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, ok := MouseToGridCoords(tt.mouseX, tt.mouseY, 8, 6)
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.Equal(t, tt.wantCell, cell)
			}
		})
	}
}

// TestGridToScreenCoords 格子左上角坐标应能换算回同一个格子
func TestGridToScreenCoords(t *testing.T) {
	cell := types.Cell{X: 4, Y: 1}
	x, y := GridToScreenCoords(cell)
	back, ok := MouseToGridCoords(int(x), int(y), 8, 6)
	require.True(t, ok)
	assert.Equal(t, cell, back)
}
