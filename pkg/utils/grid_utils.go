// Package utils 提供房间网格与运行平台相关的通用工具函数，不依赖图形与输入库
package utils

import "github.com/decker502/roomdecor/pkg/types"

// 房间网格在编辑器屏幕上的布局参数
// 核心逻辑只使用格子坐标，这些常量仅供调用方（编辑器、调试工具）换算屏幕坐标
const (
	GridStartX = 40.0 // 网格起始X坐标
	GridStartY = 80.0 // 网格起始Y坐标
	CellWidth  = 64.0 // 每格宽度
	CellHeight = 64.0 // 每格高度
)

// RotateFootprint 将占地尺寸旋转指定的 90° 步数
//
// 每旋转一步，两个轴交换并对其中一个取反：(w, h) -> (h, -w)
// 旋转 4 步回到原值
//
// 参数:
//   - size: 未旋转的占地尺寸
//   - steps: 旋转步数（任意整数，内部归一到 0-3）
//
// 返回:
//   - types.Size: 有效占地（分量可能为负）
func RotateFootprint(size types.Size, steps int) types.Size {
	fp := size
	for i := 0; i < types.NormalizeRotation(steps); i++ {
		fp = types.Size{Width: fp.Height, Height: -fp.Width}
	}
	return fp
}

// UnrotateOffset 把旋转后占地内的偏移（相对锚点）换算回未旋转占地中的同一个格子
//
// RotateFootprint 每一步把偏移 (x, y) 映射为 (y, -x)，这里逆向执行 steps 步 (x, y) -> (-y, x)，
// 结果总是落在 [0, Width) × [0, Height) 内，与实例当前的旋转无关
func UnrotateOffset(offset types.Cell, steps int) types.Cell {
	for i := 0; i < types.NormalizeRotation(steps); i++ {
		offset = types.Cell{X: -offset.Y, Y: offset.X}
	}
	return offset
}

// CellsFor 计算以 anchor 为锚点、占地为 footprint 时覆盖的所有格子
//
// 分量为正时从锚点向右/向下延伸，为负时向左/向上延伸，锚点总是包含在内
// 结果按行优先顺序排列
func CellsFor(anchor types.Cell, footprint types.Size) []types.Cell {
	x0, x1 := axisRange(anchor.X, footprint.Width)
	y0, y1 := axisRange(anchor.Y, footprint.Height)

	cells := make([]types.Cell, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			cells = append(cells, types.Cell{X: x, Y: y})
		}
	}
	return cells
}

// axisRange 返回单个轴上覆盖的闭区间
func axisRange(start, extent int) (int, int) {
	switch {
	case extent > 0:
		return start, start + extent - 1
	case extent < 0:
		return start + extent + 1, start
	default:
		return start, start
	}
}

// ContainsCell 检查格子列表中是否包含指定格子
func ContainsCell(cells []types.Cell, cell types.Cell) bool {
	for _, c := range cells {
		if c == cell {
			return true
		}
	}
	return false
}

// IntersectCells 返回同时出现在 a 和 b 中的格子，保持 a 的顺序
func IntersectCells(a, b []types.Cell) []types.Cell {
	result := make([]types.Cell, 0, len(a))
	for _, c := range a {
		if ContainsCell(b, c) {
			result = append(result, c)
		}
	}
	return result
}

// MouseToGridCoords 将鼠标屏幕坐标转换为房间网格坐标
// 参数:
//   - mouseX, mouseY: 鼠标的屏幕坐标
//   - columns, rows: 房间网格尺寸
//
// 返回:
//   - types.Cell: 格子坐标
//   - isValid: 是否在有效网格范围内
func MouseToGridCoords(mouseX, mouseY, columns, rows int) (types.Cell, bool) {
	x := float64(mouseX)
	y := float64(mouseY)

	gridEndX := GridStartX + float64(columns)*CellWidth
	gridEndY := GridStartY + float64(rows)*CellHeight
	if x < GridStartX || x >= gridEndX || y < GridStartY || y >= gridEndY {
		return types.Cell{}, false
	}

	col := int((x - GridStartX) / CellWidth)
	row := int((y - GridStartY) / CellHeight)

	// 边界检查（防止浮点数计算误差导致的越界）
	if col >= columns {
		col = columns - 1
	}
	if row >= rows {
		row = rows - 1
	}

	return types.Cell{X: col, Y: row}, true
}

// GridToScreenCoords 返回格子左上角的屏幕坐标
func GridToScreenCoords(cell types.Cell) (x, y float64) {
	return GridStartX + float64(cell.X)*CellWidth, GridStartY + float64(cell.Y)*CellHeight
}
