// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "strings"

// FurnitureTag 定义家具所属的房间类别
// 房间的 roomTag 也使用同一个枚举
type FurnitureTag int

const (
	// TagNone 无类别（不参与房间类别奖励）
	TagNone FurnitureTag = iota
	// TagLivingRoom 客厅
	TagLivingRoom
	// TagBedroom 卧室
	TagBedroom
	// TagKitchen 厨房
	TagKitchen
	// TagBathroom 浴室
	TagBathroom
	// TagOffice 书房
	TagOffice
	// TagKidsRoom 儿童房
	TagKidsRoom
	// TagGarden 花园
	TagGarden
)

var furnitureTagNames = map[FurnitureTag]string{
	TagNone:       "none",
	TagLivingRoom: "livingRoom",
	TagBedroom:    "bedroom",
	TagKitchen:    "kitchen",
	TagBathroom:   "bathroom",
	TagOffice:     "office",
	TagKidsRoom:   "kidsRoom",
	TagGarden:     "garden",
}

// String 返回类别的配置文件名称
func (t FurnitureTag) String() string {
	if name, ok := furnitureTagNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseFurnitureTag 将配置文件中的名称解析为 FurnitureTag
// 空字符串视为 TagNone，名称比较不区分大小写
//
// 返回：
//   - FurnitureTag: 解析结果
//   - bool: 名称是否有效
func ParseFurnitureTag(name string) (FurnitureTag, bool) {
	if name == "" {
		return TagNone, true
	}
	for tag, tagName := range furnitureTagNames {
		if strings.EqualFold(tagName, name) {
			return tag, true
		}
	}
	return TagNone, false
}
