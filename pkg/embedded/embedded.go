// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的目录和引擎配置。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/decker502/roomdecor/pkg/config"
)

// 嵌入的数据文件路径
const (
	CatalogPath      = "data/catalog.yaml"
	EngineConfigPath = "data/engine.yaml"
)

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化数据文件系统
// 必须在 main() 开始时、任何数据加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径格式并检查前缀
func normalize(path string) (string, error) {
	if !initialized {
		return "", fmt.Errorf("embedded package not initialized, call Init() first")
	}

	// embed.FS 使用正斜杠
	path = strings.TrimPrefix(filepath.ToSlash(path), "./")
	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入的数据文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入的数据文件
func ReadFile(path string) ([]byte, error) {
	path, err := normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配嵌入的数据文件
func Glob(pattern string) ([]string, error) {
	pattern, err := normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}

// LoadCatalog 加载嵌入的物品目录
//
// 返回：
//   - *config.Catalog: 已校验并解析引用的目录
//   - error: 读取、校验或引用解析失败时返回错误
func LoadCatalog() (*config.Catalog, error) {
	data, err := ReadFile(CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return config.ParseCatalog(data, CatalogPath)
}

// LoadEngineConfig 加载嵌入的引擎配置
// 配置文件不存在时返回默认配置
func LoadEngineConfig() (*config.EngineConfig, error) {
	if !Exists(EngineConfigPath) {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return config.DefaultEngineConfig(), nil
	}
	data, err := ReadFile(EngineConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded engine config: %w", err)
	}
	cfg, err := config.ParseEngineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EngineConfigPath, err)
	}
	return cfg, nil
}
