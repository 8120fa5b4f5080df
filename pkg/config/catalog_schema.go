package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// catalogSchemaURL 编译模式时使用的资源名
const catalogSchemaURL = "catalog.schema.json"

// catalogSchemaSource 目录文件的 JSON Schema
// 在解码为 Go 结构体之前校验原始文档，拼写错误的字段会被拒绝而不是被静默忽略
const catalogSchemaSource = `{
  "type": "object",
  "required": ["definitions"],
  "additionalProperties": false,
  "properties": {
    "definitions": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/$defs/definition"}
    }
  },
  "$defs": {
    "id": {"type": "string", "pattern": "^[a-z][a-z0-9_]*$"},
    "definition": {
      "type": "object",
      "required": ["id", "size"],
      "additionalProperties": false,
      "properties": {
        "id": {"$ref": "#/$defs/id"},
        "name": {"type": "string"},
        "size": {
          "type": "object",
          "required": ["width", "height"],
          "additionalProperties": false,
          "properties": {
            "width": {"type": "integer", "minimum": 1},
            "height": {"type": "integer", "minimum": 1}
          }
        },
        "price": {"type": "integer", "minimum": 0},
        "layer": {"enum": ["furniture", "kit"]},
        "furnitureTag": {"type": "string"},
        "tagMatchBonusPoints": {"type": "integer", "minimum": 0},
        "compatibleWith": {"type": "array", "items": {"$ref": "#/$defs/id"}, "uniqueItems": true},
        "wallMounted": {"type": "boolean"},
        "stackable": {"type": "boolean"},
        "stackReceiver": {"type": "boolean"},
        "maxStackLevel": {"type": "integer", "minimum": 0},
        "requiredBase": {"$ref": "#/$defs/id"},
        "hasComboSprite": {"type": "boolean"},
        "comboTrigger": {"$ref": "#/$defs/id"},
        "comboValue": {"type": "integer", "minimum": 0}
      }
    }
  }
}`

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

// compiledCatalogSchema 返回编译后的目录模式（只编译一次）
func compiledCatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		catalogSchema, catalogSchemaErr = jsonschema.CompileString(catalogSchemaURL, catalogSchemaSource)
	})
	return catalogSchema, catalogSchemaErr
}

// validateCatalogDocument 用 JSON Schema 校验目录 YAML 文档
//
// YAML 先解码为通用值，再转成 JSON 并以 json.Number 解码，
// 保证整数字段按 JSON 语义校验
func validateCatalogDocument(data []byte) error {
	schema, err := compiledCatalogSchema()
	if err != nil {
		return fmt.Errorf("failed to compile catalog schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode converted JSON: %w", err)
	}

	return schema.Validate(doc)
}
