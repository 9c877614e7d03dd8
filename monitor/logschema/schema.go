package logschema

import (
	"fmt"
	"sort"
	"strings"
)

// Schema 定义每个日志事件所需的关键字段，便于集中校验。
type Schema struct {
	Event    string
	Required []string
}

var schemas = map[string]Schema{
	"order_built": {
		Event:    "order_built",
		Required: []string{"ticket", "order_type", "action"},
	},
	"order_persisted": {
		Event:    "order_persisted",
		Required: []string{"ticket"},
	},
	"ticket_built": {
		Event:    "ticket_built",
		Required: []string{"ticket", "preset", "orders"},
	},
	"ticket_failed": {
		Event:    "ticket_failed",
		Required: []string{"ticket", "preset", "error"},
	},
	"tickets_loaded": {
		Event:    "tickets_loaded",
		Required: []string{"path", "count"},
	},
}

// Known 返回所有事件名，便于外部生成文档。
func Known() []string {
	names := make([]string, 0, len(schemas))
	for k := range schemas {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Validate 检查日志字段是否包含 schema 中要求的 key。未登记的事件不做校验。
func Validate(event string, fields map[string]interface{}) error {
	s, ok := schemas[event]
	if !ok {
		return nil
	}
	var missing []string
	for _, key := range s.Required {
		if _, exists := fields[key]; !exists {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ","))
	}
	return nil
}
