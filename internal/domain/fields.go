package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Fields динамические поля анкеты (хранятся в JSONB)
type Fields map[string]interface{}

// Value реализует driver.Valuer
func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan реализует sql.Scanner
func (f *Fields) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*f = Fields{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("fields: unsupported scan type %T", src)
	}

	out := Fields{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("fields: %w", err)
	}
	*f = out
	return nil
}

// String возвращает строковое значение поля или пустую строку
func (f Fields) String(name string) string {
	v, ok := f[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Merge возвращает копию f, дополненную значениями other (other имеет приоритет)
func (f Fields) Merge(other Fields) Fields {
	out := make(Fields, len(f)+len(other))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
