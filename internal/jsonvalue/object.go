package jsonvalue

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a JSON object that keeps its members in insertion order.
// A nil Object encodes as null; an empty non-nil Object encodes as {}.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Set stores v under key, replacing an existing member in place or appending a new one.
func (o *Object) Set(key string, v Value) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = v
			return
		}
	}
	*o = append(*o, Member{Key: key, Value: v})
}

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// MarshalJSON implements json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	if err := o.encodeMembers(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o Object) encodeMembers(buf *bytes.Buffer) error {
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := m.Value.encode(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

// UnmarshalJSON implements json.Unmarshaler. JSON null yields a nil Object.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Parse(data)
	if err != nil {
		return err
	}
	switch v.kind {
	case KindNull:
		*o = nil
	case KindObject:
		*o = v.obj
	default:
		return fmt.Errorf("jsonvalue: expected object, got %s", v.kind)
	}
	return nil
}

// Value implements driver.Valuer.
func (o Object) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	b, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (o *Object) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return o.UnmarshalJSON(s)
	case string:
		return o.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("jsonvalue: cannot scan %T into Object", src)
	}
}

// GormDataType implements schema.GormDataTypeInterface.
func (Object) GormDataType() string { return "json" }

// GormDBDataType picks the column type per dialect.
func (Object) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return columnType(db.Dialector.Name())
}

// Value implements driver.Valuer. Null is stored as SQL NULL.
func (v Value) Value() (driver.Value, error) {
	if v.kind == KindNull {
		return nil, nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (v *Value) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*v = Null()
		return nil
	case []byte:
		return v.UnmarshalJSON(s)
	case string:
		return v.UnmarshalJSON([]byte(s))
	default:
		return fmt.Errorf("jsonvalue: cannot scan %T into Value", src)
	}
}

// GormDataType implements schema.GormDataTypeInterface.
func (Value) GormDataType() string { return "json" }

// GormDBDataType picks the column type per dialect.
func (Value) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	return columnType(db.Dialector.Name())
}

// columnType keeps documents byte-exact. MySQL JSON sorts object keys and a
// sqlite column declared JSON has numeric affinity, so both get text columns.
// Postgres JSON (not JSONB) keeps the input text.
func columnType(dialect string) string {
	switch dialect {
	case "sqlite":
		return "TEXT"
	case "mysql":
		return "LONGTEXT"
	case "sqlserver":
		return "NVARCHAR(MAX)"
	default:
		return "JSON"
	}
}
