// Package models - model proposal và cây nội dung (Content) thuộc domain proposal.
package models

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentKind phân loại node trong cây nội dung
type ContentKind int

const (
	KindScalar ContentKind = iota // Giá trị lá: string, float64 hoặc bool
	KindList                      // Danh sách con có thứ tự
	KindMap                       // Các section đặt tên theo key
)

// Content là cây nội dung đệ quy của proposal. Một node là đúng một trong ba
// dạng: scalar (string/float64/bool), list hoặc map. Không có dạng thứ tư,
// mọi chỗ xử lý đều switch đủ ba nhánh.
type Content struct {
	kind   ContentKind
	scalar interface{}
	list   []Content
	fields map[string]Content
}

// NewString tạo node scalar chuỗi
func NewString(v string) Content {
	return Content{kind: KindScalar, scalar: v}
}

// NewNumber tạo node scalar số
func NewNumber(v float64) Content {
	return Content{kind: KindScalar, scalar: v}
}

// NewBool tạo node scalar boolean
func NewBool(v bool) Content {
	return Content{kind: KindScalar, scalar: v}
}

// NewList tạo node danh sách
func NewList(items ...Content) Content {
	if items == nil {
		items = []Content{}
	}
	return Content{kind: KindList, list: items}
}

// NewMap tạo node map từ các cặp key/value
func NewMap(fields map[string]Content) Content {
	if fields == nil {
		fields = map[string]Content{}
	}
	return Content{kind: KindMap, fields: fields}
}

// Kind trả về dạng của node
func (c Content) Kind() ContentKind {
	return c.kind
}

// Scalar trả về giá trị lá (string, float64 hoặc bool), ok=false nếu không phải scalar
func (c Content) Scalar() (interface{}, bool) {
	if c.kind != KindScalar {
		return nil, false
	}
	return c.scalar, true
}

// StringValue trả về giá trị chuỗi của node scalar, ok=false nếu không phải chuỗi
func (c Content) StringValue() (string, bool) {
	if c.kind != KindScalar {
		return "", false
	}
	s, ok := c.scalar.(string)
	return s, ok
}

// List trả về các phần tử con, ok=false nếu không phải list
func (c Content) List() ([]Content, bool) {
	if c.kind != KindList {
		return nil, false
	}
	return c.list, true
}

// Fields trả về các section của node map, ok=false nếu không phải map
func (c Content) Fields() (map[string]Content, bool) {
	if c.kind != KindMap {
		return nil, false
	}
	return c.fields, true
}

// Field lấy một section theo key của node map
func (c Content) Field(key string) (Content, bool) {
	if c.kind != KindMap {
		return Content{}, false
	}
	v, ok := c.fields[key]
	return v, ok
}

// SetField gán một section trên node map (không làm gì nếu node không phải map)
func (c *Content) SetField(key string, value Content) {
	if c.kind != KindMap {
		return
	}
	if c.fields == nil {
		c.fields = map[string]Content{}
	}
	c.fields[key] = value
}

// SortedKeys trả về các key của node map theo thứ tự ổn định
func (c Content) SortedKeys() []string {
	if c.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(c.fields))
	for k := range c.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty báo nội dung có rỗng không: chuỗi rỗng, list không phần tử
// hoặc map không section. Số và boolean không bao giờ rỗng.
func (c Content) IsEmpty() bool {
	switch c.kind {
	case KindScalar:
		if s, ok := c.scalar.(string); ok {
			return s == ""
		}
		return c.scalar == nil
	case KindList:
		return len(c.list) == 0
	case KindMap:
		return len(c.fields) == 0
	}
	return true
}

// DeepCopy sao chép toàn bộ cây, không chia sẻ bất kỳ node nào với bản gốc
func (c Content) DeepCopy() Content {
	switch c.kind {
	case KindScalar:
		return Content{kind: KindScalar, scalar: c.scalar}
	case KindList:
		items := make([]Content, len(c.list))
		for i, item := range c.list {
			items[i] = item.DeepCopy()
		}
		return Content{kind: KindList, list: items}
	case KindMap:
		fields := make(map[string]Content, len(c.fields))
		for k, v := range c.fields {
			fields[k] = v.DeepCopy()
		}
		return Content{kind: KindMap, fields: fields}
	}
	return Content{kind: KindMap, fields: map[string]Content{}}
}

// toNative chuyển cây về giá trị Go thuần để marshal
func (c Content) toNative() interface{} {
	switch c.kind {
	case KindScalar:
		return c.scalar
	case KindList:
		items := make([]interface{}, len(c.list))
		for i, item := range c.list {
			items[i] = item.toNative()
		}
		return items
	case KindMap:
		fields := make(map[string]interface{}, len(c.fields))
		for k, v := range c.fields {
			fields[k] = v.toNative()
		}
		return fields
	}
	return map[string]interface{}{}
}

// FromNative dựng cây nội dung từ giá trị Go thuần (kết quả decode JSON/BSON).
// Số nguyên được quy về float64, nil được quy về map rỗng.
func FromNative(v interface{}) (Content, error) {
	switch value := v.(type) {
	case nil:
		return NewMap(nil), nil
	case string:
		return NewString(value), nil
	case bool:
		return NewBool(value), nil
	case float64:
		return NewNumber(value), nil
	case float32:
		return NewNumber(float64(value)), nil
	case int:
		return NewNumber(float64(value)), nil
	case int32:
		return NewNumber(float64(value)), nil
	case int64:
		return NewNumber(float64(value)), nil
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return Content{}, fmt.Errorf("số không hợp lệ trong cây nội dung: %w", err)
		}
		return NewNumber(f), nil
	case []interface{}:
		items := make([]Content, len(value))
		for i, item := range value {
			child, err := FromNative(item)
			if err != nil {
				return Content{}, err
			}
			items[i] = child
		}
		return NewList(items...), nil
	case primitive.A:
		return FromNative([]interface{}(value))
	case map[string]interface{}:
		fields := make(map[string]Content, len(value))
		for k, item := range value {
			child, err := FromNative(item)
			if err != nil {
				return Content{}, err
			}
			fields[k] = child
		}
		return NewMap(fields), nil
	case bson.M:
		return FromNative(map[string]interface{}(value))
	case bson.D:
		fields := make(map[string]Content, len(value))
		for _, elem := range value {
			child, err := FromNative(elem.Value)
			if err != nil {
				return Content{}, err
			}
			fields[elem.Key] = child
		}
		return NewMap(fields), nil
	}
	return Content{}, fmt.Errorf("kiểu %T không được phép trong cây nội dung", v)
}

// MarshalJSON serialize cây theo dạng JSON tự nhiên (scalar, array, object)
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toNative())
}

// UnmarshalJSON dựng lại cây từ JSON bất kỳ
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := FromNative(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalBSONValue serialize cây theo dạng BSON tự nhiên để lưu MongoDB
func (c Content) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(c.toNative())
}

// UnmarshalBSONValue dựng lại cây từ giá trị BSON đọc về từ MongoDB
func (c *Content) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	var native interface{}
	if err := raw.Unmarshal(&native); err != nil {
		return err
	}
	parsed, err := FromNative(native)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
