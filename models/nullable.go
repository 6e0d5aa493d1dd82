package models

import (
	"bytes"
	"encoding/json"
)

// Nullable 用于部分更新里可以置空的字段，区分三种情况：
// 字段缺失（Set=false）、显式 null（Set=true, Value=nil）、有值。
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// NullableOf 返回有值的 Nullable
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null 返回显式置空的 Nullable
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// apply 字段出现时覆盖 dst，null 会把 dst 置为 nil
func (n Nullable[T]) apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

// column 返回写入数据库的值，null 对应 SQL NULL
func (n Nullable[T]) column() interface{} {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
