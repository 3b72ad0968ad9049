package sqlx

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONColumn 以 JSON 形式存储在数据库中的列
// Valid 为 false 时写入 NULL
type JSONColumn[T any] struct {
	Val   T
	Valid bool
}

func NewJSONColumn[T any](val T) JSONColumn[T] {
	return JSONColumn[T]{Val: val, Valid: true}
}

// Value 实现 driver.Valuer
func (j JSONColumn[T]) Value() (driver.Value, error) {
	if !j.Valid {
		return nil, nil
	}
	res, err := json.Marshal(j.Val)
	if err != nil {
		return nil, err
	}
	return string(res), nil
}

// Scan 实现 sql.Scanner
func (j *JSONColumn[T]) Scan(src any) error {
	var bs []byte
	switch val := src.(type) {
	case nil:
		var zero T
		j.Val, j.Valid = zero, false
		return nil
	case []byte:
		bs = val
	case string:
		bs = []byte(val)
	default:
		return fmt.Errorf("JSONColumn.Scan 不支持 src 类型 %T", src)
	}
	if err := json.Unmarshal(bs, &j.Val); err != nil {
		return err
	}
	j.Valid = true
	return nil
}
