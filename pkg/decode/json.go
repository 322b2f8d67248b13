package decode

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/udu-dev/udu/pkg/value"
)

var errTrailing = errors.New("unexpected data after the document")

// JSON decodes one JSON document. Integers that fit int64 stay integers;
// other numbers become float64.
func JSON(data []byte) (any, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	v := readJSON(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, iter.Error
	}
	if iter.Error == nil && iter.WhatIsNext() != jsoniter.InvalidValue {
		return nil, errTrailing
	}
	return v, nil
}

func readJSON(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		n := iter.ReadNumber()
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, err := n.Float64()
		if err != nil {
			iter.ReportError("decode number", err.Error())
			return nil
		}
		return f
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.ArrayValue:
		items := []any{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			items = append(items, readJSON(it))
			return it.Error == nil
		})
		return items
	case jsoniter.ObjectValue:
		obj := value.NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readJSON(it))
			return it.Error == nil
		})
		return obj
	default:
		iter.ReportError("decode", "unexpected token")
		return nil
	}
}
