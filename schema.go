package titledex

import (
	"fmt"
	"reflect"
)

const tagKey = "titledex"

// schemaMeta holds parsed struct tag metadata, cached per Index.
type schemaMeta struct {
	typ      reflect.Type
	titleIdx int // struct field carrying the title text
}

// parseSchema reflects on T and extracts titledex struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("titledex: type parameter must be a struct, got interface")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("titledex: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, titleIdx: -1}
	for i := range t.NumField() {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		switch tag {
		case "", "-":
			continue
		case "title":
			if meta.titleIdx != -1 {
				return nil, fmt.Errorf("titledex: duplicate title tag on field %s", f.Name)
			}
			if f.Type.Kind() != reflect.String {
				return nil, fmt.Errorf("titledex: title field %s must be a string", f.Name)
			}
			meta.titleIdx = i
		default:
			return nil, fmt.Errorf("titledex: unknown tag value %q on field %s", tag, f.Name)
		}
	}

	if meta.titleIdx == -1 {
		return nil, fmt.Errorf("titledex: no field with `titledex:\"title\"` tag in %s", t)
	}
	return meta, nil
}

// titleText extracts the title text from a typed item.
func (m *schemaMeta) titleText(item any) string {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v.Field(m.titleIdx).String()
}
