package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// modelColumn is one `db` tagged field of a row model. Fields tagged
// `db:"name,readonly"` are written on insert and left alone on conflict.
type modelColumn struct {
	name     string
	value    any
	readonly bool
}

// InsertModel builds an INSERT for the exported, `db` tagged fields of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return insertColumns(table, cols, suffix)
}

// UpsertModel builds an INSERT ... ON CONFLICT (key) DO UPDATE that copies
// every non-key, non-readonly column from the excluded row. extra entries are
// appended verbatim to the SET list, e.g. "updated_at = NOW()".
func UpsertModel(table string, model any, key []string, extra ...string) (string, []any, error) {
	if len(key) == 0 {
		return "", nil, fmt.Errorf("upsert requires conflict columns")
	}
	cols, err := modelColumns(model)
	if err != nil {
		return "", nil, err
	}

	isKey := make(map[string]struct{}, len(key))
	for _, k := range key {
		isKey[k] = struct{}{}
	}
	sets := make([]string, 0, len(cols)+len(extra))
	for _, col := range cols {
		if _, ok := isKey[col.name]; ok || col.readonly {
			continue
		}
		sets = append(sets, col.name+" = EXCLUDED."+col.name)
	}
	sets = append(sets, extra...)

	suffix := "ON CONFLICT (" + strings.Join(key, ", ") + ")"
	if len(sets) == 0 {
		suffix += " DO NOTHING"
	} else {
		suffix += " DO UPDATE SET " + strings.Join(sets, ", ")
	}
	return insertColumns(table, cols, suffix)
}

func insertColumns(table string, cols []modelColumn, suffix string) (string, []any, error) {
	names := make([]string, 0, len(cols))
	values := make([]any, 0, len(cols))
	for _, col := range cols {
		names = append(names, col.name)
		values = append(values, col.value)
	}
	return InsertInto(table).
		Columns(names...).
		Values(values...).
		Suffix(suffix).
		ToSQL()
}

func modelColumns(model any) ([]modelColumn, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	out := make([]modelColumn, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		out = append(out, modelColumn{
			name:     name,
			value:    value.Field(i).Interface(),
			readonly: strings.TrimSpace(opts) == "readonly",
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return out, nil
}
