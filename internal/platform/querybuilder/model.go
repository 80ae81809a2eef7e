package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels starts an insert of one row per model. Columns come from `db` struct tags
// of the first model; every model must share its type.
func InsertModels[T any](table string, models []T) (*InsertBuilder, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("insert %s: no rows", table)
	}

	b := InsertInto(table)
	for i, model := range models {
		cols, vals, err := columnsAndValues(model)
		if err != nil {
			return nil, fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b, nil
}

// Columns lists the db-tagged columns of model, in field order.
func Columns(model any) ([]string, error) {
	cols, _, err := columnsAndValues(model)
	return cols, err
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
