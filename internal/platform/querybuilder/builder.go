package querybuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Condition renders one predicate of a WHERE clause with $n placeholders.
type Condition interface {
	appendSQL(w *writer)
}

type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies expr, binding one argument per '?'.
func (w *writer) expr(expr string, args []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func Lte(column string, value any) Condition {
	return compareCondition{column: column, op: "<=", value: value}
}

func (c compareCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

type anyCondition struct {
	column string
	values any
}

// AnyString matches column against a text[] parameter. An empty list matches nothing.
func AnyString(column string, values []string) Condition {
	if len(values) == 0 {
		return Expr("1=0")
	}
	return anyCondition{column: column, values: pq.StringArray(values)}
}

// AnyInt matches column against a bigint[] parameter. An empty list matches nothing.
func AnyInt(column string, values []int) Condition {
	if len(values) == 0 {
		return Expr("1=0")
	}
	out := make(pq.Int64Array, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return anyCondition{column: column, values: out}
}

func (c anyCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" = ANY(")
	w.bind(c.values)
	w.buf.WriteString(")")
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IS NULL")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw predicate; each '?' binds the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) appendSQL(w *writer) {
	w.expr(c.expr, c.args)
}

func appendWhere(w *writer, conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		c.appendSQL(w)
	}
}

type SelectBuilder struct {
	columns   []string
	table     string
	where     []Condition
	orderBy   []string
	limit     int
	forUpdate bool
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// ForUpdate locks the selected rows until the surrounding transaction ends.
func (b *SelectBuilder) ForUpdate() *SelectBuilder {
	b.forUpdate = true
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	w := &writer{}
	w.buf.WriteString("SELECT ")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(" FROM ")
	w.buf.WriteString(b.table)
	appendWhere(w, b.where)
	if len(b.orderBy) > 0 {
		w.buf.WriteString(" ORDER BY ")
		w.buf.WriteString(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.buf.WriteString(" LIMIT ")
		w.buf.WriteString(strconv.Itoa(b.limit))
	}
	if b.forUpdate {
		w.buf.WriteString(" FOR UPDATE")
	}
	return w.buf.String(), w.args, nil
}

type InsertBuilder struct {
	table          string
	columns        []string
	rows           [][]any
	conflictTarget []string
	conflictUpdate []string
	conflictWhere  string
	doNothing      bool
	returning      []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflict sets the conflict target for DoUpdate or DoNothing.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflictTarget = append([]string(nil), columns...)
	return b
}

// DoUpdate overwrites the listed columns from EXCLUDED on conflict. where, when set, is
// appended verbatim and limits which existing rows are overwritten.
func (b *InsertBuilder) DoUpdate(where string, columns ...string) *InsertBuilder {
	b.conflictUpdate = append([]string(nil), columns...)
	b.conflictWhere = strings.TrimSpace(where)
	return b
}

func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.doNothing = true
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}
	if len(b.conflictUpdate) > 0 && len(b.conflictTarget) == 0 {
		return "", nil, fmt.Errorf("conflict target is required for do update")
	}

	w := &writer{args: make([]any, 0, len(b.rows)*len(b.columns))}
	w.buf.WriteString("INSERT INTO ")
	w.buf.WriteString(b.table)
	w.buf.WriteString(" (")
	w.buf.WriteString(strings.Join(b.columns, ", "))
	w.buf.WriteString(") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.buf.WriteString(", ")
		}
		w.buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.buf.WriteString(", ")
			}
			w.bind(value)
		}
		w.buf.WriteString(")")
	}

	switch {
	case b.doNothing:
		w.buf.WriteString(" ON CONFLICT")
		if len(b.conflictTarget) > 0 {
			w.buf.WriteString(" (" + strings.Join(b.conflictTarget, ", ") + ")")
		}
		w.buf.WriteString(" DO NOTHING")
	case len(b.conflictUpdate) > 0:
		w.buf.WriteString(" ON CONFLICT (" + strings.Join(b.conflictTarget, ", ") + ") DO UPDATE SET ")
		for i, col := range b.conflictUpdate {
			if i > 0 {
				w.buf.WriteString(", ")
			}
			w.buf.WriteString(col + " = EXCLUDED." + col)
		}
		if b.conflictWhere != "" {
			w.buf.WriteString(" WHERE " + b.conflictWhere)
		}
	}
	if len(b.returning) > 0 {
		w.buf.WriteString(" RETURNING " + strings.Join(b.returning, ", "))
	}
	return w.buf.String(), w.args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete without where is not allowed")
	}
	w := &writer{}
	w.buf.WriteString("DELETE FROM ")
	w.buf.WriteString(b.table)
	appendWhere(w, b.where)
	return w.buf.String(), w.args, nil
}
