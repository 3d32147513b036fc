package repository

import (
	"fmt"
	"reflect"

	"github.com/uptrace/bun"

	"github.com/entitykit/entitykit/errors"
)

// Operator is one of the closed set of filter comparisons. Anything outside
// this set is rejected at translation time rather than silently dropped, so a
// typo'd operator cannot return unfiltered results.
type Operator string

const (
	OpEq   Operator = "eq"
	OpNe   Operator = "ne"
	OpGt   Operator = "gt"
	OpGte  Operator = "gte"
	OpLt   Operator = "lt"
	OpLte  Operator = "lte"
	OpLike Operator = "like"
	OpIn   Operator = "in"
)

var operatorSQL = map[Operator]string{
	OpEq:   "=",
	OpNe:   "<>",
	OpGt:   ">",
	OpGte:  ">=",
	OpLt:   "<",
	OpLte:  "<=",
	OpLike: "LIKE",
}

// Filter is a single field/operator/value predicate. Multiple filters compose
// conjunctively; an empty filter list means no restriction.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Clause is one translated query fragment. Expr holds bun placeholders and
// Args the identifier plus value, so translation stays a pure data
// transformation with no I/O and no hidden state.
type Clause struct {
	Expr string
	Args []any
}

// TranslateFilters maps each filter deterministically to one clause. The
// caller joins clauses with AND. Fields not present in filterable and
// operators outside the closed set produce a validation error.
func TranslateFilters(filters []Filter, filterable map[string]string) ([]Clause, error) {
	clauses := make([]Clause, 0, len(filters))

	for _, f := range filters {
		col, ok := filterable[f.Field]
		if !ok {
			return nil, errors.NewValidation("field %q is not filterable", f.Field)
		}

		if f.Op == OpIn {
			if k := reflect.ValueOf(f.Value).Kind(); k != reflect.Slice && k != reflect.Array {
				return nil, errors.NewValidation("operator %q requires a slice value for field %q", OpIn, f.Field)
			}
			clauses = append(clauses, Clause{
				Expr: "? IN (?)",
				Args: []any{bun.Ident(col), bun.In(f.Value)},
			})
			continue
		}

		op, ok := operatorSQL[f.Op]
		if !ok {
			return nil, errors.NewValidation("unknown filter operator %q", f.Op)
		}
		clauses = append(clauses, Clause{
			Expr: fmt.Sprintf("? %s ?", op),
			Args: []any{bun.Ident(col), f.Value},
		})
	}

	return clauses, nil
}
