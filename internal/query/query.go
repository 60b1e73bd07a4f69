// Package query turns URL query parameters into a validated list
// descriptor: allow-listed filter fields with a fixed operator set,
// column projection, sorting and pagination. Unknown fields and
// operators are rejected instead of being passed to the SQL layer.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nattapon-dev/hotel-booking-api/internal/apperr"
)

type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var opSQL = map[Op]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// operator suffixes tried longest-first so "_gte" wins over "_gt"
var suffixOps = []struct {
	suffix string
	op     Op
}{
	{"_gte", OpGte},
	{"_lte", OpLte},
	{"_gt", OpGt},
	{"_lt", OpLt},
	{"_in", OpIn},
}

type Filter struct {
	Field  string
	Op     Op
	Values []string
}

type Sort struct {
	Field string
	Desc  bool
}

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// ListOptions is the validated descriptor a repository renders to SQL.
type ListOptions struct {
	Filters []Filter
	Sorts   []Sort
	Select  []string
	Page    int
	Limit   int
}

// Allowed lists the fields a resource exposes for each concern.
type Allowed struct {
	Filter []string
	Sort   []string
	Select []string
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// reserved parameter names that are never treated as filter fields
var reserved = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// Parse builds ListOptions from raw query values, validating every field
// against the allow-list.
func Parse(values url.Values, allowed Allowed) (*ListOptions, error) {
	opts := &ListOptions{Page: DefaultPage, Limit: DefaultLimit}

	for key, vals := range values {
		if reserved[key] || len(vals) == 0 {
			continue
		}

		field, op := key, OpEq
		for _, s := range suffixOps {
			if strings.HasSuffix(key, s.suffix) {
				field, op = strings.TrimSuffix(key, s.suffix), s.op
				break
			}
		}

		if !contains(allowed.Filter, field) {
			return nil, apperr.Newf(apperr.Validation, "cannot filter on field %q", field)
		}

		f := Filter{Field: field, Op: op}
		if op == OpIn {
			f.Values = strings.Split(vals[0], ",")
		} else {
			f.Values = []string{vals[0]}
		}
		opts.Filters = append(opts.Filters, f)
	}

	if sel := values.Get("select"); sel != "" {
		for _, field := range strings.Split(sel, ",") {
			field = strings.TrimSpace(field)
			if !contains(allowed.Select, field) {
				return nil, apperr.Newf(apperr.Validation, "cannot select field %q", field)
			}
			opts.Select = append(opts.Select, field)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, field := range strings.Split(sort, ",") {
			field = strings.TrimSpace(field)
			desc := strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")
			if !contains(allowed.Sort, field) {
				return nil, apperr.Newf(apperr.Validation, "cannot sort on field %q", field)
			}
			opts.Sorts = append(opts.Sorts, Sort{Field: field, Desc: desc})
		}
	}

	if page := values.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return nil, apperr.New(apperr.Validation, "page must be a positive integer")
		}
		opts.Page = n
	}

	if limit := values.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return nil, apperr.New(apperr.Validation, "limit must be a positive integer")
		}
		opts.Limit = n
	}

	return opts, nil
}

// Where renders the filters as a SQL predicate with positional args,
// starting at $1. Returns "" when there are no filters. Field names are
// trusted here because Parse validated them against the allow-list.
func (o *ListOptions) Where() (string, []any) {
	if len(o.Filters) == 0 {
		return "", nil
	}

	var (
		conds []string
		args  []any
	)
	for _, f := range o.Filters {
		if f.Op == OpIn {
			placeholders := make([]string, len(f.Values))
			for i, v := range f.Values {
				args = append(args, v)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			conds = append(conds, fmt.Sprintf("%s IN (%s)", f.Field, strings.Join(placeholders, ", ")))
			continue
		}
		args = append(args, f.Values[0])
		conds = append(conds, fmt.Sprintf("%s %s $%d", f.Field, opSQL[f.Op], len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// OrderBy renders the sort clause, defaulting to newest-first.
func (o *ListOptions) OrderBy() string {
	if len(o.Sorts) == 0 {
		return "ORDER BY created_at DESC"
	}

	parts := make([]string, len(o.Sorts))
	for i, s := range o.Sorts {
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts[i] = s.Field + " " + dir
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

// Columns renders the projection, falling back to all when no select was
// given.
func (o *ListOptions) Columns(all []string) string {
	if len(o.Select) == 0 {
		return strings.Join(all, ", ")
	}
	return strings.Join(o.Select, ", ")
}

// Offset is the row offset implied by page and limit.
func (o *ListOptions) Offset() int {
	return (o.Page - 1) * o.Limit
}

// Page descriptors exposed only when more data exists in that direction.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes next/prev descriptors from the total row count.
func (o *ListOptions) Paginate(total int) Pagination {
	var p Pagination
	if o.Offset()+o.Limit < total {
		p.Next = &PageRef{Page: o.Page + 1, Limit: o.Limit}
	}
	if o.Offset() > 0 {
		p.Prev = &PageRef{Page: o.Page - 1, Limit: o.Limit}
	}
	return p
}
