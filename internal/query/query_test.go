package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allowed = Allowed{
	Filter: []string{"name", "address", "tel"},
	Sort:   []string{"name", "created_at"},
	Select: []string{"id", "name", "address"},
}

func TestParseDefaults(t *testing.T) {
	opts, err := Parse(url.Values{}, allowed)
	assert.NoError(t, err)
	assert.Equal(t, DefaultPage, opts.Page)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Empty(t, opts.Filters)
	assert.Equal(t, "ORDER BY created_at DESC", opts.OrderBy())

	where, args := opts.Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestParseOperatorSuffixes(t *testing.T) {
	values := url.Values{}
	values.Set("name", "Grand")
	values.Set("tel_gte", "02")
	values.Set("address_in", "a,b,c")

	opts, err := Parse(values, allowed)
	assert.NoError(t, err)
	assert.Len(t, opts.Filters, 3)

	byField := map[string]Filter{}
	for _, f := range opts.Filters {
		byField[f.Field] = f
	}

	assert.Equal(t, OpEq, byField["name"].Op)
	assert.Equal(t, OpGte, byField["tel"].Op)
	assert.Equal(t, OpIn, byField["address"].Op)
	assert.Equal(t, []string{"a", "b", "c"}, byField["address"].Values)
}

func TestParseRejectsUnknownField(t *testing.T) {
	values := url.Values{}
	values.Set("password_hash", "x")

	_, err := Parse(values, allowed)
	assert.Error(t, err)
}

func TestParseRejectsUnknownFieldBehindSuffix(t *testing.T) {
	values := url.Values{}
	values.Set("role_in", "admin")

	_, err := Parse(values, allowed)
	assert.Error(t, err)
}

func TestParseSelectAndSort(t *testing.T) {
	values := url.Values{}
	values.Set("select", "name,address")
	values.Set("sort", "-created_at,name")

	opts, err := Parse(values, allowed)
	assert.NoError(t, err)
	assert.Equal(t, "name, address", opts.Columns([]string{"id", "name", "address"}))
	assert.Equal(t, "ORDER BY created_at DESC, name ASC", opts.OrderBy())
}

func TestParseRejectsUnknownSelectAndSort(t *testing.T) {
	values := url.Values{}
	values.Set("select", "password_hash")
	_, err := Parse(values, allowed)
	assert.Error(t, err)

	values = url.Values{}
	values.Set("sort", "password_hash")
	_, err = Parse(values, allowed)
	assert.Error(t, err)
}

func TestParsePageAndLimit(t *testing.T) {
	values := url.Values{}
	values.Set("page", "3")
	values.Set("limit", "10")

	opts, err := Parse(values, allowed)
	assert.NoError(t, err)
	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 10, opts.Limit)
	assert.Equal(t, 20, opts.Offset())

	values.Set("page", "0")
	_, err = Parse(values, allowed)
	assert.Error(t, err)

	values.Set("page", "abc")
	_, err = Parse(values, allowed)
	assert.Error(t, err)
}

func TestWhereRendering(t *testing.T) {
	opts := &ListOptions{
		Filters: []Filter{
			{Field: "name", Op: OpEq, Values: []string{"Grand"}},
			{Field: "tel", Op: OpGt, Values: []string{"02"}},
			{Field: "address", Op: OpIn, Values: []string{"a", "b"}},
		},
	}

	where, args := opts.Where()
	assert.Equal(t, "WHERE name = $1 AND tel > $2 AND address IN ($3, $4)", where)
	assert.Equal(t, []any{"Grand", "02", "a", "b"}, args)
}

func TestPagination(t *testing.T) {
	opts := &ListOptions{Page: 1, Limit: 25}

	p := opts.Paginate(100)
	assert.NotNil(t, p.Next)
	assert.Equal(t, 2, p.Next.Page)
	assert.Nil(t, p.Prev, "first page has no prev")

	opts.Page = 2
	p = opts.Paginate(100)
	assert.NotNil(t, p.Next)
	assert.NotNil(t, p.Prev)
	assert.Equal(t, 1, p.Prev.Page)

	opts.Page = 4
	p = opts.Paginate(100)
	assert.Nil(t, p.Next, "last page has no next")
	assert.NotNil(t, p.Prev)

	opts.Page = 1
	p = opts.Paginate(10)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Prev)
}
