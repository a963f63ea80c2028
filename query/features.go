// Package query translates client-supplied query-string parameters into a
// composed, filtered and paginated read over a document collection. Callers
// chain the same way the read handlers use it:
//
//	cursor, err := query.New(params).Search().Filter().Paginate(100).Find(ctx, col)
package query

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Reserved keys never become field filters.
var reserved = map[string]struct{}{
	"keyword": {},
	"page":    {},
	"limit":   {},
}

var operatorKey = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\[(gte|gt|lte|lt)\]$`)

type Features struct {
	params url.Values
	filter bson.M
	skip   int64
	limit  int64
}

func New(params url.Values) *Features {
	return &Features{params: params, filter: bson.M{}}
}

// Search adds a case-insensitive substring match on the name field when a
// keyword parameter is present. No keyword, no constraint.
func (f *Features) Search() *Features {
	if kw := strings.TrimSpace(f.params.Get("keyword")); kw != "" {
		f.filter["name"] = bson.M{"$regex": regexp.QuoteMeta(kw), "$options": "i"}
	}
	return f
}

// Filter turns every non-reserved parameter into a field constraint. Plain
// keys become equality matches; keys of the form field[gte] forward the value
// to the corresponding comparison operator untouched. All constraints AND
// together with the search constraint.
func (f *Features) Filter() *Features {
	for key, vals := range f.params {
		if _, skip := reserved[key]; skip || len(vals) == 0 {
			continue
		}
		value := coerce(vals[0])
		if m := operatorKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			sub, ok := f.filter[field].(bson.M)
			if !ok {
				sub = bson.M{}
				f.filter[field] = sub
			}
			sub[op] = value
			continue
		}
		f.filter[key] = value
	}
	return f
}

// Paginate computes skip = (page-1) x perPage and caps results at perPage.
// An absent or non-positive page parameter behaves as page 1. Applied after
// filtering, never before.
func (f *Features) Paginate(perPage int) *Features {
	page := 1
	if raw := f.params.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	f.skip = int64(page-1) * int64(perPage)
	f.limit = int64(perPage)
	return f
}

// FilterDoc exposes the composed filter document.
func (f *Features) FilterDoc() bson.M { return f.filter }

func (f *Features) Skip() int64  { return f.skip }
func (f *Features) Limit() int64 { return f.limit }

// Find executes the composed read against the collection.
func (f *Features) Find(ctx context.Context, col *mongo.Collection) (*mongo.Cursor, error) {
	opts := options.Find()
	if f.limit > 0 {
		opts = opts.SetSkip(f.skip).SetLimit(f.limit)
	}
	return col.Find(ctx, f.filter, opts)
}

// coerce turns numeric-looking values into float64 so range comparisons work
// against numeric fields; everything else passes through as a string.
func coerce(v string) any {
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
