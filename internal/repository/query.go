package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

const unboundedLimit = 1<<31 - 1

// SortKey is one caller-supplied ordering criterion. Position in the slice is
// tie-break priority.
type SortKey struct {
	Field      string
	Descending bool
}

// Query is the ephemeral, caller-supplied specification for a list operation.
// Wire shape: { skip?: int, limit?: int, sort?: { field: 1|-1 }, search?: string }.
// A limit of zero means unbounded.
type Query struct {
	Search string
	Sort   []SortKey
	Skip   int
	Limit  int
}

func (q *Query) UnmarshalJSON(data []byte) error {
	var raw struct {
		Skip   int             `json:"skip"`
		Limit  int             `json:"limit"`
		Search string          `json:"search"`
		Sort   json.RawMessage `json:"sort"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	q.Skip = raw.Skip
	q.Limit = raw.Limit
	q.Search = raw.Search
	q.Sort = nil
	if len(raw.Sort) == 0 || string(raw.Sort) == "null" {
		return nil
	}
	keys, err := decodeSortOrder(raw.Sort)
	if err != nil {
		return err
	}
	q.Sort = keys
	return nil
}

// decodeSortOrder walks the raw JSON tokens so the caller's key order survives
// as tie-break priority; a plain map would lose it.
func decodeSortOrder(raw []byte) ([]SortKey, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: sort must be an object", ErrInvalidQuery)
	}
	var keys []SortKey
	for dec.More() {
		fieldTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		field, ok := fieldTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: sort field must be a string", ErrInvalidQuery)
		}
		var direction int
		if err := dec.Decode(&direction); err != nil {
			return nil, fmt.Errorf("%w: sort direction for %q must be 1 or -1", ErrInvalidQuery, field)
		}
		switch direction {
		case 1:
			keys = append(keys, SortKey{Field: field})
		case -1:
			keys = append(keys, SortKey{Field: field, Descending: true})
		default:
			return nil, fmt.Errorf("%w: sort direction for %q must be 1 or -1", ErrInvalidQuery, field)
		}
	}
	return keys, nil
}

// PageResult is one page of entities plus the total count of the filtered set
// before pagination was applied.
type PageResult[T any] struct {
	Items []T
	Total int64
}

// ListDefinition describes how one entity type participates in list queries:
// which columns a search term runs against and which sort fields callers may
// reference. Sort fields map wire names to column expressions, which keeps
// caller input out of the generated SQL.
type ListDefinition struct {
	SearchColumns []string
	// ExactSearch switches the search from case-insensitive substring match
	// to exact equality (used by the user list, which matches identifiers).
	ExactSearch bool
	// FoldedSearch marks exact-search columns whose stored values are
	// canonically lower-cased; the term is folded before comparison.
	FoldedSearch map[string]bool
	SortColumns map[string]string
	// TextSort marks sort fields compared case-insensitively.
	TextSort map[string]bool
}

// EscapeLike neutralizes every LIKE metacharacter in a search term so the term
// only ever matches its literal substring. Unescaped caller input must never
// reach the pattern engine.
func EscapeLike(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		switch r {
		case '\\', '%', '_':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ListPaged composes filter, search, sort, skip/limit and count into one list
// operation. The scoping filter is applied before any caller-supplied input
// and cannot be bypassed by it. Total and page are computed from two passes
// over an identically-filtered view.
func ListPaged[T any](db *gorm.DB, q Query, def ListDefinition, scope func(*gorm.DB) *gorm.DB) (PageResult[T], error) {
	filtered := func() *gorm.DB {
		tx := db.Model(new(T))
		if scope != nil {
			tx = scope(tx)
		}
		term := strings.TrimSpace(q.Search)
		if term == "" || len(def.SearchColumns) == 0 {
			return tx
		}
		cond := db.Session(&gorm.Session{NewDB: true})
		if def.ExactSearch {
			for i, col := range def.SearchColumns {
				val := term
				if def.FoldedSearch[col] {
					val = strings.ToLower(term)
				}
				if i == 0 {
					cond = cond.Where(col+" = ?", val)
				} else {
					cond = cond.Or(col+" = ?", val)
				}
			}
		} else {
			pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
			for i, col := range def.SearchColumns {
				expr := "LOWER(" + col + `) LIKE ? ESCAPE '\'`
				if i == 0 {
					cond = cond.Where(expr, pattern)
				} else {
					cond = cond.Or(expr, pattern)
				}
			}
		}
		return tx.Where(cond)
	}

	var result PageResult[T]
	if err := filtered().Count(&result.Total).Error; err != nil {
		return PageResult[T]{}, err
	}

	tx := filtered()
	for _, key := range q.Sort {
		col, ok := def.SortColumns[key.Field]
		if !ok {
			return PageResult[T]{}, fmt.Errorf("%w: unsupported sort field %q", ErrInvalidQuery, key.Field)
		}
		expr := col
		if def.TextSort[key.Field] {
			expr = "LOWER(" + col + ")"
		}
		if key.Descending {
			expr += " DESC"
		} else {
			expr += " ASC"
		}
		tx = tx.Order(expr)
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
		if q.Limit <= 0 {
			// OFFSET without LIMIT is not portable SQL.
			tx = tx.Limit(unboundedLimit)
		}
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if err := tx.Find(&result.Items).Error; err != nil {
		return PageResult[T]{}, err
	}
	return result, nil
}
