// Package pagination holds the page/limit convention shared by every listing.
//
// HasMore is a heuristic: a page that came back exactly Limit rows long
// reports HasMore=true even when the following page turns out to be empty.
// Callers rely on that behaviour, so it must not be replaced by an exact count.
package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ErrInvalid is wrapped by every error returned from this package.
var ErrInvalid = errors.New("invalid pagination")

var validate = validator.New()

// Params is a validated page request.
type Params struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// Default returns page 1 with the default limit.
func Default() Params { return Params{Page: DefaultPage, Limit: DefaultLimit} }

// New builds Params; zero means "not supplied" and selects the default.
func New(page, limit int) (Params, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	p := Params{Page: page, Limit: limit}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Parse reads raw query-string values. Empty strings select defaults.
func Parse(page, limit string) (Params, error) {
	pg, err := atoi("page", page)
	if err != nil {
		return Params{}, err
	}
	lim, err := atoi("limit", limit)
	if err != nil {
		return Params{}, err
	}
	if page != "" && pg == 0 {
		return Params{}, fmt.Errorf("%w: page must be >= 1", ErrInvalid)
	}
	if limit != "" && lim == 0 {
		return Params{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalid, MaxLimit)
	}
	return New(pg, lim)
}

// Validate checks page >= 1 and 1 <= limit <= MaxLimit.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Page":
				return fmt.Errorf("%w: page must be >= 1", ErrInvalid)
			default:
				return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalid, MaxLimit)
			}
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Offset is (Page-1)*Limit.
func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// Page is one page of results.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"has_more"`
}

// NewPage wraps items fetched with p. A nil slice is normalised to empty.
func NewPage[T any](items []T, p Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Page:    p.Page,
		Limit:   p.Limit,
		HasMore: len(items) == p.Limit,
	}
}

func atoi(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalid, name)
	}
	return n, nil
}
