// Package pagination parses page/limit query values and builds the response metadata.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps (Page-1)*Limit well inside int range.
	MaxPage      = math.MaxInt32
)

type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination object returned next to a page of data.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Parse never fails: values that do not parse fall back to the defaults,
// page is clamped to [1, MaxPage] and limit to [1, MaxLimit].
func Parse(page, limit string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}
	if n, err := strconv.Atoi(strings.TrimSpace(page)); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil {
		p.Limit = n
	}
	return p.Normalize()
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewMeta computes totalPages = ceil(total/limit).
func NewMeta(total int64, p Params) Meta {
	p = p.Normalize()
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
