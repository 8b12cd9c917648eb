package storage

import (
	"net/url"
	"strconv"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

var DefaultMaxLimitListOptions uint64 = 100

type ListOptions interface {
	Reverse() bool
	SetReverse(bool) ListOptions
	Cursor() []byte
	SetCursor([]byte) ListOptions
	Limit() uint64
	SetLimit(uint64) ListOptions
	Template() string
	URLValues() url.Values
	Encode() string
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o *DefaultListOptions) SetReverse(r bool) ListOptions {
	o.reverse = r
	return o
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o *DefaultListOptions) SetCursor(c []byte) ListOptions {
	o.cursor = c
	return o
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o *DefaultListOptions) SetLimit(l uint64) ListOptions {
	o.limit = l
	return o
}

func (o DefaultListOptions) Template() string {
	return "{?cursor,limit,reverse}"
}

func (o DefaultListOptions) URLValues() url.Values {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(o.reverse)},
	}

	if len(o.cursor) > 0 {
		v.Set("cursor", string(o.cursor))
	}
	if o.limit > 0 {
		v.Set("limit", strconv.FormatUint(o.limit, 10))
	}

	return v
}

func (o DefaultListOptions) Encode() string {
	return o.URLValues().Encode()
}

// NewDefaultListOptionsFromQuery reads `cursor`, `limit` and `reverse` of the
// query string; the limit is capped by `DefaultMaxLimitListOptions`.
func NewDefaultListOptionsFromQuery(v url.Values) (options *DefaultListOptions, err error) {
	var reverse bool
	if r := v.Get("reverse"); len(r) > 0 {
		if reverse, err = common.ParseBoolQueryString(r); err != nil {
			return
		}
	}

	limit := DefaultMaxLimitListOptions
	if l := v.Get("limit"); len(l) > 0 {
		if limit, err = strconv.ParseUint(l, 10, 64); err != nil {
			err = errors.BadRequestParameter.Clone().SetData("limit", l)
			return
		}
		if limit > DefaultMaxLimitListOptions {
			err = errors.PageQueryLimitMaxExceed
			return
		}
	}

	var cursor []byte
	if c := v.Get("cursor"); len(c) > 0 {
		cursor = []byte(c)
	}

	options = NewDefaultListOptions(reverse, cursor, limit)
	return
}
