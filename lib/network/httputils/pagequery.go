package httputils

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/herehere/lib/storage"
)

// PageQuery reads `cursor`, `limit` and `reverse` of a list request and makes
// the links to the neighbor pages.
type PageQuery struct {
	request *http.Request
	options *storage.DefaultListOptions
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	options, err := storage.NewDefaultListOptionsFromQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	return &PageQuery{request: r, options: options}, nil
}

func (p *PageQuery) Limit() uint64 {
	return p.options.Limit()
}

func (p *PageQuery) Reverse() bool {
	return p.options.Reverse()
}

func (p *PageQuery) Cursor() []byte {
	return p.options.Cursor()
}

func (p *PageQuery) ListOptions() storage.ListOptions {
	return p.options
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

// NextLink continues in the same direction after `cursor`.
func (p *PageQuery) NextLink(cursor string) string {
	return p.link(cursor, p.Reverse())
}

// PrevLink goes back before `cursor`.
func (p *PageQuery) PrevLink(cursor string) string {
	return p.link(cursor, !p.Reverse())
}

func (p *PageQuery) link(cursor string, reverse bool) string {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
		"limit":   []string{strconv.FormatUint(p.Limit(), 10)},
	}
	if len(cursor) > 0 {
		v.Set("cursor", cursor)
	}

	return fmt.Sprintf("%s?%s", p.request.URL.Path, v.Encode())
}
