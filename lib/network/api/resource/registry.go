package resource

import (
	"strconv"

	"github.com/nvellon/hal"

	"boscoin.io/herehere/lib/registry"
)

type Registry struct {
	r *registry.Registry
}

func NewRegistry(r *registry.Registry) *Registry {
	return &Registry{r: r}
}

func (r Registry) GetMap() hal.Entry {
	return hal.Entry{
		"address":        r.r.Address,
		"owner":          r.r.Owner.String(),
		"currency":       r.r.Custody.Currency,
		"custody":        r.r.Custodied().DecimalString(),
		"creation_price": r.r.CreationPrice.DecimalString(),
		"vote_price":     r.r.VotePrice.DecimalString(),
		"polls":          r.r.NextPollID,
		"listing":        r.r.Listing,
	}
}

func (r Registry) Resource() *hal.Resource {
	res := hal.NewResource(r, r.LinkSelf())
	res.AddLink("polls", pageLink(URLRegistryPolls, r.r.Address))
	if len(r.r.Listing) > 0 {
		res.AddLink("listing", hal.NewLink(expandURL(URLAccounts, "id", r.r.Listing)))
	}
	return res
}

func (r Registry) LinkSelf() string {
	return expandURL(URLRegistries, "id", r.r.Address)
}

// Entry is a poll in the directory of its registry.
type Entry struct {
	e registry.Entry
}

func NewEntry(e registry.Entry) *Entry {
	return &Entry{e: e}
}

func (e Entry) GetMap() hal.Entry {
	return hal.Entry{
		"registry":          e.e.Registry,
		"poll_id":           e.e.PollID,
		"statement":         e.e.Statement,
		"eligibility_asset": e.e.EligibilityAsset,
		"end_time":          e.e.EndTime,
		"address":           e.e.Address,
	}
}

func (e Entry) Resource() *hal.Resource {
	res := hal.NewResource(e, e.LinkSelf())
	res.AddLink("poll", hal.NewLink(expandURL(URLPolls, "id", e.e.Address)))
	res.AddLink("registry", hal.NewLink(expandURL(URLRegistries, "id", e.e.Registry)))
	return res
}

func (e Entry) LinkSelf() string {
	return expandURL(URLRegistryPoll, "id", e.e.Registry, "pollID", strconv.FormatUint(e.e.PollID, 10))
}
