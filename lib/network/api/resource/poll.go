package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/poll"
)

type Poll struct {
	p   *poll.Poll
	now int64
}

// NewPoll shows `p` as seen at `now`.
func NewPoll(p *poll.Poll, now int64) *Poll {
	return &Poll{p: p, now: now}
}

func (p Poll) GetMap() hal.Entry {
	tally := p.p.Tally()

	return hal.Entry{
		"address":           p.p.Address,
		"statement":         p.p.Statement,
		"end_time":          p.p.EndTime,
		"end_time_iso":      common.UnixToISO8601(p.p.EndTime),
		"open":              p.p.IsOpen(p.now),
		"eligibility_asset": p.p.EligibilityAsset,
		"creator":           p.p.Creator,
		"registry":          p.p.Registry,
		"listing":           p.p.Listing,
		"ayes":              tally.Ayes,
		"noes":              tally.Noes,
		"total":             tally.Total,
	}
}

func (p Poll) Resource() *hal.Resource {
	res := hal.NewResource(p, p.LinkSelf())
	res.AddLink("ballots", pageLink(URLPollBallots, p.p.Address))
	res.AddLink("registry", hal.NewLink(expandURL(URLRegistries, "id", p.p.Registry)))
	return res
}

func (p Poll) LinkSelf() string {
	return expandURL(URLPolls, "id", p.p.Address)
}

type Ballot struct {
	b poll.Ballot
}

func NewBallot(b poll.Ballot) *Ballot {
	return &Ballot{b: b}
}

func (b Ballot) GetMap() hal.Entry {
	return hal.Entry{
		"poll":     b.b.Poll,
		"voter":    b.b.Voter,
		"choice":   b.b.ChoiceString(),
		"at":       b.b.At,
		"sequence": b.b.Sequence,
	}
}

func (b Ballot) Resource() *hal.Resource {
	res := hal.NewResource(b, b.LinkSelf())
	res.AddLink("poll", hal.NewLink(expandURL(URLPolls, "id", b.b.Poll)))
	return res
}

func (b Ballot) LinkSelf() string {
	return expandURL(URLPollBallot, "id", b.b.Poll, "voter", b.b.Voter)
}
