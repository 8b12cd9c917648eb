package resource

import (
	"strings"

	"github.com/nvellon/hal"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList embeds the resources as `records`; the empty links are
// omitted.
type ResourceList struct {
	Resources []Resource
	SelfLink  string
	NextLink  string
	PrevLink  string
}

func NewResourceList(list []Resource, selfLink, nextLink, prevLink string) *ResourceList {
	rl := &ResourceList{
		Resources: list,
		SelfLink:  selfLink,
		NextLink:  nextLink,
		PrevLink:  prevLink,
	}

	return rl
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(struct{}{}, l.LinkSelf())

	var rCollection hal.ResourceCollection
	for _, apiResource := range l.Resources {
		rCollection = append(rCollection, apiResource.Resource())
	}
	rl.EmbedCollection("records", rCollection)

	for rel, link := range map[hal.Relation]string{"prev": l.LinkPrev(), "next": l.LinkNext()} {
		if len(link) > 0 {
			rl.AddLink(rel, hal.NewLink(link))
		}
	}

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) LinkNext() string {
	return l.NextLink
}
func (l ResourceList) LinkPrev() string {
	return l.PrevLink
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}

// expandURL fills the url pattern; `expandURL(URLPollBallot, "id", poll,
// "voter", voter)`.
func expandURL(pattern string, pairs ...string) string {
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(pattern)
}

// pageLink is the templated link of a paginated list.
func pageLink(pattern, id string) hal.Link {
	return hal.NewLink(expandURL(pattern, "id", id)+"{?cursor,limit,reverse}", hal.LinkAttr{"templated": true})
}
