package resource

import (
	"github.com/nvellon/hal"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}

// ResourceList embeds its resources as "records" with the paging links;
// an empty prev or next link is left out.
type ResourceList struct {
	Resources []Resource
	SelfLink  string
	NextLink  string
	PrevLink  string
}

func NewResourceList(list []Resource, selfLink, nextLink, prevLink string) *ResourceList {
	return &ResourceList{
		Resources: list,
		SelfLink:  selfLink,
		NextLink:  nextLink,
		PrevLink:  prevLink,
	}
}

func (l ResourceList) Resource() *hal.Resource {
	rl := hal.NewResource(struct{}{}, l.LinkSelf())

	records := make(hal.ResourceCollection, 0, len(l.Resources))
	for _, r := range l.Resources {
		records = append(records, r.Resource())
	}
	rl.EmbedCollection("records", records)

	for rel, href := range map[hal.Relation]string{"prev": l.PrevLink, "next": l.NextLink} {
		if href != "" {
			rl.AddLink(rel, hal.NewLink(href))
		}
	}

	return rl
}

func (l ResourceList) LinkSelf() string {
	return l.SelfLink
}

func (l ResourceList) GetMap() hal.Entry {
	return hal.Entry{}
}
