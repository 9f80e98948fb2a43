package operation

import (
	"encoding/json"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
)

const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 8192
)

type CreateProposal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func NewCreateProposal(title, description string) CreateProposal {
	return CreateProposal{
		Title:       title,
		Description: description,
	}
}

func (o CreateProposal) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o CreateProposal) IsWellFormed(common.Config) (err error) {
	if len(o.Title) > MaxTitleLength {
		return errors.InvalidOperation.Clone().SetData("title", "too long")
	}
	if len(o.Description) > MaxDescriptionLength {
		return errors.InvalidOperation.Clone().SetData("description", "too long")
	}

	return
}
