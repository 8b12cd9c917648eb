package operation

import (
	"boscoin.io/herehere/lib/common"
)

// InstantiateRegistry creates a registry owned by the key of `Owner`.
type InstantiateRegistry struct {
	Owner   string `json:"owner"`
	Listing string `json:"listing"`
}

func NewInstantiateRegistry(owner, listing string) InstantiateRegistry {
	return InstantiateRegistry{Owner: owner, Listing: listing}
}

func (o InstantiateRegistry) IsWellFormed(common.Config) error {
	return checkIdentity("owner", o.Owner)
}
