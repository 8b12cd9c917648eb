package ledger

import (
	"sync"

	"boscoin.io/herehere/lib/errors"
)

// Component is anything globalized in the ledger under an address.
type Component interface {
	ComponentAddress() string
	Blueprint() string
}

// Loader loads the component stored under `address`.
type Loader func(tx *Tx, address string) (Component, error)

var (
	blueprintsLock sync.RWMutex
	blueprints     = map[string]Loader{}
)

// RegisterBlueprint is called by the component packages in their `init`.
func RegisterBlueprint(name string, loader Loader) {
	blueprintsLock.Lock()
	defer blueprintsLock.Unlock()

	if _, found := blueprints[name]; found {
		panic("blueprint already registered: " + name)
	}
	blueprints[name] = loader
}

func getLoader(name string) (Loader, bool) {
	blueprintsLock.RLock()
	defer blueprintsLock.RUnlock()

	loader, found := blueprints[name]
	return loader, found
}

func componentKey(address string) string {
	return "lg-component-" + address
}

// Globalize records the blueprint of a newly created component, so the
// other components can resolve it by its address.
func (tx *Tx) Globalize(address, blueprint string) error {
	if err := tx.st.New(componentKey(address), blueprint); err != nil {
		if err == errors.StorageRecordAlreadyExists {
			return errors.ComponentTypeMismatch.Clone().SetData("address", address)
		}
		return err
	}

	return nil
}

func (tx *Tx) BlueprintOf(address string) (blueprint string, err error) {
	if err = tx.st.Get(componentKey(address), &blueprint); err == errors.StorageRecordDoesNotExist {
		err = errors.ComponentNotFound.Clone().SetData("address", address)
	}
	return
}

// Resolve loads the component stored under `address`. The reference is by
// address only; nothing is owned by the caller.
func (tx *Tx) Resolve(address string) (Component, error) {
	blueprint, err := tx.BlueprintOf(address)
	if err != nil {
		return nil, err
	}

	loader, found := getLoader(blueprint)
	if !found {
		return nil, errors.UnknownBlueprint.Clone().SetData("blueprint", blueprint)
	}

	return loader(tx, address)
}
