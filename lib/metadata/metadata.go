// Package metadata keeps the descriptive key/value entries of components and
// accounts, guarded by role rules. Locked entries never change again.
package metadata

import (
	"sort"

	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
)

const (
	KeyName            = "name"
	KeyDescription     = "description"
	KeyIconURL         = "icon_url"
	KeyDappDefinition  = "dapp_definition"
	KeyAccountType     = "account_type"
	KeyClaimedEntities = "claimed_entities"
)

type Entry struct {
	Values []string `json:"values"`
	Locked bool     `json:"locked"`
}

func (e Entry) Value() string {
	if len(e.Values) < 1 {
		return ""
	}
	return e.Values[0]
}

// Roles decide who may set and lock the entries, and who may change those
// two rules.
type Roles struct {
	Setter        credential.Rule `json:"setter"`
	SetterUpdater credential.Rule `json:"setter_updater"`
	Locker        credential.Rule `json:"locker"`
	LockerUpdater credential.Rule `json:"locker_updater"`
}

// LockedRoles nobody can satisfy.
func LockedRoles() Roles {
	return Roles{
		Setter:        credential.DenyAll(),
		SetterUpdater: credential.DenyAll(),
		Locker:        credential.DenyAll(),
		LockerUpdater: credential.DenyAll(),
	}
}

// OwnerRoles gives every role to `rule`.
func OwnerRoles(rule credential.Rule) Roles {
	return Roles{
		Setter:        rule,
		SetterUpdater: rule,
		Locker:        rule,
		LockerUpdater: rule,
	}
}

type Metadata struct {
	Entries map[string]Entry `json:"entries"`
	Roles   Roles            `json:"roles"`
}

// Init is the metadata given at construction; with `lock` every entry is
// locked at once.
func Init(entries map[string][]string, roles Roles, lock bool) Metadata {
	m := Metadata{Entries: map[string]Entry{}, Roles: roles}
	for k, v := range entries {
		m.Entries[k] = Entry{Values: append([]string{}, v...), Locked: lock}
	}
	return m
}

func (m Metadata) Get(key string) (Entry, bool) {
	e, found := m.Entries[key]
	return e, found
}

func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Metadata) checkUnlocked(key string) error {
	if e, found := m.Entries[key]; found && e.Locked {
		return errors.MetadataLocked.Clone().SetData("key", key)
	}
	return nil
}

// Set is allowed to the setter role on unlocked entries.
func (m *Metadata) Set(proofs []credential.Proof, key string, values ...string) error {
	if err := credential.AssertSatisfies(proofs, m.Roles.Setter); err != nil {
		return err
	}
	if err := m.checkUnlocked(key); err != nil {
		return err
	}

	if m.Entries == nil {
		m.Entries = map[string]Entry{}
	}
	m.Entries[key] = Entry{Values: append([]string{}, values...)}
	return nil
}

func (m *Metadata) Lock(proofs []credential.Proof, key string) error {
	if err := credential.AssertSatisfies(proofs, m.Roles.Locker); err != nil {
		return err
	}

	e, found := m.Entries[key]
	if !found {
		e = Entry{}
	}
	e.Locked = true
	if m.Entries == nil {
		m.Entries = map[string]Entry{}
	}
	m.Entries[key] = e
	return nil
}

func (m *Metadata) UpdateSetter(proofs []credential.Proof, rule credential.Rule) error {
	if err := credential.AssertSatisfies(proofs, m.Roles.SetterUpdater); err != nil {
		return err
	}
	m.Roles.Setter = rule
	return nil
}

func (m *Metadata) UpdateLocker(proofs []credential.Proof, rule credential.Rule) error {
	if err := credential.AssertSatisfies(proofs, m.Roles.LockerUpdater); err != nil {
		return err
	}
	m.Roles.Locker = rule
	return nil
}

// SetRoles replaces every role. It is used by the owner of the record, which
// has already checked its own rule.
func (m *Metadata) SetRoles(roles Roles) {
	m.Roles = roles
}
