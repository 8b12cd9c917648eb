// Package credential checks who may act on a component. A `Rule` names the
// identities allowed, a `Proof` is a signature presented by the caller for
// the current ledger transaction.
package credential

import (
	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/errors"
)

type RuleKind string

const (
	RuleRequire  RuleKind = "require"
	RuleAllowAll RuleKind = "allow-all"
	RuleDenyAll  RuleKind = "deny-all"
)

type Rule struct {
	Kind    RuleKind `json:"kind"`
	Address string   `json:"address,omitempty"`
}

// Require is satisfied only by a proof of `address`.
func Require(address string) Rule {
	return Rule{Kind: RuleRequire, Address: address}
}

func AllowAll() Rule {
	return Rule{Kind: RuleAllowAll}
}

func DenyAll() Rule {
	return Rule{Kind: RuleDenyAll}
}

func (r Rule) String() string {
	if r.Kind == RuleRequire {
		return string(r.Kind) + "(" + r.Address + ")"
	}
	return string(r.Kind)
}

func (r Rule) IsValid() bool {
	switch r.Kind {
	case RuleAllowAll, RuleDenyAll:
		return len(r.Address) < 1
	case RuleRequire:
		return len(r.Address) > 0
	default:
		return false
	}
}

// IsSatisfiedBy expects already verified proofs.
func (r Rule) IsSatisfiedBy(proofs []Proof) bool {
	switch r.Kind {
	case RuleAllowAll:
		return true
	case RuleRequire:
		for _, p := range proofs {
			if p.Address == r.Address {
				return true
			}
		}
	}

	return false
}

// Proof is the signature of `Message` by the key of `Address`, bound to the
// network id.
type Proof struct {
	Address   string `json:"address"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

func NewProof(kp keypair.KP, networkID []byte, message string) (p Proof, err error) {
	var signature []byte
	if signature, err = keypair.MakeSignature(kp, networkID, message); err != nil {
		return
	}

	p = Proof{
		Address:   kp.Address(),
		Message:   message,
		Signature: base58.Encode(signature),
	}
	return
}

func (p Proof) Verify(networkID []byte) error {
	signature := base58.Decode(p.Signature)
	if len(p.Address) < 1 || len(signature) < 1 {
		return errors.InvalidProof.Clone().SetData("address", p.Address)
	}

	if err := keypair.VerifySignature(p.Address, networkID, p.Message, signature); err != nil {
		return errors.InvalidProof.Clone().SetData("address", p.Address)
	}

	return nil
}

// Check verifies a single presented proof against the rule.
func Check(proof Proof, rule Rule, networkID []byte) error {
	if err := proof.Verify(networkID); err != nil {
		return errors.Unauthorized.Clone().SetData("reason", err.Error())
	}

	return AssertSatisfies([]Proof{proof}, rule)
}

// IsPresented reports whether `proof` is one of the presented proofs.
func IsPresented(presented []Proof, proof Proof) bool {
	for _, p := range presented {
		if p == proof {
			return true
		}
	}
	return false
}

// CheckPresented is `Check` for a proof which must also have been presented
// to the running transaction; a proof signed for an earlier one is refused.
func CheckPresented(presented []Proof, proof Proof, rule Rule, networkID []byte) error {
	if !IsPresented(presented, proof) {
		return errors.Unauthorized.Clone().
			SetData("reason", "proof was not presented").
			SetData("address", proof.Address)
	}

	return Check(proof, rule, networkID)
}

// AssertSatisfies fails with `errors.Unauthorized` unless one of the
// presented proofs satisfies the rule. The proofs must have been verified by
// the ledger.
func AssertSatisfies(proofs []Proof, rule Rule) error {
	if !rule.IsSatisfiedBy(proofs) {
		return errors.Unauthorized.Clone().SetData("rule", rule.String())
	}

	return nil
}
