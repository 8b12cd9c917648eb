package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/poll"
	"boscoin.io/herehere/lib/storage"
	"boscoin.io/herehere/lib/vault"
)

var now = time.Unix(1700000000, 0)

type testRegistry struct {
	t       *testing.T
	l       *ledger.Ledger
	clock   *ledger.FixedClock
	owner   *keypair.Full
	address string
}

func newTestRegistry(t *testing.T) *testRegistry {
	l, clock := ledger.NewTestLedger(now)
	tr := &testRegistry{t: t, l: l, clock: clock, owner: keypair.Random()}

	err := l.Execute(nil, func(tx *ledger.Tx) error {
		r, err := Instantiate(tx, credential.Require(tr.owner.Address()), "account_dapp_definition")
		if err != nil {
			return err
		}
		tr.address = r.Address
		return nil
	})
	require.NoError(t, err)

	return tr
}

func (tr *testRegistry) proof(kp keypair.KP) credential.Proof {
	proof, err := credential.NewProof(kp, tr.l.Config().NetworkID, "registry")
	require.NoError(tr.t, err)
	return proof
}

func (tr *testRegistry) load() (r *Registry) {
	tr.l.View(func(tx *ledger.Tx) (err error) {
		r, err = Load(tx, tr.address)
		require.NoError(tr.t, err)
		return
	})
	return
}

func (tr *testRegistry) createVote(statement string, endTime int64, payment *vault.Bucket) (change *vault.Bucket, entry Entry, err error) {
	err = tr.l.Execute(nil, func(tx *ledger.Tx) error {
		r, err := Load(tx, tr.address)
		if err != nil {
			return err
		}
		if change, err = r.CreateVote(tx, "creator", statement, endTime, "", payment); err != nil {
			return err
		}
		entry, err = r.LastEntry(tx)
		return err
	})
	return
}

func (tr *testRegistry) vote(kp keypair.KP, pollAddress string, choice bool, fee string) error {
	proof := tr.proof(kp)
	return tr.l.Execute([]credential.Proof{proof}, func(tx *ledger.Tx) error {
		p, err := poll.Load(tx, pollAddress)
		if err != nil {
			return err
		}
		return p.Vote(tx, kp.Address(), choice, vault.NewBucket(common.SettlementCurrency, common.MustAmountFromDecimalString(fee)))
	})
}

func xrd(s string) *vault.Bucket {
	return vault.NewBucket(common.SettlementCurrency, common.MustAmountFromDecimalString(s))
}

func TestRegistryInstantiate(t *testing.T) {
	tr := newTestRegistry(t)
	r := tr.load()

	require.True(t, ledger.IsComponentAddress(r.Address))
	require.Equal(t, uint64(0), r.NextPollID)
	require.Equal(t, common.Amount(0), r.Custodied())
	require.Equal(t, common.SettlementCurrency, r.Custody.Currency)
	require.Equal(t, "69", r.CreationPrice.DecimalString())
	require.Equal(t, "6.9", r.VotePrice.DecimalString())

	for key, value := range map[string]string{
		metadata.KeyName:           "Here Here",
		metadata.KeyDescription:    "Will the ayes or the noes have it?",
		metadata.KeyDappDefinition: "account_dapp_definition",
		metadata.KeyIconURL:        IconURL,
	} {
		e, found := r.Metadata.Get(key)
		require.True(t, found)
		require.True(t, e.Locked)
		require.Equal(t, value, e.Value())
	}
	require.Equal(t, metadata.LockedRoles(), r.Metadata.Roles)

	tr.l.View(func(tx *ledger.Tx) error {
		c, err := tx.Resolve(r.Address)
		require.NoError(t, err)
		_, ok := c.(poll.FeeCollector)
		require.True(t, ok)
		return nil
	})
}

func TestRegistryCreateVote(t *testing.T) {
	tr := newTestRegistry(t)

	var created []PollCreated
	key := observer.NewEvent(observer.EventPollCreated, tr.address, nil).String()
	onCreated := func(args ...interface{}) {
		created = append(created, args[0].(observer.Event).Payload.(PollCreated))
	}
	observer.LedgerObserver.On(key, onCreated)
	defer observer.LedgerObserver.Off(key, onCreated)

	change, entry, err := tr.createVote("Raise the bridge?", now.Unix()+3600, xrd("100"))
	require.NoError(t, err)
	require.Equal(t, "31", change.Amount.DecimalString())
	require.Equal(t, common.SettlementCurrency, change.Currency)
	require.Equal(t, uint64(1), entry.PollID)
	require.Equal(t, "Raise the bridge?", entry.Statement)
	require.Equal(t, now.Unix()+3600, entry.EndTime)

	r := tr.load()
	require.Equal(t, "69", r.Custodied().DecimalString())
	require.Equal(t, uint64(1), r.NextPollID)

	require.Len(t, created, 1)
	require.Equal(t, entry.Address, created[0].Address)
	require.Equal(t, uint64(1), created[0].PollID)

	tr.l.View(func(tx *ledger.Tx) error {
		p, err := poll.Load(tx, entry.Address)
		require.NoError(t, err)
		require.Equal(t, tr.address, p.Registry)
		require.Equal(t, "creator", p.Creator)

		listing, err := account.Load(tx, p.Listing)
		require.NoError(t, err)
		require.False(t, listing.Virtual)
		require.True(t, listing.OwnerLocked)
		require.Equal(t, r.Owner, listing.Owner)

		e, _ := listing.Metadata.Get(metadata.KeyClaimedEntities)
		require.Equal(t, []string{p.Address}, e.Values)
		e, _ = listing.Metadata.Get(metadata.KeyAccountType)
		require.Equal(t, ListingAccountType, e.Value())
		return nil
	})
}

func TestRegistryCreateVoteExactPayment(t *testing.T) {
	tr := newTestRegistry(t)

	change, _, err := tr.createVote("exact", now.Unix()+60, xrd("69"))
	require.NoError(t, err)
	require.True(t, change.IsEmpty())
	require.Equal(t, "69", tr.load().Custodied().DecimalString())
}

func TestRegistryCreateVoteRejectedPayment(t *testing.T) {
	tr := newTestRegistry(t)

	_, _, err := tr.createVote("cheap", now.Unix()+60, xrd("68.9999999"))
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))

	_, _, err = tr.createVote("foreign", now.Unix()+60, vault.NewBucket("OTHER", common.MustAmountFromDecimalString("100")))
	require.Equal(t, errors.InvalidCurrency.Code, errors.Code(err))

	r := tr.load()
	require.Equal(t, common.Amount(0), r.Custodied())
	require.Equal(t, uint64(0), r.NextPollID)
}

func TestRegistryPollIDsHaveNoGaps(t *testing.T) {
	tr := newTestRegistry(t)

	for i := 1; i <= 3; i++ {
		_, entry, err := tr.createVote("statement", now.Unix()+60, xrd("69"))
		require.NoError(t, err)
		require.Equal(t, uint64(i), entry.PollID)

		// a failed creation does not consume an id
		_, _, err = tr.createVote("statement", now.Unix()+60, xrd("1"))
		require.Error(t, err)
	}

	tr.l.View(func(tx *ledger.Tx) error {
		entries, err := GetEntries(tx, tr.address, nil)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		for i, e := range entries {
			require.Equal(t, uint64(i+1), e.PollID)
		}

		entries, err = GetEntries(tx, tr.address, storage.NewDefaultListOptions(true, []byte("3"), 1))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		require.Equal(t, uint64(2), entries[0].PollID)

		_, err = GetEntries(tx, tr.address, storage.NewDefaultListOptions(false, []byte("three"), 0))
		require.Equal(t, errors.BadRequestParameter.Code, errors.Code(err))

		_, err = GetEntry(tx, tr.address, 4)
		require.Equal(t, errors.PollNotFound.Code, errors.Code(err))
		return nil
	})
}

func TestRegistryVoteFee(t *testing.T) {
	tr := newTestRegistry(t)

	voteFee := func(fee *vault.Bucket) error {
		return tr.l.Execute(nil, func(tx *ledger.Tx) error {
			r, err := Load(tx, tr.address)
			if err != nil {
				return err
			}
			return r.VoteFee(tx, fee)
		})
	}

	require.NoError(t, voteFee(xrd("6.9")))
	require.NoError(t, voteFee(xrd("10")))

	err := voteFee(xrd("6.8999999"))
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))

	err = voteFee(vault.NewBucket("OTHER", common.MustAmountFromDecimalString("10")))
	require.Equal(t, errors.InvalidCurrency.Code, errors.Code(err))

	require.Equal(t, "16.9", tr.load().Custodied().DecimalString())
}

func TestRegistryWithdrawFee(t *testing.T) {
	tr := newTestRegistry(t)
	_, _, err := tr.createVote("statement", now.Unix()+60, xrd("100"))
	require.NoError(t, err)

	withdrawWith := func(presented []credential.Proof, proof credential.Proof) (withdrawn *vault.Bucket, err error) {
		err = tr.l.Execute(presented, func(tx *ledger.Tx) error {
			r, err := Load(tx, tr.address)
			if err != nil {
				return err
			}
			withdrawn, err = r.WithdrawFee(tx, proof)
			return err
		})
		return
	}
	withdraw := func(kp keypair.KP) (*vault.Bucket, error) {
		proof := tr.proof(kp)
		return withdrawWith([]credential.Proof{proof}, proof)
	}

	_, err = withdraw(keypair.Random())
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
	require.Equal(t, "69", tr.load().Custodied().DecimalString())

	// an owner proof signed earlier but not presented to this transaction
	_, err = withdrawWith(nil, tr.proof(tr.owner))
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
	require.Equal(t, "69", tr.load().Custodied().DecimalString())

	_, err = withdrawWith([]credential.Proof{tr.proof(keypair.Random())}, tr.proof(tr.owner))
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
	require.Equal(t, "69", tr.load().Custodied().DecimalString())

	withdrawn, err := withdraw(tr.owner)
	require.NoError(t, err)
	require.Equal(t, "69", withdrawn.Amount.DecimalString())
	require.Equal(t, common.Amount(0), tr.load().Custodied())

	withdrawn, err = withdraw(tr.owner)
	require.NoError(t, err)
	require.True(t, withdrawn.IsEmpty())
}

func TestRegistryUpdateCost(t *testing.T) {
	tr := newTestRegistry(t)

	updateCostWith := func(presented []credential.Proof, proof credential.Proof, price string) error {
		return tr.l.Execute(presented, func(tx *ledger.Tx) error {
			r, err := Load(tx, tr.address)
			if err != nil {
				return err
			}
			return r.UpdateCost(tx, proof, common.MustAmountFromDecimalString(price))
		})
	}
	updateCost := func(kp keypair.KP, price string) error {
		proof := tr.proof(kp)
		return updateCostWith([]credential.Proof{proof}, proof, price)
	}

	err := updateCost(keypair.Random(), "1")
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
	require.Equal(t, "69", tr.load().CreationPrice.DecimalString())

	err = updateCostWith(nil, tr.proof(tr.owner), "1")
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))
	require.Equal(t, "69", tr.load().CreationPrice.DecimalString())

	require.NoError(t, updateCost(tr.owner, "100"))
	r := tr.load()
	require.Equal(t, "100", r.CreationPrice.DecimalString())
	require.Equal(t, "6.9", r.VotePrice.DecimalString())

	_, _, err = tr.createVote("statement", now.Unix()+60, xrd("99"))
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))

	// free polls are allowed
	require.NoError(t, updateCost(tr.owner, "0"))
	change, _, err := tr.createVote("statement", now.Unix()+60, xrd("1"))
	require.NoError(t, err)
	require.Equal(t, "1", change.Amount.DecimalString())

	// prices stay within the total supply
	proof := tr.proof(tr.owner)
	err = tr.l.Execute([]credential.Proof{proof}, func(tx *ledger.Tx) error {
		r, err := Load(tx, tr.address)
		if err != nil {
			return err
		}
		return r.UpdateCost(tx, proof, common.MaximumBalance+1)
	})
	require.Equal(t, errors.MaximumBalanceReached.Code, errors.Code(err))
	require.Equal(t, common.Amount(0), tr.load().CreationPrice)
}

func TestRaiseTheBridge(t *testing.T) {
	tr := newTestRegistry(t)
	a, b, c := keypair.Random(), keypair.Random(), keypair.Random()

	change, entry, err := tr.createVote("Raise the bridge?", now.Unix()+3600, xrd("100"))
	require.NoError(t, err)
	require.Equal(t, "31", change.Amount.DecimalString())
	require.Equal(t, uint64(1), entry.PollID)
	require.Equal(t, "69", tr.load().Custodied().DecimalString())

	require.NoError(t, tr.vote(a, entry.Address, true, "6.9"))
	require.Equal(t, "75.9", tr.load().Custodied().DecimalString())

	err = tr.vote(a, entry.Address, true, "6.9")
	require.Equal(t, errors.AlreadyVoted.Code, errors.Code(err))
	require.Equal(t, "75.9", tr.load().Custodied().DecimalString())

	require.NoError(t, tr.vote(b, entry.Address, false, "7"))
	require.Equal(t, "82.9", tr.load().Custodied().DecimalString())

	tr.clock.Add(time.Hour)
	err = tr.vote(c, entry.Address, true, "6.9")
	require.Equal(t, errors.VotingClosed.Code, errors.Code(err))
	require.Equal(t, "82.9", tr.load().Custodied().DecimalString())

	tr.l.View(func(tx *ledger.Tx) error {
		p, err := poll.Load(tx, entry.Address)
		require.NoError(t, err)
		require.Equal(t, poll.Tally{Ayes: 1, Noes: 1, Total: 2}, p.Tally())
		return nil
	})
}
