package poll

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
	"boscoin.io/herehere/lib/storage"
	"boscoin.io/herehere/lib/vault"
)

const testCollectorBlueprint = "TestCollector"

// testCollector keeps every fee it is given and refuses the empty ones.
type testCollector struct {
	Address   string        `json:"address"`
	Collected common.Amount `json:"collected"`
}

func (c *testCollector) ComponentAddress() string { return c.Address }
func (c *testCollector) Blueprint() string        { return testCollectorBlueprint }

func (c *testCollector) VoteFee(tx *ledger.Tx, fee *vault.Bucket) error {
	if err := fee.CheckPayment("XRD", 1); err != nil {
		return err
	}
	c.Collected += fee.TakeAll().Amount
	return tx.Storage().Set("test-collector-"+c.Address, c)
}

func init() {
	ledger.RegisterBlueprint(testCollectorBlueprint, func(tx *ledger.Tx, address string) (ledger.Component, error) {
		c := &testCollector{}
		if err := tx.Storage().Get("test-collector-"+address, c); err != nil {
			return nil, err
		}
		return c, nil
	})
}

var endTime = time.Unix(1700000000, 0)

type testPoll struct {
	t         *testing.T
	l         *ledger.Ledger
	clock     *ledger.FixedClock
	collector string
	address   string
}

func newTestPoll(t *testing.T, eligibilityAsset string) *testPoll {
	l, clock := ledger.NewTestLedger(endTime.Add(-time.Hour))
	tp := &testPoll{t: t, l: l, clock: clock}

	err := l.Execute(nil, func(tx *ledger.Tx) error {
		address, err := tx.AllocateComponentAddress(testCollectorBlueprint)
		require.NoError(t, err)
		require.NoError(t, tx.Storage().New("test-collector-"+address, &testCollector{Address: address}))
		require.NoError(t, tx.Globalize(address, testCollectorBlueprint))
		tp.collector = address

		p, err := Instantiate(tx, endTime.Unix(), "creator", eligibilityAsset, "Raise the bridge?", address, "account_listing")
		require.NoError(t, err)
		tp.address = p.Address
		return nil
	})
	require.NoError(t, err)

	return tp
}

func (tp *testPoll) vote(kp keypair.KP, voter string, choice bool, fee common.Amount) error {
	var proofs []credential.Proof
	if kp != nil {
		proof, err := credential.NewProof(kp, tp.l.Config().NetworkID, "vote")
		require.NoError(tp.t, err)
		proofs = append(proofs, proof)
	}

	return tp.l.Execute(proofs, func(tx *ledger.Tx) error {
		p, err := Load(tx, tp.address)
		if err != nil {
			return err
		}
		return p.Vote(tx, voter, choice, vault.NewBucket("XRD", fee))
	})
}

func (tp *testPoll) load() (p *Poll, collected common.Amount) {
	tp.l.View(func(tx *ledger.Tx) (err error) {
		p, err = Load(tx, tp.address)
		require.NoError(tp.t, err)

		c := &testCollector{}
		require.NoError(tp.t, tx.Storage().Get("test-collector-"+tp.collector, c))
		collected = c.Collected
		return
	})
	return
}

func TestPollInstantiate(t *testing.T) {
	tp := newTestPoll(t, "")
	p, _ := tp.load()

	require.Equal(t, "Raise the bridge?", p.Statement)
	require.Equal(t, endTime.Unix(), p.EndTime)
	require.Equal(t, "creator", p.Creator)
	require.Equal(t, tp.collector, p.Registry)
	require.Equal(t, Tally{}, p.Tally())
	require.True(t, ledger.IsComponentAddress(p.Address))

	e, _ := p.Metadata.Get(metadata.KeyDappDefinition)
	require.True(t, e.Locked)
	require.Equal(t, "account_listing", e.Value())
	require.Equal(t, metadata.LockedRoles(), p.Metadata.Roles)

	tp.l.View(func(tx *ledger.Tx) error {
		c, err := tx.Resolve(p.Address)
		require.NoError(t, err)
		require.Equal(t, Blueprint, c.Blueprint())
		return nil
	})
}

func TestPollVote(t *testing.T) {
	tp := newTestPoll(t, "")
	alice, bob := keypair.Random(), keypair.Random()

	var events []observer.Event
	key := observer.NewEvent(observer.EventVoteCast, tp.address, nil).String()
	onVote := func(args ...interface{}) { events = append(events, args[0].(observer.Event)) }
	observer.LedgerObserver.On(key, onVote)
	defer observer.LedgerObserver.Off(key, onVote)

	require.NoError(t, tp.vote(alice, alice.Address(), true, 5))
	require.NoError(t, tp.vote(bob, bob.Address(), false, 7))

	p, collected := tp.load()
	require.Equal(t, Tally{Ayes: 1, Noes: 1, Total: 2}, p.Tally())
	require.Equal(t, common.Amount(12), collected)

	require.Len(t, events, 2)
	require.Equal(t, VoteCast{Poll: tp.address, Voter: alice.Address(), Choice: true, At: tp.clock.Now().Unix()}, events[0].Payload)

	tp.l.View(func(tx *ledger.Tx) error {
		b, err := GetBallot(tx, tp.address, alice.Address())
		require.NoError(t, err)
		require.True(t, b.Choice)
		require.Equal(t, "aye", b.ChoiceString())
		require.Equal(t, tp.clock.Now().Unix(), b.At)

		ballots, err := GetBallots(tx, tp.address, nil)
		require.NoError(t, err)
		require.Len(t, ballots, 2)
		require.Equal(t, alice.Address(), ballots[0].Voter)
		require.Equal(t, bob.Address(), ballots[1].Voter)

		ballots, err = GetBallots(tx, tp.address, storage.NewDefaultListOptions(false, []byte(ballots[0].SequenceCursor()), 0))
		require.NoError(t, err)
		require.Len(t, ballots, 1)
		require.Equal(t, bob.Address(), ballots[0].Voter)
		return nil
	})
}

func TestPollVoteUnauthorized(t *testing.T) {
	tp := newTestPoll(t, "")
	alice, mallory := keypair.Random(), keypair.Random()

	err := tp.vote(mallory, alice.Address(), true, 5)
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))

	err = tp.vote(nil, alice.Address(), true, 5)
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))

	err = tp.vote(mallory, "account_unknown", true, 5)
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))

	p, collected := tp.load()
	require.Equal(t, Tally{}, p.Tally())
	require.Equal(t, common.Amount(0), collected)
}

func TestPollVoteByProvisionedAccount(t *testing.T) {
	tp := newTestPoll(t, "")
	owner, mallory := keypair.Random(), keypair.Random()

	var address string
	require.NoError(t, tp.l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := account.Create(tx, credential.Require(owner.Address()))
		address = ac.Address
		return err
	}))

	err := tp.vote(mallory, address, true, 5)
	require.Equal(t, errors.Unauthorized.Code, errors.Code(err))

	require.NoError(t, tp.vote(owner, address, true, 5))
}

func TestPollVoteRejectedFeeIsNotRecorded(t *testing.T) {
	tp := newTestPoll(t, "")
	alice := keypair.Random()

	err := tp.vote(alice, alice.Address(), true, 0)
	require.Equal(t, errors.InsufficientPayment.Code, errors.Code(err))

	p, _ := tp.load()
	require.Equal(t, Tally{}, p.Tally())

	require.NoError(t, tp.vote(alice, alice.Address(), true, 5))
}

func TestPollVoteClosed(t *testing.T) {
	tp := newTestPoll(t, "")
	alice, bob := keypair.Random(), keypair.Random()

	tp.clock.Set(endTime.Add(-time.Second))
	require.NoError(t, tp.vote(alice, alice.Address(), true, 5))

	// closed exactly at the end time
	tp.clock.Set(endTime)
	err := tp.vote(bob, bob.Address(), true, 5)
	require.Equal(t, errors.VotingClosed.Code, errors.Code(err))

	p, collected := tp.load()
	require.False(t, p.IsOpen(endTime.Unix()))
	require.True(t, p.IsOpen(endTime.Unix()-1))
	require.Equal(t, uint64(1), p.Tally().Total)
	require.Equal(t, common.Amount(5), collected)
}

func TestPollVoteTwice(t *testing.T) {
	tp := newTestPoll(t, "")
	alice := keypair.Random()

	require.NoError(t, tp.vote(alice, alice.Address(), true, 5))

	// neither the same nor the other choice
	err := tp.vote(alice, alice.Address(), true, 5)
	require.Equal(t, errors.AlreadyVoted.Code, errors.Code(err))
	err = tp.vote(alice, alice.Address(), false, 5)
	require.Equal(t, errors.AlreadyVoted.Code, errors.Code(err))

	// after the end, closed wins over already voted
	tp.clock.Set(endTime.Add(time.Hour))
	err = tp.vote(alice, alice.Address(), false, 5)
	require.Equal(t, errors.VotingClosed.Code, errors.Code(err))

	p, collected := tp.load()
	require.Equal(t, Tally{Ayes: 1, Total: 1}, p.Tally())
	require.Equal(t, common.Amount(5), collected)
}

func TestPollVoteEligibility(t *testing.T) {
	tp := newTestPoll(t, "MEMBER")
	member, stranger := keypair.Random(), keypair.Random()

	require.NoError(t, tp.l.Execute(nil, func(tx *ledger.Tx) error {
		ac, err := account.Load(tx, member.Address())
		require.NoError(t, err)
		require.NoError(t, ac.Deposit(vault.NewBucket("MEMBER", 1)))
		return ac.Save(tx)
	}))

	err := tp.vote(stranger, stranger.Address(), true, 5)
	require.Equal(t, errors.NotEligible.Code, errors.Code(err))

	require.NoError(t, tp.vote(member, member.Address(), false, 5))

	p, _ := tp.load()
	require.Equal(t, Tally{Noes: 1, Total: 1}, p.Tally())
}
