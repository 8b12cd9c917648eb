package registry

import (
	"fmt"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/storage"
)

// Entry is the directory record of a poll. Entries are only ever added.
type Entry struct {
	Registry         string `json:"registry"`
	PollID           uint64 `json:"poll_id"`
	Statement        string `json:"statement"`
	EligibilityAsset string `json:"eligibility_asset"`
	EndTime          int64  `json:"end_time"`
	Address          string `json:"address"`
}

func GetEntryKeyPrefix(registry string) string {
	return fmt.Sprintf("rg-poll-%s-", registry)
}

func GetEntryKey(registry string, pollID uint64) string {
	return GetEntryKeyPrefix(registry) + common.SequenceKey(pollID)
}

func insertEntry(tx *ledger.Tx, e Entry) error {
	return tx.Storage().New(GetEntryKey(e.Registry, e.PollID), e)
}

func GetEntry(tx *ledger.Tx, registry string, pollID uint64) (e Entry, err error) {
	if err = tx.Storage().Get(GetEntryKey(registry, pollID), &e); err == errors.StorageRecordDoesNotExist {
		err = errors.PollNotFound.Clone().
			SetData("registry", registry).
			SetData("poll_id", pollID)
	}
	return
}

// GetEntries lists the directory in poll id order. The cursor of the
// options is a poll id.
func GetEntries(tx *ledger.Tx, registry string, options storage.ListOptions) (entries []Entry, err error) {
	prefix := GetEntryKeyPrefix(registry)

	if options != nil && len(options.Cursor()) > 0 {
		var id uint64
		if id, err = common.ParseSequenceKey(string(options.Cursor())); err != nil {
			err = errors.BadRequestParameter.Clone().SetData("cursor", string(options.Cursor()))
			return
		}
		options.SetCursor([]byte(GetEntryKey(registry, id)))
	}

	iterFunc, closeFunc := tx.Storage().GetIterator(prefix, options)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var e Entry
		common.MustUnmarshalJSON(item.Value, &e)
		entries = append(entries, e)
	}

	return
}
