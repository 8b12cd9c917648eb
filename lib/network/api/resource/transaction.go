package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/herehere/lib/transaction"
)

type Transaction struct {
	r transaction.Record
}

func NewTransaction(r transaction.Record) *Transaction {
	return &Transaction{r: r}
}

func (t Transaction) GetMap() hal.Entry {
	return hal.Entry{
		"hash":            t.r.Hash,
		"source":          t.r.Source,
		"nonce":           t.r.Nonce,
		"created":         t.r.Created,
		"confirmed":       t.r.Confirmed,
		"operation_count": len(t.r.Operations),
		"operations":      t.r.Operations,
		"results":         t.r.Results,
	}
}

func (t Transaction) Resource() *hal.Resource {
	r := hal.NewResource(t, t.LinkSelf())
	r.AddLink("account", hal.NewLink(expandURL(URLAccounts, "id", t.r.Source)))
	return r
}

func (t Transaction) LinkSelf() string {
	return expandURL(URLTransactionHash, "id", t.r.Hash)
}
