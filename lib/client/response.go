package client

import (
	"encoding/json"
	"fmt"
)

type Problem struct {
	Type     string                     `json:"type"`
	Title    string                     `json:"title"`
	Status   int                        `json:"status"`
	Detail   string                     `json:"detail,omitempty"`
	Instance string                     `json:"instance,omitempty"`
	Code     uint                       `json:"code,omitempty"`
	Data     map[string]json.RawMessage `json:"data,omitempty"`
}

type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	if e.Problem.Code > 0 {
		return fmt.Sprintf("%d %s: %s (code=%d)", e.Problem.Status, e.Problem.Type, e.Problem.Title, e.Problem.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.Problem.Status, e.Problem.Type, e.Problem.Title)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type NodeInfo struct {
	Node struct {
		Version struct {
			Version   string `json:"version"`
			GitCommit string `json:"git-commit"`
			GitState  string `json:"git-state"`
			BuildDate string `json:"build-date"`
		} `json:"version"`
		Started  string `json:"started"`
		Endpoint string `json:"endpoint"`
	} `json:"node"`
	Policy struct {
		NetworkID          string `json:"network-id"`
		SettlementCurrency string `json:"settlement-currency"`
		CreationPrice      string `json:"creation-price"`
		VotePrice          string `json:"vote-price"`
		OperationsLimit    int    `json:"operations-limit"`
		RateLimitRuleAPI   string `json:"rate-limit-api"`
	} `json:"policy"`
	Ledger struct {
		Time     string `json:"time"`
		Owner    string `json:"owner"`
		Registry string `json:"registry"`
		Listing  string `json:"listing"`
	} `json:"ledger"`
}

type Account struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Address     string              `json:"address"`
	Owner       string              `json:"owner"`
	OwnerLocked bool                `json:"owner_locked"`
	Balances    map[string]string   `json:"balances"`
	Metadata    map[string][]string `json:"metadata"`
	Virtual     bool                `json:"virtual"`
}

type Registry struct {
	Links struct {
		Self    Link `json:"self"`
		Polls   Link `json:"polls"`
		Listing Link `json:"listing"`
	} `json:"_links"`

	Address       string `json:"address"`
	Owner         string `json:"owner"`
	Currency      string `json:"currency"`
	Custody       string `json:"custody"`
	CreationPrice string `json:"creation_price"`
	VotePrice     string `json:"vote_price"`
	Polls         uint64 `json:"polls"`
	Listing       string `json:"listing"`
}

type Entry struct {
	Links struct {
		Self     Link `json:"self"`
		Poll     Link `json:"poll"`
		Registry Link `json:"registry"`
	} `json:"_links"`

	Registry         string `json:"registry"`
	PollID           uint64 `json:"poll_id"`
	Statement        string `json:"statement"`
	EligibilityAsset string `json:"eligibility_asset"`
	EndTime          int64  `json:"end_time"`
	Address          string `json:"address"`
}

type PageLinks struct {
	Self Link `json:"self"`
	Next Link `json:"next"`
	Prev Link `json:"prev"`
}

type EntriesPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Entry `json:"records"`
	} `json:"_embedded"`
}

type Poll struct {
	Links struct {
		Self     Link `json:"self"`
		Ballots  Link `json:"ballots"`
		Registry Link `json:"registry"`
	} `json:"_links"`

	Address          string `json:"address"`
	Statement        string `json:"statement"`
	EndTime          int64  `json:"end_time"`
	EndTimeISO       string `json:"end_time_iso"`
	Open             bool   `json:"open"`
	EligibilityAsset string `json:"eligibility_asset"`
	Creator          string `json:"creator"`
	Registry         string `json:"registry"`
	Listing          string `json:"listing"`
	Ayes             uint64 `json:"ayes"`
	Noes             uint64 `json:"noes"`
	Total            uint64 `json:"total"`
}

type Ballot struct {
	Links struct {
		Self Link `json:"self"`
		Poll Link `json:"poll"`
	} `json:"_links"`

	Poll     string `json:"poll"`
	Voter    string `json:"voter"`
	Choice   string `json:"choice"`
	At       int64  `json:"at"`
	Sequence uint64 `json:"sequence"`
}

type BallotsPage struct {
	Links    PageLinks `json:"_links"`
	Embedded struct {
		Records []Ballot `json:"records"`
	} `json:"_embedded"`
}

type Result struct {
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	PollID  uint64 `json:"poll_id,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

type Transaction struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
	} `json:"_links"`

	Hash           string            `json:"hash"`
	Source         string            `json:"source"`
	Nonce          uint64            `json:"nonce"`
	Created        string            `json:"created"`
	Confirmed      int64             `json:"confirmed"`
	OperationCount uint64            `json:"operation_count"`
	Operations     []json.RawMessage `json:"operations"`
	Results        []Result          `json:"results"`
}
