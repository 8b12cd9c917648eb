package node

import (
	"encoding/json"
	"fmt"

	"github.com/ulule/limiter"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/version"
)

// NodeInfo is served by the api root.
type NodeInfo struct {
	Node   NodeInfoNode   `json:"node"`
	Policy NodePolicy     `json:"policy"`
	Ledger NodeLedgerInfo `json:"ledger"`
}

type NodeInfoNode struct {
	Version  NodeVersion `json:"version"`
	Started  string      `json:"started"`
	Endpoint string      `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID          string        `json:"network-id"`
	SettlementCurrency string        `json:"settlement-currency"`
	CreationPrice      common.Amount `json:"creation-price"` // creation price of a new registry
	VotePrice          common.Amount `json:"vote-price"`     // vote price of a new registry
	OperationsLimit    int           `json:"operations-limit"`
	RateLimitRuleAPI   string        `json:"rate-limit-api"`
}

type NodeLedgerInfo struct {
	Time     string `json:"time"`
	Owner    string `json:"owner"`
	Registry string `json:"registry"`
	Listing  string `json:"listing"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}

func NewNodeInfo(config common.Config, endpoint string) NodeInfo {
	return NodeInfo{
		Node: NodeInfoNode{
			Version: NodeVersion{
				Version:   version.Version,
				GitCommit: version.GitCommit,
				GitState:  version.GitState,
				BuildDate: version.BuildDate,
			},
			Started:  common.NowISO8601(),
			Endpoint: endpoint,
		},
		Policy: NodePolicy{
			NetworkID:          string(config.NetworkID),
			SettlementCurrency: config.SettlementCurrency,
			CreationPrice:      config.CreationPrice,
			VotePrice:          config.VotePrice,
			OperationsLimit:    config.OpsLimit,
			RateLimitRuleAPI:   formatRate(config.RateLimitRuleAPI.Default),
		},
	}
}

func formatRate(rate limiter.Rate) string {
	if rate.Limit < 1 {
		return "unlimited"
	}
	return fmt.Sprintf("%d per %s", rate.Limit, rate.Period)
}

func NewNodeInfoFromJSON(b []byte) (nodeInfo NodeInfo, err error) {
	err = json.Unmarshal(b, &nodeInfo)
	return
}
