package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"

	"github.com/sethgrid/pester"

	"boscoin.io/herehere/lib/common"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo          = "/"
	UrlAccount           = "/accounts/{id}"
	UrlRegistry          = "/registries/{id}"
	UrlRegistryPolls     = "/registries/{id}/polls"
	UrlRegistryPoll      = "/registries/{id}/polls/{pollID}"
	UrlPoll              = "/polls/{id}"
	UrlPollBallots       = "/polls/{id}/ballots"
	UrlPollBallot        = "/polls/{id}/ballots/{voter}"
	UrlTransactions      = "/transactions"
	UrlTransactionByHash = "/transactions/{id}"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

// DefaultRetrySetting retries the idempotent requests on connection errors.
var DefaultRetrySetting = &common.RetrySetting{
	MaxRetries:  3,
	Concurrency: 1,
	Backoff:     pester.ExponentialJitterBackoff,
}

type Client struct {
	URL string

	HTTP *common.HTTP2Client
}

func NewClient(url string) *Client {
	httpClient, err := common.NewPersistentHTTP2Client(0, 0, true, DefaultRetrySetting)
	if err != nil {
		panic(err)
	}
	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Get(url, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	url := c.URL + UrlPrefixForAPIV1 + path
	return c.HTTP.Post(url, body, headers)
}

func (c *Client) load(path string, response interface{}, queries ...Q) (err error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	resp, err := c.Get(path+Queries(queries).toQueryString(), headers)
	if err != nil {
		return
	}
	return c.toResponse(resp, response)
}

func (c *Client) LoadNodeInfo() (nodeInfo NodeInfo, err error) {
	err = c.load(UrlNodeInfo, &nodeInfo)
	return
}

func (c *Client) LoadAccount(id string) (account Account, err error) {
	err = c.load(strings.Replace(UrlAccount, "{id}", id, -1), &account)
	return
}

func (c *Client) LoadRegistry(id string) (registry Registry, err error) {
	err = c.load(strings.Replace(UrlRegistry, "{id}", id, -1), &registry)
	return
}

func (c *Client) LoadRegistryPolls(id string, queries ...Q) (page EntriesPage, err error) {
	err = c.load(strings.Replace(UrlRegistryPolls, "{id}", id, -1), &page, queries...)
	return
}

func (c *Client) LoadRegistryPoll(id string, pollID uint64) (entry Entry, err error) {
	url := strings.Replace(UrlRegistryPoll, "{id}", id, -1)
	url = strings.Replace(url, "{pollID}", strconv.FormatUint(pollID, 10), -1)
	err = c.load(url, &entry)
	return
}

func (c *Client) LoadPoll(id string) (poll Poll, err error) {
	err = c.load(strings.Replace(UrlPoll, "{id}", id, -1), &poll)
	return
}

func (c *Client) LoadPollBallots(id string, queries ...Q) (page BallotsPage, err error) {
	err = c.load(strings.Replace(UrlPollBallots, "{id}", id, -1), &page, queries...)
	return
}

func (c *Client) LoadPollBallot(id, voter string) (ballot Ballot, err error) {
	url := strings.Replace(UrlPollBallot, "{id}", id, -1)
	url = strings.Replace(url, "{voter}", voter, -1)
	err = c.load(url, &ballot)
	return
}

func (c *Client) LoadTransaction(id string) (transaction Transaction, err error) {
	err = c.load(strings.Replace(UrlTransactionByHash, "{id}", id, -1), &transaction)
	return
}

// SubmitTransaction posts the serialized transaction and returns the record
// of the applied transaction.
func (c *Client) SubmitTransaction(tx common.Serializable) (transaction Transaction, err error) {
	body, err := tx.Serialize()
	if err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Post(UrlTransactions, body, headers)
	if err != nil {
		return
	}

	err = c.toResponse(resp, &transaction)
	return
}

func (c *Client) Stream(ctx context.Context, path string, handler func(data []byte) error) (err error) {
	request, err := http.NewRequest("GET", c.URL+UrlPrefixForAPIV1+path, nil)
	if err != nil {
		return
	}
	request = request.WithContext(ctx)
	request.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if err = handler(line); err != nil {
			return err
		}
	}
}

// StreamPoll calls `handler` with the poll and again with every new tally,
// until `ctx` is done.
func (c *Client) StreamPoll(ctx context.Context, id string, handler func(Poll)) (err error) {
	url := strings.Replace(UrlPoll, "{id}", id, -1)
	handlerFunc := func(b []byte) (err error) {
		var v Poll
		if err = json.Unmarshal(b, &v); err != nil {
			return err
		}
		handler(v)
		return nil
	}
	return c.Stream(ctx, url, handlerFunc)
}
