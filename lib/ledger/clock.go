package ledger

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
)

// Clock is the time oracle of the ledger.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock only moves when it is told to.
type FixedClock struct {
	sync.RWMutex
	t time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.RLock()
	defer c.RUnlock()

	return c.t
}

func (c *FixedClock) Set(t time.Time) {
	c.Lock()
	defer c.Unlock()

	c.t = t
}

func (c *FixedClock) Add(d time.Duration) {
	c.Lock()
	defer c.Unlock()

	c.t = c.t.Add(d)
}

// NTPClock corrects the local time by the offset measured against a ntp
// server.
type NTPClock struct {
	sync.RWMutex
	host   string
	offset time.Duration
	query  func(string) (time.Duration, error)
}

func NewNTPClock(host string) *NTPClock {
	return &NTPClock{
		host: host,
		query: func(host string) (time.Duration, error) {
			response, err := ntp.Query(host)
			if err != nil {
				return 0, err
			}
			return response.ClockOffset, nil
		},
	}
}

// Sync queries the ntp server; on failure the previous offset is kept.
func (c *NTPClock) Sync() error {
	offset, err := c.query(c.host)
	if err != nil {
		log.Warn("failed to query ntp server; keep the previous offset", "host", c.host, "error", err)
		return err
	}

	c.Lock()
	c.offset = offset
	c.Unlock()

	log.Debug("ntp offset updated", "host", c.host, "offset", offset)
	return nil
}

func (c *NTPClock) Offset() time.Duration {
	c.RLock()
	defer c.RUnlock()

	return c.offset
}

func (c *NTPClock) Now() time.Time {
	return time.Now().Add(c.Offset())
}
