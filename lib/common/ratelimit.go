package common

import (
	"fmt"
	"strings"

	"github.com/ulule/limiter"
)

type RateLimitRule struct {
	Default     limiter.Rate
	ByIPAddress map[string]limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{
		Default:     rate,
		ByIPAddress: map[string]limiter.Rate{},
	}
}

// ParseRateLimitRule parses the formatted rates like "100-S" and
// "127.0.0.1=unlimited"; "unlimited" disables the limit.
func ParseRateLimitRule(defaultRate string, byIP map[string]string) (rule RateLimitRule, err error) {
	var rate limiter.Rate
	if rate, err = ParseRate(defaultRate); err != nil {
		return
	}
	rule = NewRateLimitRule(rate)

	for ip, s := range byIP {
		if rate, err = ParseRate(s); err != nil {
			return
		}
		rule.ByIPAddress[ip] = rate
	}

	return
}

// ParseRate parses a formatted rate; the period letter is case insensitive.
func ParseRate(s string) (rate limiter.Rate, err error) {
	if s == "unlimited" {
		return
	}

	values := strings.Split(s, "-")
	if len(values) == 2 {
		s = values[0] + "-" + strings.ToUpper(values[1])
	}

	if rate, err = limiter.NewRateFromFormatted(s); err != nil {
		err = fmt.Errorf("invalid rate limit %q: %v", s, err)
	}

	return
}
