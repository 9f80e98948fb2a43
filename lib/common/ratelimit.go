package common

import (
	"github.com/ulule/limiter"
)

var (
	// RateLimitAPI is the default limit of the api, per client ip.
	RateLimitAPI, _ = limiter.NewRateFromFormatted("100-S")
)

type RateLimitRule struct {
	Default limiter.Rate
}

func NewRateLimitRule(rate limiter.Rate) RateLimitRule {
	return RateLimitRule{Default: rate}
}

// IsUnlimited is true when the rule has no limit set.
func (r RateLimitRule) IsUnlimited() bool {
	return r.Default.Limit < 1
}

func (r RateLimitRule) String() string {
	if r.IsUnlimited() {
		return "unlimited"
	}

	return r.Default.Formatted
}
