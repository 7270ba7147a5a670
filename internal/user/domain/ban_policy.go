package domain

import "time"

// BanPolicy computes the penalty for defaulting on a payment deadline.
type BanPolicy struct{}

// CalculateBanExpiration returns now + the configured number of days. A
// non-positive duration is a configuration bug and panics.
func (BanPolicy) CalculateBanExpiration(currentTime time.Time, banDurationDays int) time.Time {
	if banDurationDays <= 0 {
		panic("ban policy: ban duration must be positive")
	}
	return currentTime.AddDate(0, 0, banDurationDays)
}

// BanForPaymentFailure stamps the user with the computed expiration.
func (p BanPolicy) BanForPaymentFailure(user *User, currentTime time.Time, banDurationDays int) {
	user.Ban(p.CalculateBanExpiration(currentTime, banDurationDays))
}
