package bonus

import "github.com/shopspring/decimal"

// Compute applies the bonus policy to one month of attendance counts.
// Below the minimum-presence threshold there is no bonus at all; above
// it, each late arrival and each absence subtracts its penalty from the
// base, floored at zero. Decimal arithmetic throughout: summing
// float-rounded amounts across a whole office drifts by pennies.
func Compute(presentDays, lateDays, absentDays int, cfg Config) decimal.Decimal {
	if presentDays < cfg.MinimumPresenceDays {
		return decimal.Zero
	}

	amount := cfg.BaseAmount.
		Sub(cfg.LatePenalty.Mul(decimal.NewFromInt(int64(lateDays)))).
		Sub(cfg.AbsencePenalty.Mul(decimal.NewFromInt(int64(absentDays))))

	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
