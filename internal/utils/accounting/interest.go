package accounting

import (
	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred    = decimal.NewFromInt(100)
	bpsDivisor = decimal.NewFromInt(10000)
	decimalOne = decimal.NewFromInt(1)
)

// RatePerPeriod converts an annual percentage into the percentage applied per period.
func RatePerPeriod(annualRate decimal.Decimal, frequency domain.InterestFrequency) decimal.Decimal {
	return annualRate.Div(decimal.NewFromInt(frequency.PeriodsPerYear()))
}

// PeriodicInterest is one period of compound interest on balance:
// round(balance * ((1 + ratePerPeriod/100)^1 - 1)), rounded half away from zero.
func PeriodicInterest(balance int64, annualRate decimal.Decimal, frequency domain.InterestFrequency) int64 {
	growth := decimalOne.Add(RatePerPeriod(annualRate, frequency).Div(hundred)).Pow(decimalOne).Sub(decimalOne)
	return decimal.NewFromInt(balance).Mul(growth).Round(0).IntPart()
}

// SimpleInterestBps is round(principal * bps / 10000), rounded half away from zero.
func SimpleInterestBps(principal int64, bps int) int64 {
	return decimal.NewFromInt(principal).Mul(decimal.NewFromInt(int64(bps))).Div(bpsDivisor).Round(0).IntPart()
}
