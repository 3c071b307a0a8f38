// Package finmath holds hard-coded financial arithmetic used by the
// advisory boundary: contractor tax reserves, used-EV credit eligibility,
// car affordability, and safety-net checks. Keeping these as plain
// functions prevents downstream consumers from re-deriving the numbers.
package finmath

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultReserveRate is the standard 1099 set-aside: self-employment tax
// plus an income tax buffer.
var DefaultReserveRate = decimal.NewFromFloat(0.30)

// ContractorSplit divides a gross deposit into tax reserve and disposable
// portions.
type ContractorSplit struct {
	Gross      decimal.Decimal
	TaxReserve decimal.Decimal
	Disposable decimal.Decimal
}

// ContractorNet splits a raw deposit at the given reserve rate, rounding
// the reserve to cents.
func ContractorNet(gross, rate decimal.Decimal) ContractorSplit {
	reserve := gross.Mul(rate).Round(2)
	return ContractorSplit{
		Gross:      gross,
		TaxReserve: reserve,
		Disposable: gross.Sub(reserve),
	}
}

// Used-EV federal credit limits (IRC 25E, single filer).
var (
	evPriceCap  = decimal.NewFromInt(25_000)
	evIncomeCap = decimal.NewFromInt(75_000)
	evCreditMax = decimal.NewFromInt(4_000)
)

// EVCreditResult reports used-EV credit eligibility.
type EVCreditResult struct {
	Eligible      bool
	Credit        decimal.Decimal
	Disqualifiers []string
}

// UsedEVCredit checks eligibility for the federal used-EV credit against
// the sale price and adjusted gross income caps.
func UsedEVCredit(price, agi decimal.Decimal) EVCreditResult {
	res := EVCreditResult{Eligible: true, Credit: evCreditMax}

	if price.GreaterThan(evPriceCap) {
		res.Eligible = false
		res.Disqualifiers = append(res.Disqualifiers,
			fmt.Sprintf("price $%s exceeds the $%s limit", price.StringFixed(0), evPriceCap.StringFixed(0)))
	}
	if agi.GreaterThan(evIncomeCap) {
		res.Eligible = false
		res.Disqualifiers = append(res.Disqualifiers,
			fmt.Sprintf("income $%s exceeds the $%s AGI limit", agi.StringFixed(0), evIncomeCap.StringFixed(0)))
	}
	if !res.Eligible {
		res.Credit = decimal.Zero
	}
	return res
}

// AffordabilityStatus grades total car cost against monthly net income.
type AffordabilityStatus string

const (
	AffordabilitySafe      AffordabilityStatus = "SAFE"      // under 15% of net
	AffordabilityCaution   AffordabilityStatus = "CAUTION"   // 15-20% of net
	AffordabilityDangerous AffordabilityStatus = "DANGEROUS" // over 20% of net
)

// CarAffordability is the result of AssessCar.
type CarAffordability struct {
	TotalMonthly decimal.Decimal
	RatioPercent decimal.Decimal
	Status       AffordabilityStatus
}

// AssessCar totals the monthly cost of ownership and grades it against
// net income.
func AssessCar(monthlyNet, payment, insurance, charging decimal.Decimal) CarAffordability {
	total := payment.Add(insurance).Add(charging)
	ratio := total.Div(monthlyNet).Mul(decimal.NewFromInt(100)).Round(1)

	status := AffordabilitySafe
	switch {
	case ratio.GreaterThan(decimal.NewFromInt(20)):
		status = AffordabilityDangerous
	case ratio.GreaterThan(decimal.NewFromInt(15)):
		status = AffordabilityCaution
	}

	return CarAffordability{TotalMonthly: total, RatioPercent: ratio, Status: status}
}

// SafetyNet reports whether an emergency fund target is met.
type SafetyNet struct {
	Full   bool
	Excess decimal.Decimal
}

// CheckSafetyNet compares a balance against its target; Excess is zero
// when the target is not yet met.
func CheckSafetyNet(target, balance decimal.Decimal) SafetyNet {
	excess := balance.Sub(target)
	if excess.IsNegative() {
		excess = decimal.Zero
	}
	return SafetyNet{Full: balance.GreaterThanOrEqual(target), Excess: excess}
}
