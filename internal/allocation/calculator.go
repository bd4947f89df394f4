package allocation

import (
	"errors"
	"fmt"
	"math"
	"sort"

	. "folio/internal/domain"
	"folio/internal/precision"
)

// every mutation below works on a copy. when a change
// can't be made the caller gets its holdings back as-is
// along with one of these
var (
	ErrUnknownHolding         = errors.New("holding not found")
	ErrHoldingExists          = errors.New("holding already in portfolio")
	ErrHoldingLocked          = errors.New("holding is locked")
	ErrHoldingDisabled        = errors.New("holding is disabled")
	ErrInsufficientAllocation = errors.New("locked holdings leave no room for the requested allocation")
	ErrNoAdjustableHoldings   = errors.New("no unlocked holdings available to absorb the change")
)

// split sorts the enabled holdings other than exclude into
// locked basis points and the tickers free to move
func split(holdings Holdings, exclude string) (BasisPoints, []string) {
	locked := BasisPoints(0)
	available := []string{}
	for _, ticker := range holdings.Tickers() {
		h := holdings[ticker]
		if ticker == exclude || h.Disabled {
			continue
		}
		if h.Locked {
			locked += h.BasisPoints
		} else {
			available = append(available, ticker)
		}
	}
	return locked, available
}

func UpdateAllocation(holdings Holdings, ticker string, newPercentage float64) (Holdings, error) {
	target, ok := holdings[ticker]
	if !ok {
		return holdings, fmt.Errorf("failed to update %s: %w", ticker, ErrUnknownHolding)
	}
	if target.Locked {
		return holdings, fmt.Errorf("failed to update %s: %w", ticker, ErrHoldingLocked)
	}
	if target.Disabled {
		return holdings, fmt.Errorf("failed to update %s: %w", ticker, ErrHoldingDisabled)
	}

	out := precision.Fill(holdings)
	newBP := precision.ClampBasisPoints(precision.PercentToBasisPoints(newPercentage))

	lockedBP, available := split(out, ticker)
	remaining := FullAllocation - newBP - lockedBP
	if remaining < 0 {
		return holdings, fmt.Errorf("failed to set %s to %.2f%%: %w", ticker, newPercentage, ErrInsufficientAllocation)
	}
	if len(available) == 0 && remaining != 0 {
		return holdings, fmt.Errorf("failed to set %s to %.2f%%: %w", ticker, newPercentage, ErrNoAdjustableHoldings)
	}

	out[ticker] = precision.SetBasisPoints(out[ticker], newBP)
	return RedistributeAmongAvailable(out, available, remaining, true), nil
}

// RedistributeAmongAvailable hands amount out to tickers in
// proportion to what they hold now, or equally when they
// all hold nothing. with setDirectly the share replaces the
// current value, otherwise it is added on top. tickers are
// walked in sorted order and the last one gets whatever is
// left so the amount is always handed out exactly
func RedistributeAmongAvailable(holdings Holdings, tickers []string, amountToDistribute BasisPoints, setDirectly bool) Holdings {
	out := holdings.Copy()
	if len(tickers) == 0 || amountToDistribute < 0 {
		return out
	}

	sorted := make([]string, len(tickers))
	copy(sorted, tickers)
	sort.Strings(sorted)

	currentTotal := BasisPoints(0)
	for _, ticker := range sorted {
		currentTotal += out[ticker].BasisPoints
	}

	assigned := BasisPoints(0)
	for i, ticker := range sorted {
		h := out[ticker]

		var share BasisPoints
		switch {
		case i == len(sorted)-1:
			share = amountToDistribute - assigned
		case currentTotal == 0:
			share = amountToDistribute / BasisPoints(len(sorted))
		default:
			// floor so the last share never goes negative
			share = BasisPoints(math.Floor(float64(amountToDistribute) * float64(h.BasisPoints) / float64(currentTotal)))
		}
		assigned += share

		if setDirectly {
			out[ticker] = precision.SetBasisPoints(h, share)
		} else {
			out[ticker] = precision.SetBasisPoints(h, h.BasisPoints+share)
		}
	}

	return out
}

// absorb gives freed basis points to the unlocked holdings.
// if everything left is locked the first one is unlocked
// to take it
func absorb(holdings Holdings, exclude string, freed BasisPoints) Holdings {
	if freed <= 0 {
		return holdings
	}
	_, available := split(holdings, exclude)
	if len(available) == 0 {
		for _, ticker := range holdings.Tickers() {
			h := holdings[ticker]
			if ticker == exclude || h.Disabled {
				continue
			}
			h.Locked = false
			holdings[ticker] = h
			available = []string{ticker}
			break
		}
	}
	if len(available) == 0 {
		return holdings
	}
	return RedistributeAmongAvailable(holdings, available, freed, false)
}

func RedistributeAfterRemoval(holdings Holdings, ticker string) (Holdings, error) {
	if _, ok := holdings[ticker]; !ok {
		return holdings, fmt.Errorf("failed to remove %s: %w", ticker, ErrUnknownHolding)
	}

	out := precision.Fill(holdings)
	freed := out[ticker].BasisPoints
	delete(out, ticker)

	return absorb(out, "", freed), nil
}

// AddHolding puts a new ticker in at percentage, taking the
// room from the unlocked holdings. the first enabled holding
// always starts at 100%
func AddHolding(holdings Holdings, ticker string, percentage float64) (Holdings, error) {
	if _, ok := holdings[ticker]; ok {
		return holdings, fmt.Errorf("failed to add %s: %w", ticker, ErrHoldingExists)
	}

	out := precision.Fill(holdings)
	if precision.TotalBasisPoints(out) == 0 {
		out[ticker] = precision.SetBasisPoints(Holding{}, FullAllocation)
		return out, nil
	}

	out[ticker] = precision.SetBasisPoints(Holding{}, 0)
	if percentage <= 0 {
		return out, nil
	}

	updated, err := UpdateAllocation(out, ticker, percentage)
	if err != nil {
		return holdings, err
	}
	return updated, nil
}

func ToggleLock(holdings Holdings, ticker string) (Holdings, error) {
	h, ok := holdings[ticker]
	if !ok {
		return holdings, fmt.Errorf("failed to toggle lock on %s: %w", ticker, ErrUnknownHolding)
	}
	out := holdings.Copy()
	h.Locked = !h.Locked
	out[ticker] = h
	return out, nil
}

// ToggleDisable zeroes a holding and spreads what it held
// over the others, or brings a disabled holding back at 0%
func ToggleDisable(holdings Holdings, ticker string) (Holdings, error) {
	if _, ok := holdings[ticker]; !ok {
		return holdings, fmt.Errorf("failed to toggle %s: %w", ticker, ErrUnknownHolding)
	}

	out := precision.Fill(holdings)
	h := out[ticker]

	if h.Disabled {
		h.Disabled = false
		if precision.TotalBasisPoints(out) == 0 {
			out[ticker] = precision.SetBasisPoints(h, FullAllocation)
		} else {
			out[ticker] = precision.SetBasisPoints(h, 0)
		}
		return out, nil
	}

	freed := h.BasisPoints
	h.Disabled = true
	out[ticker] = precision.SetBasisPoints(h, 0)
	return absorb(out, ticker, freed), nil
}

// EqualWeight splits whatever the locked holdings leave
// evenly over the unlocked ones
func EqualWeight(holdings Holdings) (Holdings, error) {
	out := precision.Fill(holdings)
	lockedBP, available := split(out, "")
	if len(available) == 0 {
		return holdings, ErrNoAdjustableHoldings
	}
	remaining := FullAllocation - lockedBP
	if remaining < 0 {
		return holdings, ErrInsufficientAllocation
	}
	for _, ticker := range available {
		out[ticker] = precision.SetBasisPoints(out[ticker], 0)
	}
	return RedistributeAmongAvailable(out, available, remaining, true), nil
}
