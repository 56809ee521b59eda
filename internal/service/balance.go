package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tallybook/tally/internal/model"
	"github.com/tallybook/tally/internal/store"
)

// Window is an optional time filter over the owning transaction's
// timestamp. Both bounds are inclusive; a nil bound leaves that side open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

type BalanceService struct {
	repo store.Repository
}

func NewBalanceService(repo store.Repository) *BalanceService {
	return &BalanceService{repo: repo}
}

// ComputeBalance sums the splits of the given accounts within the window
// (debits positive, credits negative), flips the sign for credit-normal
// reporting and rounds the exact total once, half away from zero, to the
// currency's minor unit. All referenced accounts must already hold the
// query currency; the engine never converts.
func (bs *BalanceService) ComputeBalance(accountUIDs []string, currency string, normal model.SplitType, w Window) (model.Money, error) {
	if len(accountUIDs) == 0 {
		return model.ZeroMoney(currency), nil
	}

	for _, uid := range accountUIDs {
		acc, err := bs.repo.GetAccountByUID(uid)
		if err != nil {
			return model.Money{}, err
		}
		if acc.Currency != currency {
			return model.Money{}, fmt.Errorf("account %s holds %s, balance requested in %s: %w",
				acc.Name, acc.Currency, currency, model.ErrCurrencyMismatch)
		}
	}

	total, err := bs.computeExact(accountUIDs, w)
	if err != nil {
		return model.Money{}, err
	}

	if normal == model.Credit {
		total = total.Neg()
	}

	// The single presentation rounding. Everything before this point is
	// exact.
	digits := model.MinorUnitDigits(currency)
	minor := total.Round(digits).Shift(digits).IntPart()
	return model.MoneyFromMinorUnits(minor, currency), nil
}

// computeExact keeps the running sum as an arbitrary-precision decimal so
// no intermediate rounding can compound across splits.
func (bs *BalanceService) computeExact(accountUIDs []string, w Window) (decimal.Decimal, error) {
	rows, err := bs.repo.BalanceRows(accountUIDs, w.Start, w.End)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range rows {
		d := model.FractionToDecimal(r.ValueNum, r.ValueDenom)
		if r.Type != model.Debit {
			d = d.Neg()
		}
		total = total.Add(d)
	}
	return total, nil
}
