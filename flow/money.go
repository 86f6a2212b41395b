package flow

import (
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/types"
)

// entryCurrency returns the currency in use on entry's first line, or usd
// if the entry has no lines yet.
func entryCurrency(entry *journal.Entry) string {
	if len(entry.Lines) == 0 {
		return "usd"
	}
	if entry.Lines[0].Debit.Currency != "" {
		return entry.Lines[0].Debit.Currency
	}
	return entry.Lines[0].Credit.Currency
}

func moneyOf(amountCents int64, currency string) types.Money {
	return types.Money{Amount: amountCents, Currency: currency}
}

func zeroOf(currency string) types.Money {
	return types.Zero(currency)
}
