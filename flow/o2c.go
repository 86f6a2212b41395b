package flow

import (
	"time"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/rng"
)

// O2CConfig parameterizes the Order-to-Cash chain per spec.md 4.5 /
// the document_flows.o2c configuration block.
type O2CConfig struct {
	CreditCheckFailureRate   float64
	PartialDeliveryRate      float64
	BadDebtRate              float64
	ReturnRate               float64
	AverageOrderToDeliveryDays   float64
	AverageDeliveryToInvoiceDays float64
	AverageInvoiceToPaymentDays  float64
}

// DefaultO2CConfig mirrors plausible defaults for the Order-to-Cash chain.
func DefaultO2CConfig() O2CConfig {
	return O2CConfig{
		CreditCheckFailureRate:       0.03,
		PartialDeliveryRate:          0.08,
		BadDebtRate:                  0.02,
		ReturnRate:                   0.05,
		AverageOrderToDeliveryDays:   4,
		AverageDeliveryToInvoiceDays: 2,
		AverageInvoiceToPaymentDays:  30,
	}
}

// O2CChain is one complete Order-to-Cash chain's output.
type O2CChain struct {
	Order          Document
	Delivery       Document
	Invoice        Document
	Payment        Document
	CreditApproved bool
	Returned       bool
	BadDebt        bool
	Entries        []journal.Entry
}

// O2CEngine drives one Order-to-Cash chain at a time, mirroring P2PEngine's
// shape: stateless across chains, every chain keyed on its own RNG
// sub-stream so chains can be built in parallel across workers.
type O2CEngine struct {
	Config  O2CConfig
	Chart   *coa.Chart
	Journal *journal.Generator
}

// BuildChain produces the SalesOrder -> CreditCheck -> Delivery ->
// CustomerInvoice -> CustomerPayment chain for a single customer
// transaction, starting at startDate.
func (e *O2CEngine) BuildChain(seed rng.Seed, chainIndex uint64, companyCode, customerID string, startDate time.Time) O2CChain {
	s := rng.SubStream(seed, "o2c", chainIndex)

	quantity := s.IntRange(1, 1000)
	unitPrice := s.IntRange(100, 100000)

	order := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "o2c-so", chainIndex)),
		Kind:           KindSalesOrder,
		CompanyCode:    companyCode,
		Counterparty:   customerID,
		PostingDate:    startDate,
		Quantity:       quantity,
		UnitPriceCents: unitPrice,
		TotalCents:     quantity * unitPrice,
	}

	approved := !s.Bool(e.Config.CreditCheckFailureRate)
	if !approved {
		return O2CChain{Order: order, CreditApproved: false}
	}

	delivDate := startDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AverageOrderToDeliveryDays)*2+1)))
	delivQuantity := quantity
	if s.Bool(e.Config.PartialDeliveryRate) {
		delivQuantity = quantity * s.IntRange(50, 95) / 100
	}
	delivery := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "o2c-dlv", chainIndex)),
		Kind:           KindDelivery,
		ParentID:       order.ID,
		CompanyCode:    companyCode,
		Counterparty:   customerID,
		PostingDate:    delivDate,
		Quantity:       delivQuantity,
		UnitPriceCents: unitPrice,
		TotalCents:     delivQuantity * unitPrice,
	}

	returned := s.Bool(e.Config.ReturnRate)
	invQuantity := delivQuantity
	if returned {
		invQuantity = delivQuantity * s.IntRange(60, 95) / 100
	}

	invDate := delivDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AverageDeliveryToInvoiceDays)*2+1)))
	invoice := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "o2c-inv", chainIndex)),
		Kind:           KindCustomerInvoice,
		ParentID:       delivery.ID,
		CompanyCode:    companyCode,
		Counterparty:   customerID,
		PostingDate:    invDate,
		Quantity:       invQuantity,
		UnitPriceCents: unitPrice,
		TotalCents:     invQuantity * unitPrice,
	}

	invoiceEntry := e.Journal.Build(journal.Request{
		Seed: seed, Counter: chainIndex*10 + 1, CompanyCode: companyCode,
		Process: journal.ProcessO2C, Source: journal.SourceInterface,
		PostingDate: invDate, DocumentDate: invDate,
	})
	overrideEntryTotal(&invoiceEntry, invoice.TotalCents, coa.CodeRevenue, false)

	payDate := invDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AverageInvoiceToPaymentDays)*2+1)))
	badDebt := s.Bool(e.Config.BadDebtRate)
	payTotal := invoice.TotalCents
	if badDebt {
		payTotal = 0
	}

	payment := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "o2c-pay", chainIndex)),
		Kind:           KindCustomerPayment,
		ParentID:       invoice.ID,
		CompanyCode:    companyCode,
		Counterparty:   customerID,
		PostingDate:    payDate,
		TotalCents:     payTotal,
	}

	entries := []journal.Entry{invoiceEntry}
	if !badDebt {
		paymentEntry := e.Journal.Build(journal.Request{
			Seed: seed, Counter: chainIndex*10 + 2, CompanyCode: companyCode,
			Process: journal.ProcessO2C, Source: journal.SourceInterface,
			PostingDate: payDate, DocumentDate: payDate,
		})
		overrideCustomerPaymentEntry(&paymentEntry, payTotal)
		entries = append(entries, paymentEntry)
	} else {
		writeOffEntry := e.Journal.Build(journal.Request{
			Seed: seed, Counter: chainIndex*10 + 3, CompanyCode: companyCode,
			Process: journal.ProcessO2C, Source: journal.SourceAdjustment,
			PostingDate: payDate, DocumentDate: payDate,
		})
		overrideBadDebtWriteOff(&writeOffEntry, invoice.TotalCents)
		entries = append(entries, writeOffEntry)
	}

	return O2CChain{
		Order: order, Delivery: delivery, Invoice: invoice, Payment: payment,
		CreditApproved: true, Returned: returned, BadDebt: badDebt,
		Entries: entries,
	}
}

// overrideCustomerPaymentEntry forces a CustomerPayment entry to debit Cash
// and credit AR.
func overrideCustomerPaymentEntry(entry *journal.Entry, totalCents int64) {
	currency := entryCurrency(entry)
	entry.Lines = []journal.Line{
		{AccountCode: coa.CodeCash, Debit: moneyOf(totalCents, currency), Credit: zeroOf(currency), Description: "customer payment received"},
		{AccountCode: coa.CodeAccountsReceivable, Credit: moneyOf(totalCents, currency), Debit: zeroOf(currency), Description: "customer payment clears AR"},
	}
}

// overrideBadDebtWriteOff books a bad-debt write-off: debit an expense
// account (reusing COGS as the catch-all expense control account), credit
// AR, for the uncollected invoice amount.
func overrideBadDebtWriteOff(entry *journal.Entry, totalCents int64) {
	currency := entryCurrency(entry)
	entry.Lines = []journal.Line{
		{AccountCode: coa.CodeCOGS, Debit: moneyOf(totalCents, currency), Credit: zeroOf(currency), Description: "bad debt write-off"},
		{AccountCode: coa.CodeAccountsReceivable, Credit: moneyOf(totalCents, currency), Debit: zeroOf(currency), Description: "AR written off"},
	}
}
