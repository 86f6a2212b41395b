package flow

import (
	"time"

	"github.com/synthgl/genengine/coa"
	"github.com/synthgl/genengine/id"
	"github.com/synthgl/genengine/journal"
	"github.com/synthgl/genengine/rng"
)

// P2PConfig parameterizes the Procure-to-Pay chain per spec.md 4.5 /
// the document_flows.p2p configuration block.
type P2PConfig struct {
	ThreeWayMatchRate     float64
	PartialDeliveryRate   float64
	PriceVarianceRate     float64
	MaxPriceVariancePercent float64
	AveragePOToGRDays     float64
	AverageGRToInvoiceDays float64
	AverageInvoiceToPaymentDays float64
	CashDiscountRate      float64
}

// DefaultP2PConfig mirrors plausible defaults consistent with scenario S3.
func DefaultP2PConfig() P2PConfig {
	return P2PConfig{
		ThreeWayMatchRate:           1.0,
		PartialDeliveryRate:         0.1,
		PriceVarianceRate:           0.15,
		MaxPriceVariancePercent:     5,
		AveragePOToGRDays:           5,
		AverageGRToInvoiceDays:      3,
		AverageInvoiceToPaymentDays: 30,
		CashDiscountRate:            0.1,
	}
}

// P2PChain is one complete Procure-to-Pay chain's output: the four
// documents and the journal entries their creation emits.
type P2PChain struct {
	PO      Document
	GR      Document
	Invoice Document
	Payment Document
	Entries []journal.Entry
	Match   MatchOutcome
}

// P2PEngine drives one Procure-to-Pay chain at a time. It is stateless
// across chains: every chain is built from an independent RNG sub-stream
// keyed on the chain's index, so chains can be generated in parallel by
// partitioning the index space across workers.
type P2PEngine struct {
	Config  P2PConfig
	Chart   *coa.Chart
	Journal *journal.Generator
}

// BuildChain produces the full PO -> GR -> VendorInvoice -> Payment chain
// for a single vendor transaction, starting at startDate.
func (e *P2PEngine) BuildChain(seed rng.Seed, chainIndex uint64, companyCode, vendorID string, startDate time.Time) P2PChain {
	s := rng.SubStream(seed, "p2p", chainIndex)

	quantity := s.IntRange(1, 1000)
	unitPrice := s.IntRange(100, 100000)

	po := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "p2p-po", chainIndex)),
		Kind:           KindPurchaseOrder,
		CompanyCode:    companyCode,
		Counterparty:   vendorID,
		PostingDate:    startDate,
		Quantity:       quantity,
		UnitPriceCents: unitPrice,
		TotalCents:     quantity * unitPrice,
	}

	grDate := startDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AveragePOToGRDays)*2+1)))
	grQuantity := quantity
	if s.Bool(e.Config.PartialDeliveryRate) {
		grQuantity = quantity * s.IntRange(50, 95) / 100
	}
	gr := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "p2p-gr", chainIndex)),
		Kind:           KindGoodsReceipt,
		ParentID:       po.ID,
		CompanyCode:    companyCode,
		Counterparty:   vendorID,
		PostingDate:    grDate,
		Quantity:       grQuantity,
		UnitPriceCents: unitPrice,
		TotalCents:     grQuantity * unitPrice,
	}

	invDate := grDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AverageGRToInvoiceDays)*2+1)))
	invUnitPrice := unitPrice
	if s.Bool(e.Config.PriceVarianceRate) {
		variancePct := (s.Float64()*2 - 1) * e.Config.MaxPriceVariancePercent
		invUnitPrice = unitPrice + int64(float64(unitPrice)*variancePct/100)
	}
	invoice := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "p2p-inv", chainIndex)),
		Kind:           KindVendorInvoice,
		ParentID:       gr.ID,
		CompanyCode:    companyCode,
		Counterparty:   vendorID,
		PostingDate:    invDate,
		Quantity:       grQuantity,
		UnitPriceCents: invUnitPrice,
		TotalCents:     grQuantity * invUnitPrice,
	}

	invoiceEntry := e.Journal.Build(journal.Request{
		Seed: seed, Counter: chainIndex*10 + 1, CompanyCode: companyCode,
		Process: journal.ProcessP2P, Source: journal.SourceInterface,
		PostingDate: invDate, DocumentDate: invDate,
	})
	overrideEntryTotal(&invoiceEntry, invoice.TotalCents, coa.CodeAccountsPayable, true)

	payDate := invDate.AddDate(0, 0, int(s.IntRange(1, int64(e.Config.AverageInvoiceToPaymentDays)*2+1)))
	payTotal := invoice.TotalCents
	if s.Bool(e.Config.CashDiscountRate) {
		payTotal = payTotal * 98 / 100
	}
	payment := Document{
		ID:             id.FromUUIDBytes(id.PrefixDocument, rng.DeterministicUUIDBytes(seed, "p2p-pay", chainIndex)),
		Kind:           KindPayment,
		ParentID:       invoice.ID,
		CompanyCode:    companyCode,
		Counterparty:   vendorID,
		PostingDate:    payDate,
		TotalCents:     payTotal,
	}

	paymentEntry := e.Journal.Build(journal.Request{
		Seed: seed, Counter: chainIndex*10 + 2, CompanyCode: companyCode,
		Process: journal.ProcessP2P, Source: journal.SourceInterface,
		PostingDate: payDate, DocumentDate: payDate,
	})
	overridePaymentEntry(&paymentEntry, payTotal)

	match := MatchMissingDocument
	if s.Bool(e.Config.ThreeWayMatchRate) {
		match = ThreeWayMatch(&po, &gr, &invoice, e.Config.MaxPriceVariancePercent)
	}

	return P2PChain{
		PO: po, GR: gr, Invoice: invoice, Payment: payment,
		Entries: []journal.Entry{invoiceEntry, paymentEntry},
		Match:   match,
	}
}

// overrideEntryTotal forces a two-line entry to match a document-flow
// amount exactly: debit COGS (or AR when debitIsExpense is false), credit
// the control account,
// keeping both lines balanced by construction.
func overrideEntryTotal(entry *journal.Entry, totalCents int64, creditAccount string, debitIsExpense bool) {
	currency := entryCurrency(entry)

	debitAccount := coa.CodeCOGS
	if !debitIsExpense {
		debitAccount = coa.CodeAccountsReceivable
	}

	entry.Lines = []journal.Line{
		{AccountCode: debitAccount, Debit: moneyOf(totalCents, currency), Credit: zeroOf(currency), Description: "document-flow generated debit"},
		{AccountCode: creditAccount, Credit: moneyOf(totalCents, currency), Debit: zeroOf(currency), Description: "document-flow generated credit"},
	}
}

// overridePaymentEntry forces a Payment entry to debit AP and credit Cash
// per spec.md scenario S3's expectation.
func overridePaymentEntry(entry *journal.Entry, totalCents int64) {
	currency := entryCurrency(entry)

	entry.Lines = []journal.Line{
		{AccountCode: coa.CodeAccountsPayable, Debit: moneyOf(totalCents, currency), Credit: zeroOf(currency), Description: "payment clears AP"},
		{AccountCode: coa.CodeCash, Credit: moneyOf(totalCents, currency), Debit: zeroOf(currency), Description: "payment reduces cash"},
	}
}
