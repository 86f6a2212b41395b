// Package flow implements the coupled P2P (Procure-to-Pay) and O2C
// (Order-to-Cash) document-flow state machines: multi-document chains with
// back-references, three-way match, and partial delivery.
package flow

import (
	"time"

	"github.com/synthgl/genengine/id"
)

// Kind is the closed set of document types the flow engines emit.
type Kind string

const (
	KindPurchaseOrder  Kind = "PurchaseOrder"
	KindGoodsReceipt   Kind = "GoodsReceipt"
	KindVendorInvoice  Kind = "VendorInvoice"
	KindPayment        Kind = "Payment"
	KindSalesOrder     Kind = "SalesOrder"
	KindDelivery       Kind = "Delivery"
	KindCustomerInvoice Kind = "CustomerInvoice"
	KindCustomerPayment Kind = "CustomerPayment"
)

// Document is one node in a flow chain: identifier, optional parent
// back-reference, and header attributes. Chains are addressed by stable
// identifier, never by ownership pointer, so they can be built and
// inspected without an arena allocator.
type Document struct {
	ID          id.DocumentID
	Kind        Kind
	ParentID    id.DocumentID // zero value (Nil) for root documents
	CompanyCode string
	Counterparty string // vendor or customer ID as a string
	PostingDate time.Time
	Quantity    int64
	UnitPriceCents int64
	TotalCents  int64
}

// HasParent reports whether this document has a predecessor in the chain.
func (d Document) HasParent() bool { return !d.ParentID.IsNil() }

// PrecedesOK reports whether child's posting date is not before parent's,
// the temporal-ordering contract every flow chain must satisfy.
func PrecedesOK(parent, child Document) bool {
	return !child.PostingDate.Before(parent.PostingDate)
}
