// Package coa builds a company's hierarchical chart of accounts: a forest
// of GLAccount nodes keyed by a stable string code, with canonical control
// accounts guaranteed present at fixed codes so downstream generators can
// reference them by constant.
package coa

// AccountType is one of the five fundamental accounting classifications.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// Canonical control account codes every generated chart must contain,
// referenced by constant throughout the document-flow and journal-entry
// generators.
const (
	CodeCash             = "1000"
	CodeAccountsReceivable = "1100"
	CodeInventory        = "1300"
	CodeAccountsPayable  = "2000"
	CodeIntercompany     = "2100" // clearing account for matched IC pairs and their elimination entries
	CodeRetainedEarnings = "3000"
	CodeRevenue          = "4000"
	CodeCOGS             = "5000"
)

// GLAccount is a single node in a company's chart of accounts.
type GLAccount struct {
	Code       string
	Name       string
	Type       AccountType
	Subtype    string
	ParentCode string // empty for a root account
	Depth      int
}

// Chart is a company's full chart of accounts: a map from code to account,
// built once and treated as read-only thereafter.
type Chart struct {
	CompanyCode string
	Accounts    map[string]GLAccount
	byType      map[AccountType][]string
}

// Get returns the account for code and whether it exists.
func (c *Chart) Get(code string) (GLAccount, bool) {
	a, ok := c.Accounts[code]
	return a, ok
}

// Exists reports whether code is a valid account in this chart — the
// check the journal-entry generator and invariant tests use for "every
// referenced GL account exists in the company's chart."
func (c *Chart) Exists(code string) bool {
	_, ok := c.Accounts[code]
	return ok
}

// CodesByType returns every account code of the given type, in stable
// (insertion) order — callers must never range a map directly when
// picking an account for a stochastic draw, since map iteration order is
// randomized and would break determinism.
func (c *Chart) CodesByType(t AccountType) []string {
	return c.byType[t]
}

// ParentType returns the account type of code's parent, or ("", false) if
// code is a root account. Used to enforce the invariant that a parent's
// type equals its children's type.
func (c *Chart) ParentType(code string) (AccountType, bool) {
	a, ok := c.Accounts[code]
	if !ok || a.ParentCode == "" {
		return "", false
	}
	parent, ok := c.Accounts[a.ParentCode]
	if !ok {
		return "", false
	}
	return parent.Type, true
}
