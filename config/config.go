// Package config defines the engine's configuration tree: the recognized
// sections from spec.md §6, expressed as a plain Go struct bound by the
// caller (YAML/JSON decoding is the caller's responsibility) and validated
// at construction time with go-playground/validator/v10.
package config

import "time"

// Config is the full, recognized configuration surface. Every section maps
// 1:1 to a table row in spec.md §6.
type Config struct {
	Global           Global                `validate:"required"`
	Companies        []Company             `validate:"required,min=1,dive"`
	ChartOfAccounts  ChartOfAccounts       `validate:"required"`
	Transactions     Transactions          `validate:"required"`
	MasterData       MasterData            `validate:"required"`
	DocumentFlows    DocumentFlows         `validate:"required"`
	Fraud            Fraud
	AnomalyInjection AnomalyInjection
	Output           Output                `validate:"required"`
}

// Global carries run-wide parameters: seed, industry, calendar span, and
// the resource budget the orchestrator enforces.
type Global struct {
	// Seed is optional: nil means the caller did not pin a seed, and the
	// orchestrator uses seed 1, so an unpinned run is still reproducible.
	Seed             *uint64       `validate:"omitempty"`
	Industry         string        `validate:"required"`
	StartDate        time.Time     `validate:"required"`
	PeriodMonths     int           `validate:"required,min=1,max=120"`
	GroupCurrency    string        `validate:"required,len=3"`
	WorkerThreads    int           `validate:"required,min=1"`
	MemoryLimitBytes int64         `validate:"required,min=1"`
}

// Company is one legal entity in the generated group.
type Company struct {
	Code         string  `validate:"required"`
	Name         string  `validate:"required"`
	Currency     string  `validate:"required,len=3"`
	Country      string  `validate:"required,len=2"`
	VolumeWeight float64 `validate:"required,gt=0"`
}

// ChartOfAccounts parameterizes coa.Build per company.
type ChartOfAccounts struct {
	Complexity       string `validate:"required,oneof=small medium large"`
	IndustrySpecific bool
	MinDepth         int `validate:"min=1"`
	MaxDepth         int `validate:"min=1"`
}

// Transactions parameterizes the batch journal-entry generator.
type Transactions struct {
	TargetCount           int                `validate:"required,min=1"`
	LineItemDistribution  map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	AmountDistribution    AmountDistribution `validate:"required"`
	SourceDistribution    map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	Seasonality           Seasonality
}

// AmountDistribution parameterizes sample.AmountSampler.
type AmountDistribution struct {
	Min                    int64   `validate:"gte=0"`
	Max                    int64   `validate:"gtefield=Min"`
	Mu                     float64
	Sigma                  float64 `validate:"gte=0"`
	RoundNumberProbability float64 `validate:"gte=0,lte=1"`
	NiceNumberProbability  float64 `validate:"gte=0,lte=1"`
	BenfordCompliance      bool
	ExemptSources          []string
}

// Seasonality parameterizes sample.TemporalSampler's composed multipliers.
type Seasonality struct {
	WeekendActivity       float64            `validate:"gte=0,lte=1"`
	MonthEndMultiplier    float64            `validate:"gte=0"`
	QuarterEndMultiplier  float64            `validate:"gte=0"`
	YearEndMultiplier     float64            `validate:"gte=0"`
	IndustrySpikes        map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	HolidaySuppression    float64            `validate:"gte=0,lte=1"`
	Regions               []string
}

// MasterDataCount configures one master-data entity's row count.
type MasterDataCount struct {
	Count int `validate:"min=0"`
}

// MasterData parameterizes masterdata.Generator.
type MasterData struct {
	Vendors   MasterDataCount
	Customers MasterDataCount
	Materials MasterDataCount
	Assets    MasterDataCount
	Employees MasterDataCount
}

// P2P parameterizes flow.P2PEngine.
type P2P struct {
	Enabled                     bool
	TargetChains                int     `validate:"min=0"`
	ThreeWayMatchRate           float64 `validate:"gte=0,lte=1"`
	PartialDeliveryRate         float64 `validate:"gte=0,lte=1"`
	PriceVarianceRate           float64 `validate:"gte=0,lte=1"`
	MaxPriceVariancePercent     float64 `validate:"gte=0"`
	AveragePOToGRDays           float64 `validate:"gte=0"`
	AverageGRToInvoiceDays      float64 `validate:"gte=0"`
	AverageInvoiceToPaymentDays float64 `validate:"gte=0"`
	CashDiscountRate            float64 `validate:"gte=0,lte=1"`
	LineCountDistribution       map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
}

// O2C parameterizes flow.O2CEngine.
type O2C struct {
	Enabled                      bool
	TargetChains                 int     `validate:"min=0"`
	CreditCheckFailureRate        float64 `validate:"gte=0,lte=1"`
	PartialDeliveryRate           float64 `validate:"gte=0,lte=1"`
	BadDebtRate                   float64 `validate:"gte=0,lte=1"`
	ReturnRate                    float64 `validate:"gte=0,lte=1"`
	AverageOrderToDeliveryDays    float64 `validate:"gte=0"`
	AverageDeliveryToInvoiceDays  float64 `validate:"gte=0"`
	AverageInvoiceToPaymentDays   float64 `validate:"gte=0"`
}

// DocumentFlows groups the P2P and O2C chain-generation blocks.
type DocumentFlows struct {
	P2P P2P
	O2C O2C
}

// Fraud holds the fraud section's settings. They are validated, but the
// orchestrator does not pass them to anomaly.Injector: Fraud-category rates
// come from AnomalyInjection.CategoryWeights, and VariantSplitTransaction
// uses its own fixed threshold rather than ApprovalThresholds.
type Fraud struct {
	Enabled               bool
	FraudRate             float64            `validate:"gte=0,lte=0.1"`
	FraudTypeDistribution map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
	ApprovalThresholds    []int64
}

// AnomalyInjection parameterizes anomaly.Injector across all five
// categories.
type AnomalyInjection struct {
	TotalRate       float64            `validate:"gte=0,lte=1"`
	CategoryWeights map[string]float64 `validate:"omitempty,dive,keys,required,endkeys,gte=0"`
}

// Output describes the caller-owned sink's format, not consumed by the
// core beyond passing it through — the core never parses or writes these
// files itself (spec.md §6: the sink owns serialization).
type Output struct {
	Format      string `validate:"required,oneof=csv json parquet"`
	Compression string
	Directory   string `validate:"required"`
}
