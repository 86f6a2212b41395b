package config

import "time"

// Default returns a minimal, internally consistent Config for a single
// manufacturing company — the configuration the Quick Start example
// builds on before overriding individual sections.
func Default() Config {
	start := time.Date(time.Now().Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC)

	return Config{
		Global: Global{
			Industry:         "manufacturing",
			StartDate:        start,
			PeriodMonths:     12,
			GroupCurrency:    "usd",
			WorkerThreads:    4,
			MemoryLimitBytes: 2 << 30, // 2 GiB
		},
		Companies: []Company{
			{Code: "1000", Name: "Default Co", Currency: "usd", Country: "us", VolumeWeight: 1.0},
		},
		ChartOfAccounts: ChartOfAccounts{
			Complexity:       "medium",
			IndustrySpecific: true,
			MinDepth:         2,
			MaxDepth:         5,
		},
		Transactions: Transactions{
			TargetCount: 10000,
			AmountDistribution: AmountDistribution{
				Min: 100, Max: 100_000_000, Mu: 7, Sigma: 1.2,
				RoundNumberProbability: 0.1, NiceNumberProbability: 0.15,
				BenfordCompliance: true,
			},
			SourceDistribution: map[string]float64{
				"manual": 0.2, "interface": 0.5, "batch": 0.2, "recurring": 0.08, "adjustment": 0.02,
			},
			Seasonality: Seasonality{
				WeekendActivity:      0.08,
				MonthEndMultiplier:   1.4,
				QuarterEndMultiplier: 1.7,
				YearEndMultiplier:    2.0,
				HolidaySuppression:   0.9,
				Regions:              []string{"US"},
			},
		},
		MasterData: MasterData{
			Vendors:   MasterDataCount{Count: 200},
			Customers: MasterDataCount{Count: 300},
			Materials: MasterDataCount{Count: 500},
			Assets:    MasterDataCount{Count: 50},
			Employees: MasterDataCount{Count: 100},
		},
		DocumentFlows: DocumentFlows{
			P2P: P2P{
				Enabled: true, TargetChains: 1000, ThreeWayMatchRate: 0.9,
				PartialDeliveryRate: 0.1, PriceVarianceRate: 0.15, MaxPriceVariancePercent: 5,
				AveragePOToGRDays: 5, AverageGRToInvoiceDays: 3, AverageInvoiceToPaymentDays: 30,
				CashDiscountRate: 0.1,
			},
			O2C: O2C{
				Enabled: true, TargetChains: 1500, CreditCheckFailureRate: 0.03,
				PartialDeliveryRate: 0.08, BadDebtRate: 0.02, ReturnRate: 0.05,
				AverageOrderToDeliveryDays: 4, AverageDeliveryToInvoiceDays: 2, AverageInvoiceToPaymentDays: 30,
			},
		},
		Fraud: Fraud{
			Enabled:   false,
			FraudRate: 0,
			ApprovalThresholds: []int64{10000, 50000, 250000},
		},
		AnomalyInjection: AnomalyInjection{
			TotalRate: 0.01,
			CategoryWeights: map[string]float64{
				"fraud": 0.2, "error": 0.3, "process_issue": 0.2, "statistical": 0.2, "relational": 0.1,
			},
		},
		Output: Output{
			Format:    "json",
			Directory: "./out",
		},
	}
}
