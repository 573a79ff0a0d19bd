package config

// Skip decides when an auction flip may be bought without the manual
// confirmation step. Criteria are disjunctive: any one of them is enough.
type Skip struct {
	Always           bool  `env:"ALWAYS" envDefault:"false"`
	MinProfit        int64 `env:"MIN_PROFIT" envDefault:"1000000"`
	UserFinder       bool  `env:"USER_FINDER" envDefault:"false"`
	Skins            bool  `env:"SKINS" envDefault:"false"`
	ProfitPercentage int   `env:"PROFIT_PERCENTAGE" envDefault:"50"`
	MinPrice         int64 `env:"MIN_PRICE" envDefault:"10000000"`
}
