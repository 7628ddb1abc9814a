package model

// Settings holds planning and reporting defaults.
type Settings struct {
	StockLength     float64 `json:"stock_length" yaml:"stock_length" mapstructure:"stock_length"`                // Length of one stock bar
	Unit            string  `json:"unit" yaml:"unit" mapstructure:"unit"`                                        // Display unit, e.g. "m" or "mm"
	Decimals        int     `json:"decimals" yaml:"decimals" mapstructure:"decimals"`                            // Decimal places in reports
	MaxSubsetSize   int     `json:"max_subset_size" yaml:"max_subset_size" mapstructure:"max_subset_size"`       // 0 = no cap on pieces per bar search
	MinOffcutLength float64 `json:"min_offcut_length" yaml:"min_offcut_length" mapstructure:"min_offcut_length"` // Shortest remnant worth keeping
	PricePerBar     float64 `json:"price_per_bar" yaml:"price_per_bar" mapstructure:"price_per_bar"`
	WastePercent    float64 `json:"waste_percent" yaml:"waste_percent" mapstructure:"waste_percent"` // Extra purchase allowance, e.g. 10 for 10%
}

// DefaultStockLength is the stock length used when the operator gives none.
const DefaultStockLength = 12.0

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() Settings {
	return Settings{
		StockLength:     DefaultStockLength,
		Unit:            "m",
		Decimals:        2,
		MaxSubsetSize:   0,
		MinOffcutLength: 0.5,
		PricePerBar:     0,
		WastePercent:    10,
	}
}
