package models

import "github.com/shopspring/decimal"

func init() {
	// prices and totals go over the wire as JSON numbers; quoted input still decodes
	decimal.MarshalJSONWithoutQuotes = true
}
