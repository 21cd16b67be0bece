package marketdata

import "github.com/shopspring/decimal"

// Market is one entry of the gamma metadata catalog, also embedded in
// position records returned by the data API.
type Market struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Outcomes []string `json:"outcomes"`
	Resolved bool     `json:"resolved"`
}

// Contract is one outcome contract held within a position.
type Contract struct {
	ID         string `json:"id"`
	Outcome    string `json:"outcome"`
	IsResolved bool   `json:"isResolved"`
}

// Position is a single raw position record from the data API.
type Position struct {
	Market    Market     `json:"market"`
	Contracts []Contract `json:"contracts"`
}

// PositionResponse is the data API's positions payload for one wallet.
type PositionResponse struct {
	UserAddress string     `json:"user_address"`
	Positions   []Position `json:"positions"`
}

// PortfolioValue breaks down a wallet's aggregate value.
type PortfolioValue struct {
	In         decimal.Decimal `json:"in"`
	Out        decimal.Decimal `json:"out"`
	Unrealized decimal.Decimal `json:"unrealized"`
}

// ValueResponse is the data API's portfolio value payload for one wallet.
type ValueResponse struct {
	UserAddress string         `json:"user_address"`
	Value       PortfolioValue `json:"value"`
}
