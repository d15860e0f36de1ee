package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents one closed position as computed by the analysis server.
// Rows are scoped to a browser session and replaced wholesale on every upload.
type Trade struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	SessionID string `gorm:"index" json:"-"`

	TradeID        string          `json:"id"`
	Contract       string          `gorm:"index" json:"contract"`
	Type           string          `json:"type"` // category label, e.g. "day" or "swing"
	PnL            decimal.Decimal `gorm:"column:pnl;type:numeric" json:"pnl"`
	HoldingPeriod  string          `json:"holding_period"`
	OpenTime       time.Time       `json:"open_time"`
	CloseTime      time.Time       `gorm:"index" json:"close_time"`
	TradeFees      decimal.Decimal `gorm:"type:numeric" json:"trade_fees"`
	FundingFee     decimal.Decimal `gorm:"type:numeric" json:"funding_fee"`
	CumulativePnL  decimal.Decimal `gorm:"column:cumulative_pnl;type:numeric" json:"cumulative_pnl"`
	CumulativeFees decimal.Decimal `gorm:"type:numeric" json:"cumulative_fees"`
}
