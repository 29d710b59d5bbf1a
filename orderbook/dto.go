package orderbook

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

func (s Side) Valid() bool {
	return s == Buy || s == Sell
}

// Status mirrors the 0x order status reported by the relayer.
type Status string

const (
	Invalid                 Status = "INVALID"
	InvalidMakerAssetAmount Status = "INVALID_MAKER_ASSET_AMOUNT"
	InvalidTakerAssetAmount Status = "INVALID_TAKER_ASSET_AMOUNT"
	Fillable                Status = "FILLABLE"
	Expired                 Status = "EXPIRED"
	FullyFilled             Status = "FULLY_FILLED"
	Cancelled               Status = "CANCELLED"
	SignatureInvalid        Status = "SIGNATURE_INVALID"
)

// Web3State is the wallet connectivity state.
type Web3State string

const (
	Done         Web3State = "done"
	Error        Web3State = "error"
	Loading      Web3State = "loading"
	NotInstalled Web3State = "not_installed"
	Locked       Web3State = "locked"
	Connecting   Web3State = "connecting"
)

type Order struct {
	Hash       string
	Maker      string
	Side       Side
	Price      decimal.Decimal
	Size       decimal.Decimal
	Filled     *decimal.Decimal
	Status     Status
	Expiration time.Time
}

// PricedLevel is one row of the book: every open order at Price merged.
type PricedLevel struct {
	Side  Side            `json:"side"`
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

type SizeOrder struct {
	Size  decimal.Decimal `json:"size"`
	Side  Side            `json:"side"`
	Price decimal.Decimal `json:"price"`
}

type OrderBook struct {
	SellOrders   []PricedLevel `json:"sellOrders"`
	BuyOrders    []PricedLevel `json:"buyOrders"`
	MySizeOrders []SizeOrder   `json:"mySizeOrders"`
}
