package relayer

import (
	"github.com/shopspring/decimal"

	"dexbook/wallet"
)

// Message is the snapshot document a relayer client hands over: wallet state
// and the known orders, with every amount as a decimal string.
type Message struct {
	EthAccount       string                        `json:"ethAccount"`
	Web3State        string                        `json:"web3State"`
	NetworkID        int                           `json:"networkId"`
	EthBalance       string                        `json:"ethBalance"`
	GasPriceInWei    string                        `json:"gasPriceInWei"`
	EstimatedTimeMs  int64                         `json:"estimatedTimeMs"`
	TokenBalances    []wallet.TokenBalance         `json:"tokenBalances"`
	WethTokenBalance *wallet.TokenBalance          `json:"wethTokenBalance"`
	BaseToken        string                        `json:"baseToken"`
	QuoteToken       string                        `json:"quoteToken"`
	EthInUSD         string                        `json:"ethInUsd"`
	Orders           []Order                       `json:"orders"`
	UserOrders       []Order                       `json:"userOrders"`
	Collectibles     map[string]wallet.Collectible `json:"collectibles"`
}

type Order struct {
	Hash       string `json:"hash"`
	Maker      string `json:"maker"`
	Side       string `json:"side"`
	Price      string `json:"price"`
	Size       string `json:"size"`
	Filled     string `json:"filled"`
	Status     string `json:"status"`
	Expiration int64  `json:"expiration"`
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
