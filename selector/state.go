package selector

import (
	"github.com/shopspring/decimal"

	"dexbook/orderbook"
	"dexbook/wallet"
)

// State is one immutable snapshot of everything the derived views read.
// Replace a slice or map to signal a change; never edit one in place.
type State struct {
	Blockchain   Blockchain
	Relayer      Relayer
	Market       Market
	Collectibles Collectibles
}

type Blockchain struct {
	EthAccount       string
	TokenBalances    []wallet.TokenBalance
	Web3State        orderbook.Web3State
	EthBalance       decimal.Decimal
	WethTokenBalance *wallet.TokenBalance
	GasInfo          GasInfo
	NetworkID        int
}

type GasInfo struct {
	GasPriceInWei   decimal.Decimal
	EstimatedTimeMs int64
}

type Relayer struct {
	Orders     []orderbook.Order
	UserOrders []orderbook.Order
}

type Market struct {
	BaseToken  *wallet.Token
	QuoteToken *wallet.Token
	EthInUSD   *decimal.Decimal
}

type Collectibles struct {
	AllCollectibles     map[string]wallet.Collectible
	CollectibleSelected *wallet.Collectible
}

func EthAccount(s *State) string { return s.Blockchain.EthAccount }
func TokenBalances(s *State) []wallet.TokenBalance { return s.Blockchain.TokenBalances }
func Web3State(s *State) orderbook.Web3State { return s.Blockchain.Web3State }
func EthBalance(s *State) decimal.Decimal { return s.Blockchain.EthBalance }
func WethTokenBalance(s *State) *wallet.TokenBalance { return s.Blockchain.WethTokenBalance }
func Orders(s *State) []orderbook.Order { return s.Relayer.Orders }
func UserOrders(s *State) []orderbook.Order { return s.Relayer.UserOrders }
func BaseToken(s *State) *wallet.Token { return s.Market.BaseToken }
func QuoteToken(s *State) *wallet.Token { return s.Market.QuoteToken }
func EthInUSD(s *State) *decimal.Decimal { return s.Market.EthInUSD }
func GasPriceInWei(s *State) decimal.Decimal { return s.Blockchain.GasInfo.GasPriceInWei }
func EstimatedTxTimeMs(s *State) int64 { return s.Blockchain.GasInfo.EstimatedTimeMs }
func NetworkID(s *State) int { return s.Blockchain.NetworkID }
func AllCollectibles(s *State) map[string]wallet.Collectible { return s.Collectibles.AllCollectibles }
func SelectedCollectible(s *State) *wallet.Collectible { return s.Collectibles.CollectibleSelected }

// WethBalance is the WETH balance, zero when it is not known yet.
func WethBalance(s *State) decimal.Decimal {
	if s.Blockchain.WethTokenBalance == nil {
		return decimal.Zero
	}
	return s.Blockchain.WethTokenBalance.Balance
}

func CollectibleByID(s *State, id string) (wallet.Collectible, bool) {
	c, ok := s.Collectibles.AllCollectibles[id]
	return c, ok
}
