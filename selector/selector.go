// Package selector derives the order book and wallet views from a State
// snapshot. Every derived view is memoized on the identity of its inputs, so
// calling it again with an unchanged snapshot hands back the same value.
package selector

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dexbook/memo"
	"dexbook/orderbook"
	"dexbook/wallet"
)

type Selectors struct {
	BaseTokenBalance       *memo.Selector[*State, *wallet.TokenBalance]
	QuoteTokenBalance      *memo.Selector[*State, *wallet.TokenBalance]
	OpenOrders             *memo.Selector[*State, []orderbook.Order]
	OpenSellOrders         *memo.Selector[*State, []orderbook.Order]
	OpenBuyOrders          *memo.Selector[*State, []orderbook.Order]
	MySizeOrders           *memo.Selector[*State, []orderbook.SizeOrder]
	Spread                 *memo.Selector[*State, decimal.Decimal]
	SpreadInPercentage     *memo.Selector[*State, decimal.Decimal]
	OrderBook              *memo.Selector[*State, *orderbook.OrderBook]
	Tokens                 *memo.Selector[*State, []wallet.Token]
	UserCollectibles       *memo.Selector[*State, map[string]wallet.Collectible]
	OtherUsersCollectibles *memo.Selector[*State, map[string]wallet.Collectible]
}

// New wires the selector graph. Side selectors read OpenOrders, the spread
// and book selectors read the side selectors, so a snapshot that only
// changes balances leaves the book untouched.
func New(logger *zap.Logger) *Selectors {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("selector")
	s := &Selectors{}

	s.BaseTokenBalance = memo.New3(TokenBalances, WethTokenBalance, BaseToken,
		traced3(log, "base_token_balance", wallet.SearchToken))
	s.QuoteTokenBalance = memo.New3(TokenBalances, WethTokenBalance, QuoteToken,
		traced3(log, "quote_token_balance", wallet.SearchToken))

	s.OpenOrders = memo.New2(Orders, Web3State,
		traced2(log, "open_orders", orderbook.OpenOrders))
	s.OpenSellOrders = memo.New1(s.OpenOrders.Select,
		traced1(log, "open_sell_orders", orderbook.OpenSellOrders))
	s.OpenBuyOrders = memo.New1(s.OpenOrders.Select,
		traced1(log, "open_buy_orders", orderbook.OpenBuyOrders))
	s.MySizeOrders = memo.New1(UserOrders,
		traced1(log, "my_size_orders", orderbook.MySizeOrders))

	s.Spread = memo.New2(s.OpenBuyOrders.Select, s.OpenSellOrders.Select,
		traced2(log, "spread", orderbook.Spread))
	s.SpreadInPercentage = memo.New2(s.OpenBuyOrders.Select, s.OpenSellOrders.Select,
		traced2(log, "spread_in_percentage", orderbook.SpreadPercentage))
	s.OrderBook = memo.New3(s.OpenSellOrders.Select, s.OpenBuyOrders.Select, s.MySizeOrders.Select,
		traced3(log, "order_book", orderbook.Build))

	s.Tokens = memo.New1(TokenBalances, traced1(log, "tokens", wallet.Tokens))
	s.UserCollectibles = memo.New2(EthAccount, AllCollectibles,
		traced2(log, "user_collectibles", wallet.UserCollectibles))
	s.OtherUsersCollectibles = memo.New2(EthAccount, AllCollectibles,
		traced2(log, "other_users_collectibles", wallet.OtherUsersCollectibles))

	return s
}

func traced1[A, R any](log *zap.Logger, name string, fn func(A) R) func(A) R {
	return func(a A) R {
		log.Debug("recompute", zap.String("selector", name))
		return fn(a)
	}
}

func traced2[A, B, R any](log *zap.Logger, name string, fn func(A, B) R) func(A, B) R {
	return func(a A, b B) R {
		log.Debug("recompute", zap.String("selector", name))
		return fn(a, b)
	}
}

func traced3[A, B, C, R any](log *zap.Logger, name string, fn func(A, B, C) R) func(A, B, C) R {
	return func(a A, b B, c C) R {
		log.Debug("recompute", zap.String("selector", name))
		return fn(a, b, c)
	}
}
