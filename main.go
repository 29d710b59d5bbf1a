package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"dexbook/config"
	"dexbook/logger"
	"dexbook/order"
	"dexbook/orderbook"
	"dexbook/pricefeed"
	"dexbook/relayer"
	"dexbook/selector"
	"dexbook/wallet"
)

type Output struct {
	OrderBook         *orderbook.OrderBook `json:"orderBook"`
	Spread            decimal.Decimal      `json:"spread"`
	SpreadPercentage  decimal.Decimal      `json:"spreadPercentage"`
	BaseTokenBalance  *wallet.TokenBalance `json:"baseTokenBalance"`
	QuoteTokenBalance *wallet.TokenBalance `json:"quoteTokenBalance"`
	Order             *order.Order         `json:"order,omitempty"`
	FeeInWeth         *decimal.Decimal     `json:"feeInWeth,omitempty"`
	FeeInUSD          *decimal.Decimal     `json:"feeInUsd,omitempty"`
}

func main() {
	configPath := flag.String("config", "", "path to TOML configuration file")
	snapshotPath := flag.String("snapshot", "", "relayer snapshot, overrides the configured one")
	side := flag.String("side", "", "build an order: buy or sell")
	amount := flag.String("amount", "", "order amount in base token units")
	price := flag.String("price", "", "order price in WETH per base token")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *snapshotPath != "" {
		cfg.Snapshot = *snapshotPath
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	out, err := run(context.Background(), cfg, log, *side, *amount, *price)
	if err != nil {
		log.Error("derive order book", zap.Error(err))
		os.Exit(1)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Error("marshal output", zap.Error(err))
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, side, amount, price string) (*Output, error) {
	state, err := relayer.NewFileSource(cfg.Snapshot).Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sel := selector.New(log)
	out := &Output{
		OrderBook:         sel.OrderBook.Select(state),
		Spread:            sel.Spread.Select(state),
		SpreadPercentage:  sel.SpreadInPercentage.Select(state),
		BaseTokenBalance:  sel.BaseTokenBalance.Select(state),
		QuoteTokenBalance: sel.QuoteTokenBalance.Select(state),
	}
	bid, _ := out.OrderBook.BestBid()
	ask, _ := out.OrderBook.BestAsk()
	log.Info("order book derived",
		zap.Int("sell_levels", len(out.OrderBook.SellOrders)),
		zap.Int("buy_levels", len(out.OrderBook.BuyOrders)),
		zap.Stringer("best_bid", bid.Price),
		zap.Stringer("best_ask", ask.Price),
		zap.Stringer("spread", out.Spread),
	)

	if side == "" {
		return out, nil
	}
	if err := buildOrder(ctx, cfg, log, state, out, side, amount, price); err != nil {
		return nil, err
	}
	return out, nil
}

func buildOrder(ctx context.Context, cfg *config.Config, log *zap.Logger, state *selector.State, out *Output, side, amount, price string) error {
	s := orderbook.Side(strings.ToUpper(side))
	if !s.Valid() {
		return errors.Errorf("unknown side %q", side)
	}
	base := selector.BaseToken(state)
	if base == nil {
		return errors.New("snapshot has no base token")
	}
	units, err := decimal.NewFromString(amount)
	if err != nil {
		return errors.Wrap(err, "amount")
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return errors.Wrap(err, "price")
	}

	fees, err := cfg.FeeConfig()
	if err != nil {
		return err
	}
	makerAmount := wallet.UnitsInTokenAmount(units, base.Decimals)
	o, err := order.NewBuilder(fees).Build(order.BuildParams{
		Account:         common.HexToAddress(selector.EthAccount(state)),
		TokenAddress:    common.HexToAddress(base.Address),
		WethAddress:     cfg.WethAddress(),
		Amount:          makerAmount,
		Price:           p,
		ExchangeAddress: cfg.ExchangeAddress(),
	}, s)
	if err != nil {
		return err
	}
	out.Order = o

	total := units.Mul(p)
	feeInWeth, err := order.FeeInQuote(makerAmount, total, s, fees.MakerFee, fees.TakerFee, base.Decimals)
	if err != nil {
		return err
	}
	out.FeeInWeth = &feeInWeth

	feeInUSD, err := order.FeeInFiat(ctx, priceOracle(cfg, state), makerAmount, total, s, fees.MakerFee, fees.TakerFee, base.Decimals)
	if err != nil {
		log.Warn("fee in usd unavailable", zap.Error(err))
		return nil
	}
	out.FeeInUSD = &feeInUSD
	return nil
}

// priceOracle prefers the Redis price cache, then the price carried by the
// snapshot, then the configured fallback.
func priceOracle(cfg *config.Config, state *selector.State) order.PriceSource {
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return pricefeed.NewRedisCache(rdb, cfg.Redis.PriceMaxAge)
	}
	if p := selector.EthInUSD(state); p != nil {
		return pricefeed.Static(*p)
	}
	return pricefeed.Static(decimal.RequireFromString(cfg.Redis.FallbackEthPrice))
}
