package order

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"dexbook/orderbook"
	"dexbook/wallet"
)

// DefaultTokenDecimals is assumed when the maker token's decimals are unknown.
const DefaultTokenDecimals int32 = 18

var (
	ErrZeroAmount = errors.New("order: zero amount in fee ratio")

	// SentinelFee is the value older clients reported for an order whose side
	// was neither buy nor sell. FeeInQuote returns ErrInvalidSide instead.
	SentinelFee = decimal.NewFromInt(1)
)

// PriceSource resolves the current ether price in fiat.
type PriceSource interface {
	EthereumPriceInUSD(ctx context.Context) (decimal.Decimal, error)
}

// FeeInQuote estimates the total fee of an order in the quote currency.
// makerAmount is in base units of a token with tokenDecimals decimals.
//
// The maker and taker legs are scaled by the trade's exchange ratio in the
// exact order the exchange computes them; do not simplify the products.
func FeeInQuote(makerAmount, takerAmount decimal.Decimal, side orderbook.Side, makerFeeRate, takerFeeRate decimal.Decimal, tokenDecimals int32) (decimal.Decimal, error) {
	makerAmountConverted := wallet.TokenAmountInUnits(makerAmount, tokenDecimals)

	switch side {
	case orderbook.Sell:
		if makerAmountConverted.IsZero() {
			return decimal.Zero, errors.Wrap(ErrZeroAmount, "maker amount")
		}
		makerFeeWithoutPrice := makerAmountConverted.Mul(makerFeeRate)
		makerFee := makerFeeWithoutPrice.Mul(takerAmount.DivRound(makerAmountConverted, orderbook.DivisionPlaces))
		takerFee := takerAmount.Mul(takerFeeRate)
		return makerFee.Add(takerFee), nil
	case orderbook.Buy:
		if takerAmount.IsZero() {
			return decimal.Zero, errors.Wrap(ErrZeroAmount, "taker amount")
		}
		makerFee := makerAmountConverted.Mul(makerFeeRate)
		takerFeeWithoutPrice := takerAmount.Mul(takerFeeRate)
		takerFee := takerFeeWithoutPrice.Mul(makerAmountConverted.DivRound(takerAmount, orderbook.DivisionPlaces))
		return takerFee.Add(makerFee), nil
	default:
		return decimal.Zero, errors.Wrapf(ErrInvalidSide, "%q", side)
	}
}

// FeeInFiat converts FeeInQuote into fiat using the current ether price.
// Price lookup failures are returned unchanged apart from wrapping.
func FeeInFiat(ctx context.Context, prices PriceSource, makerAmount, takerAmount decimal.Decimal, side orderbook.Side, makerFeeRate, takerFeeRate decimal.Decimal, tokenDecimals int32) (decimal.Decimal, error) {
	fee, err := FeeInQuote(makerAmount, takerAmount, side, makerFeeRate, takerFeeRate, tokenDecimals)
	if err != nil {
		return decimal.Zero, err
	}
	price, err := prices.EthereumPriceInUSD(ctx)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "order: ether price")
	}
	return fee.Mul(price), nil
}

// Fee is FeeInQuote with the builder's configured rates and 18-decimal tokens.
func (b *Builder) Fee(makerAmount, takerAmount decimal.Decimal, side orderbook.Side) (decimal.Decimal, error) {
	return FeeInQuote(makerAmount, takerAmount, side, b.fees.MakerFee, b.fees.TakerFee, DefaultTokenDecimals)
}

func (b *Builder) FeeInFiat(ctx context.Context, prices PriceSource, makerAmount, takerAmount decimal.Decimal, side orderbook.Side) (decimal.Decimal, error) {
	return FeeInFiat(ctx, prices, makerAmount, takerAmount, side, b.fees.MakerFee, b.fees.TakerFee, DefaultTokenDecimals)
}
