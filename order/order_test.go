package order

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexbook/orderbook"
)

var (
	account  = common.HexToAddress("0x5409ed021d9299bf6814279a6a1411a7e866a631")
	token    = common.HexToAddress("0x871dd7c2b4b25e1aa18728e9d5f2af4c4e431f5c")
	weth     = common.HexToAddress("0x0b1ba0af832d7c05fd64161e0db78e85978e8082")
	exchange = common.HexToAddress("0x48bacb9266a570d521063ef5dd96e61686dbe788")
	feeTo    = common.HexToAddress("0x000000000000000000000000000000000000dead")

	fixedNow = time.Unix(1_700_000_000, 0)
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func newTestBuilder(opts ...Option) *Builder {
	fees := FeeConfig{FeeRecipient: feeTo, MakerFee: d("0.01"), TakerFee: d("0.02")}
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewBuilder(fees, opts...)
}

func params() BuildParams {
	return BuildParams{
		Account:         account,
		TokenAddress:    token,
		WethAddress:     weth,
		Amount:          d("10"),
		Price:           d("2"),
		ExchangeAddress: exchange,
	}
}

func TestERC20AssetData(t *testing.T) {
	data := EncodeERC20AssetData(token)

	assert.Equal(t, "0xf47261b0000000000000000000000000871dd7c2b4b25e1aa18728e9d5f2af4c4e431f5c", hexutil.Encode(data))

	addr, err := DecodeERC20AssetData(data)
	require.NoError(t, err)
	assert.Equal(t, token, addr)

	_, err = DecodeERC20AssetData(data[:20])
	assert.True(t, errors.Is(err, ErrInvalidAssetData))
}

func TestBuildBuyOrder(t *testing.T) {
	o, err := newTestBuilder().Build(params(), orderbook.Buy)
	require.NoError(t, err)

	assertDecimal(t, "20", o.MakerAssetAmount)
	assertDecimal(t, "10", o.TakerAssetAmount)
	assert.Equal(t, EncodeERC20AssetData(weth), o.MakerAssetData)
	assert.Equal(t, EncodeERC20AssetData(token), o.TakerAssetData)
}

func TestBuildSellOrder(t *testing.T) {
	o, err := newTestBuilder().Build(params(), orderbook.Sell)
	require.NoError(t, err)

	assertDecimal(t, "10", o.MakerAssetAmount)
	assertDecimal(t, "20", o.TakerAssetAmount)
	assert.Equal(t, EncodeERC20AssetData(token), o.MakerAssetData)
	assert.Equal(t, EncodeERC20AssetData(weth), o.TakerAssetData)
}

func TestBuildFixedFields(t *testing.T) {
	o, err := newTestBuilder().Build(params(), orderbook.Sell)
	require.NoError(t, err)

	assert.Equal(t, exchange, o.ExchangeAddress)
	assert.Equal(t, account, o.MakerAddress)
	assert.Equal(t, common.Address{}, o.TakerAddress)
	assert.Equal(t, common.Address{}, o.SenderAddress)
	assert.Equal(t, feeTo, o.FeeRecipientAddress)
	assertDecimal(t, "0.01", o.MakerFee)
	assertDecimal(t, "0.02", o.TakerFee)
	assert.Equal(t, fixedNow.Add(24*time.Hour).Unix(), o.ExpirationTimeSeconds.IntPart())
}

func TestBuildUniqueSalt(t *testing.T) {
	b := NewBuilder(DefaultFeeConfig())

	first, err := b.Build(params(), orderbook.Buy)
	require.NoError(t, err)
	second, err := b.Build(params(), orderbook.Buy)
	require.NoError(t, err)

	assert.False(t, first.Salt.Equal(second.Salt))
	assert.True(t, first.Salt.Sign() >= 0)
	assert.True(t, first.Salt.BigInt().Cmp(maxSalt) < 0)
}

func TestBuildDoesNotMutateParams(t *testing.T) {
	p := params()
	_, err := newTestBuilder().Build(p, orderbook.Buy)
	require.NoError(t, err)
	assert.Equal(t, params(), p)
}

func TestBuildInvalidSide(t *testing.T) {
	_, err := newTestBuilder().Build(params(), orderbook.Side("HOLD"))
	assert.True(t, errors.Is(err, ErrInvalidSide))
}

func TestBuildSaltFailure(t *testing.T) {
	boom := errors.New("no entropy")
	b := newTestBuilder(WithSaltSource(func() (*big.Int, error) { return nil, boom }))

	_, err := b.Build(params(), orderbook.Buy)
	assert.True(t, errors.Is(err, boom))
}

func TestFeeInQuote(t *testing.T) {
	tests := []struct {
		name        string
		makerAmount string
		takerAmount string
		side        orderbook.Side
		want        string
	}{
		// 100 wei = 1e-16 tokens; maker 1e-18 * (200 / 1e-16) = 2, taker 200 * 0.02 = 4
		{"sell golden", "100", "200", orderbook.Sell, "6"},
		// maker 20 * 0.01 = 0.2, taker 10 * 0.02 * (20 / 10) = 0.4
		{"buy golden", "20000000000000000000", "10", orderbook.Buy, "0.6"},
		{"sell whole tokens", "10000000000000000000", "20", orderbook.Sell, "0.6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := FeeInQuote(d(tt.makerAmount), d(tt.takerAmount), tt.side, d("0.01"), d("0.02"), DefaultTokenDecimals)
			require.NoError(t, err)
			assertDecimal(t, tt.want, fee)
		})
	}
}

func TestFeeInQuoteInvalidSide(t *testing.T) {
	_, err := FeeInQuote(d("1"), d("1"), orderbook.Side(""), d("0.01"), d("0.02"), DefaultTokenDecimals)
	assert.True(t, errors.Is(err, ErrInvalidSide))
}

func TestFeeInQuoteZeroAmounts(t *testing.T) {
	_, err := FeeInQuote(decimal.Zero, d("1"), orderbook.Sell, d("0.01"), d("0.02"), DefaultTokenDecimals)
	assert.True(t, errors.Is(err, ErrZeroAmount))

	_, err = FeeInQuote(d("1"), decimal.Zero, orderbook.Buy, d("0.01"), d("0.02"), DefaultTokenDecimals)
	assert.True(t, errors.Is(err, ErrZeroAmount))
}

func TestBuilderFee(t *testing.T) {
	fee, err := newTestBuilder().Fee(d("100"), d("200"), orderbook.Sell)
	require.NoError(t, err)
	assertDecimal(t, "6", fee)
}

type fakePrices struct {
	price decimal.Decimal
	err   error
	calls int
}

func (f *fakePrices) EthereumPriceInUSD(context.Context) (decimal.Decimal, error) {
	f.calls++
	return f.price, f.err
}

func TestFeeInFiat(t *testing.T) {
	prices := &fakePrices{price: d("150.5")}

	fee, err := newTestBuilder().FeeInFiat(context.Background(), prices, d("100"), d("200"), orderbook.Sell)

	require.NoError(t, err)
	assertDecimal(t, "903", fee)
	assert.Equal(t, 1, prices.calls)
}

func TestFeeInFiatPriceFailure(t *testing.T) {
	boom := errors.New("oracle down")
	prices := &fakePrices{err: boom}

	_, err := FeeInFiat(context.Background(), prices, d("100"), d("200"), orderbook.Sell, d("0.01"), d("0.02"), DefaultTokenDecimals)

	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, 1, prices.calls)
}

func TestFeeInFiatSkipsLookupOnInvalidSide(t *testing.T) {
	prices := &fakePrices{price: d("1")}

	_, err := FeeInFiat(context.Background(), prices, d("1"), d("1"), orderbook.Side("?"), d("0"), d("0"), DefaultTokenDecimals)

	assert.True(t, errors.Is(err, ErrInvalidSide))
	assert.Zero(t, prices.calls)
}
