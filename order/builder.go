// Package order builds unsigned exchange orders and estimates their fees.
package order

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"dexbook/orderbook"
)

// TTL is how long a freshly built order stays valid.
const TTL = 24 * time.Hour

var (
	ErrInvalidSide = errors.New("order: invalid side")

	maxSalt = new(big.Int).Lsh(big.NewInt(1), 256)
)

// Order is an unsigned 0x v2 order.
type Order struct {
	ExchangeAddress       common.Address  `json:"exchangeAddress"`
	MakerAddress          common.Address  `json:"makerAddress"`
	TakerAddress          common.Address  `json:"takerAddress"`
	SenderAddress         common.Address  `json:"senderAddress"`
	FeeRecipientAddress   common.Address  `json:"feeRecipientAddress"`
	MakerAssetData        hexutil.Bytes   `json:"makerAssetData"`
	TakerAssetData        hexutil.Bytes   `json:"takerAssetData"`
	MakerAssetAmount      decimal.Decimal `json:"makerAssetAmount"`
	TakerAssetAmount      decimal.Decimal `json:"takerAssetAmount"`
	MakerFee              decimal.Decimal `json:"makerFee"`
	TakerFee              decimal.Decimal `json:"takerFee"`
	ExpirationTimeSeconds decimal.Decimal `json:"expirationTimeSeconds"`
	Salt                  decimal.Decimal `json:"salt"`
}

// FeeConfig holds the relayer's fee terms applied to every order.
type FeeConfig struct {
	FeeRecipient common.Address
	MakerFee     decimal.Decimal
	TakerFee     decimal.Decimal
}

func DefaultFeeConfig() FeeConfig {
	return FeeConfig{
		FeeRecipient: common.Address{},
		MakerFee:     decimal.Zero,
		TakerFee:     decimal.Zero,
	}
}

type BuildParams struct {
	Account         common.Address
	TokenAddress    common.Address
	WethAddress     common.Address
	Amount          decimal.Decimal
	Price           decimal.Decimal
	ExchangeAddress common.Address
}

type Builder struct {
	fees FeeConfig
	now  func() time.Time
	salt func() (*big.Int, error)
}

type Option func(*Builder)

func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

func WithSaltSource(salt func() (*big.Int, error)) Option {
	return func(b *Builder) { b.salt = salt }
}

func NewBuilder(fees FeeConfig, opts ...Option) *Builder {
	b := &Builder{fees: fees, now: time.Now, salt: GenerateSalt}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Fees() FeeConfig {
	return b.fees
}

// Build returns the unsigned order for trading Amount tokens at Price WETH
// each. A buy offers WETH for the token, a sell offers the token for WETH.
// Any taker may fill it and no sender is required.
func (b *Builder) Build(p BuildParams, side orderbook.Side) (*Order, error) {
	expiration := decimal.NewFromInt(b.now().Add(TTL).Unix())

	tokenAssetData := EncodeERC20AssetData(p.TokenAddress)
	wethAssetData := EncodeERC20AssetData(p.WethAddress)
	total := p.Amount.Mul(p.Price)

	o := &Order{
		ExchangeAddress:       p.ExchangeAddress,
		MakerAddress:          p.Account,
		TakerAddress:          common.Address{},
		SenderAddress:         common.Address{},
		FeeRecipientAddress:   b.fees.FeeRecipient,
		MakerFee:              b.fees.MakerFee,
		TakerFee:              b.fees.TakerFee,
		ExpirationTimeSeconds: expiration,
	}
	switch side {
	case orderbook.Buy:
		o.MakerAssetData, o.MakerAssetAmount = wethAssetData, total
		o.TakerAssetData, o.TakerAssetAmount = tokenAssetData, p.Amount
	case orderbook.Sell:
		o.MakerAssetData, o.MakerAssetAmount = tokenAssetData, p.Amount
		o.TakerAssetData, o.TakerAssetAmount = wethAssetData, total
	default:
		return nil, errors.Wrapf(ErrInvalidSide, "%q", side)
	}

	salt, err := b.salt()
	if err != nil {
		return nil, errors.Wrap(err, "order: generate salt")
	}
	o.Salt = decimal.NewFromBigInt(salt, 0)
	return o, nil
}

// GenerateSalt returns a uniformly random 256-bit value.
func GenerateSalt() (*big.Int, error) {
	return rand.Int(rand.Reader, maxSalt)
}
