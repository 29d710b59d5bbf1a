// Package relayer turns relayer snapshot documents into selector state.
package relayer

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"dexbook/orderbook"
	"dexbook/selector"
	"dexbook/wallet"
)

type Source interface {
	Snapshot(ctx context.Context) (*selector.State, error)
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) Snapshot(ctx context.Context) (*selector.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: open snapshot")
	}
	defer file.Close()
	return Decode(file)
}

func Decode(r io.Reader) (*selector.State, error) {
	m := &Message{}
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, errors.Wrap(err, "relayer: decode snapshot")
	}
	return m.ToState()
}

// ToState converts the document. Base and quote tokens are resolved by symbol
// against the known balances and stay nil when no balance lists them.
func (m *Message) ToState() (*selector.State, error) {
	orders, err := toOrders(m.Orders)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: orders")
	}
	userOrders, err := toOrders(m.UserOrders)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: userOrders")
	}
	ethBalance, err := decimalOrZero(m.EthBalance)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: ethBalance")
	}
	gasPrice, err := decimalOrZero(m.GasPriceInWei)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: gasPriceInWei")
	}
	ethInUSD, err := optionalDecimal(m.EthInUSD)
	if err != nil {
		return nil, errors.Wrap(err, "relayer: ethInUsd")
	}

	tokens := wallet.Tokens(m.TokenBalances)
	if m.WethTokenBalance != nil {
		tokens = append(tokens, m.WethTokenBalance.Token)
	}

	return &selector.State{
		Blockchain: selector.Blockchain{
			EthAccount:       m.EthAccount,
			TokenBalances:    m.TokenBalances,
			Web3State:        orderbook.Web3State(m.Web3State),
			EthBalance:       ethBalance,
			WethTokenBalance: m.WethTokenBalance,
			GasInfo: selector.GasInfo{
				GasPriceInWei:   gasPrice,
				EstimatedTimeMs: m.EstimatedTimeMs,
			},
			NetworkID: m.NetworkID,
		},
		Relayer: selector.Relayer{
			Orders:     orders,
			UserOrders: userOrders,
		},
		Market: selector.Market{
			BaseToken:  findToken(tokens, m.BaseToken),
			QuoteToken: findToken(tokens, m.QuoteToken),
			EthInUSD:   ethInUSD,
		},
		Collectibles: selector.Collectibles{
			AllCollectibles: lo.Assign(map[string]wallet.Collectible{}, m.Collectibles),
		},
	}, nil
}

func toOrders(raw []Order) ([]orderbook.Order, error) {
	orders := make([]orderbook.Order, 0, len(raw))
	for i, r := range raw {
		o, err := r.toOrder()
		if err != nil {
			return nil, errors.Wrapf(err, "order %d (%s)", i, r.Hash)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r Order) toOrder() (orderbook.Order, error) {
	side := orderbook.Side(strings.ToUpper(r.Side))
	if !side.Valid() {
		return orderbook.Order{}, errors.Errorf("unknown side %q", r.Side)
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return orderbook.Order{}, errors.Wrap(err, "price")
	}
	size, err := decimal.NewFromString(r.Size)
	if err != nil {
		return orderbook.Order{}, errors.Wrap(err, "size")
	}
	filled, err := optionalDecimal(r.Filled)
	if err != nil {
		return orderbook.Order{}, errors.Wrap(err, "filled")
	}
	o := orderbook.Order{
		Hash:   r.Hash,
		Maker:  r.Maker,
		Side:   side,
		Price:  price,
		Size:   size,
		Filled: filled,
		Status: orderbook.Status(strings.ToUpper(r.Status)),
	}
	if r.Expiration > 0 {
		o.Expiration = time.Unix(r.Expiration, 0)
	}
	return o, nil
}

func decimalOrZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func findToken(tokens []wallet.Token, symbol string) *wallet.Token {
	if symbol == "" {
		return nil
	}
	t, ok := lo.Find(tokens, func(t wallet.Token) bool {
		return strings.EqualFold(t.Symbol, symbol)
	})
	if !ok {
		return nil
	}
	return &t
}
