// Package pricefeed provides the fiat price of ether to fee estimation.
package pricefeed

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// EtherAsset is the asset id the ether/USD price is cached under.
const EtherAsset = "ETH-USD"

var ErrNotFound = errors.New("pricefeed: price not found")

// RedisCache reads prices published by an external ticker. Each asset lives
// in a hash at "price:{asset}" with fields "price" (decimal string) and "ts"
// (unix nanoseconds).
type RedisCache struct {
	rdb    redis.Cmdable
	maxAge time.Duration
	now    func() time.Time
}

// NewRedisCache returns a cache reader. A zero maxAge accepts prices of any age.
func NewRedisCache(rdb redis.Cmdable, maxAge time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, maxAge: maxAge, now: time.Now}
}

func priceKey(asset string) string {
	return "price:" + asset
}

func (c *RedisCache) SetPrice(ctx context.Context, asset string, price decimal.Decimal, ts time.Time) error {
	fields := map[string]interface{}{
		"price": price.String(),
		"ts":    strconv.FormatInt(ts.UnixNano(), 10),
	}
	if err := c.rdb.HSet(ctx, priceKey(asset), fields).Err(); err != nil {
		return errors.Wrapf(err, "pricefeed: set price %s", asset)
	}
	return nil
}

func (c *RedisCache) Price(ctx context.Context, asset string) (decimal.Decimal, time.Time, error) {
	vals, err := c.rdb.HGetAll(ctx, priceKey(asset)).Result()
	if err != nil {
		return decimal.Zero, time.Time{}, errors.Wrapf(err, "pricefeed: get price %s", asset)
	}
	return parsePrice(asset, vals)
}

func (c *RedisCache) EthereumPriceInUSD(ctx context.Context) (decimal.Decimal, error) {
	price, ts, err := c.Price(ctx, EtherAsset)
	if err != nil {
		return decimal.Zero, err
	}
	if c.maxAge > 0 && c.now().Sub(ts) > c.maxAge {
		return decimal.Zero, errors.Errorf("pricefeed: %s price is stale (%s)", EtherAsset, ts.Format(time.RFC3339))
	}
	return price, nil
}

func parsePrice(asset string, vals map[string]string) (decimal.Decimal, time.Time, error) {
	priceStr, ok := vals["price"]
	if !ok {
		return decimal.Zero, time.Time{}, errors.Wrap(ErrNotFound, asset)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, time.Time{}, errors.Wrapf(err, "pricefeed: parse price %s", asset)
	}
	tsStr, ok := vals["ts"]
	if !ok {
		return decimal.Zero, time.Time{}, errors.Wrap(ErrNotFound, asset)
	}
	tsNano, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return decimal.Zero, time.Time{}, errors.Wrapf(err, "pricefeed: parse ts %s", asset)
	}
	return price, time.Unix(0, tsNano), nil
}

// Static always answers with the same price.
type Static decimal.Decimal

func (s Static) EthereumPriceInUSD(context.Context) (decimal.Decimal, error) {
	return decimal.Decimal(s), nil
}
