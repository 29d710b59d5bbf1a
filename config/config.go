// Package config loads dexbook settings from a TOML file, an optional .env
// file and DEXBOOK_* environment variables, in that order of precedence.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"dexbook/order"
)

type Config struct {
	Exchange ExchangeConfig `toml:"exchange"`
	Redis    RedisConfig    `toml:"redis"`
	Snapshot string         `toml:"snapshot" env:"DEXBOOK_SNAPSHOT"`
	LogLevel string         `toml:"log_level" env:"DEXBOOK_LOG_LEVEL"`
}

// ExchangeConfig holds the contract addresses and the relayer's fee terms.
type ExchangeConfig struct {
	ExchangeAddress string `toml:"exchange_address" env:"DEXBOOK_EXCHANGE_ADDRESS"`
	WethAddress     string `toml:"weth_address" env:"DEXBOOK_WETH_ADDRESS"`
	FeeRecipient    string `toml:"fee_recipient" env:"DEXBOOK_FEE_RECIPIENT"`
	MakerFee        string `toml:"maker_fee" env:"DEXBOOK_MAKER_FEE"`
	TakerFee        string `toml:"taker_fee" env:"DEXBOOK_TAKER_FEE"`
}

// RedisConfig locates the cached ether price. An empty Addr disables the
// cache and FallbackEthPrice is used instead.
type RedisConfig struct {
	Addr             string        `toml:"addr" env:"DEXBOOK_REDIS_ADDR"`
	Password         string        `toml:"password" env:"DEXBOOK_REDIS_PASSWORD"`
	DB               int           `toml:"db" env:"DEXBOOK_REDIS_DB"`
	PriceMaxAge      time.Duration `toml:"price_max_age" env:"DEXBOOK_REDIS_PRICE_MAX_AGE"`
	FallbackEthPrice string        `toml:"fallback_eth_price" env:"DEXBOOK_FALLBACK_ETH_PRICE"`
}

func Defaults() Config {
	return Config{
		Exchange: ExchangeConfig{
			ExchangeAddress: "0x080bf510fcbf18b91105470639e9561022937712",
			WethAddress:     "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
			FeeRecipient:    common.Address{}.Hex(),
			MakerFee:        "0",
			TakerFee:        "0",
		},
		Redis: RedisConfig{
			PriceMaxAge:      5 * time.Minute,
			FallbackEthPrice: "0",
		},
		Snapshot: "snapshot.json",
		LogLevel: "info",
	}
}

// Load decodes the TOML file at path over Defaults, then applies .env and
// environment overrides. An empty path skips the file. The result is not
// validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: decode %s", path)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: environment")
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	for name, addr := range map[string]string{
		"exchange.exchange_address": c.Exchange.ExchangeAddress,
		"exchange.weth_address":     c.Exchange.WethAddress,
		"exchange.fee_recipient":    c.Exchange.FeeRecipient,
	} {
		if !common.IsHexAddress(addr) {
			return errors.Errorf("config: %s: invalid address %q", name, addr)
		}
	}
	for name, v := range map[string]string{
		"exchange.maker_fee":       c.Exchange.MakerFee,
		"exchange.taker_fee":       c.Exchange.TakerFee,
		"redis.fallback_eth_price": c.Redis.FallbackEthPrice,
	} {
		dec, err := decimal.NewFromString(v)
		if err != nil {
			return errors.Wrapf(err, "config: %s", name)
		}
		if dec.IsNegative() {
			return errors.Errorf("config: %s must not be negative", name)
		}
	}
	if c.Redis.PriceMaxAge < 0 {
		return errors.New("config: redis.price_max_age must not be negative")
	}
	return nil
}

// FeeConfig returns the order fee terms. Call Validate first.
func (c *Config) FeeConfig() (order.FeeConfig, error) {
	makerFee, err := decimal.NewFromString(c.Exchange.MakerFee)
	if err != nil {
		return order.FeeConfig{}, errors.Wrap(err, "config: maker_fee")
	}
	takerFee, err := decimal.NewFromString(c.Exchange.TakerFee)
	if err != nil {
		return order.FeeConfig{}, errors.Wrap(err, "config: taker_fee")
	}
	return order.FeeConfig{
		FeeRecipient: common.HexToAddress(c.Exchange.FeeRecipient),
		MakerFee:     makerFee,
		TakerFee:     takerFee,
	}, nil
}

func (c *Config) ExchangeAddress() common.Address {
	return common.HexToAddress(c.Exchange.ExchangeAddress)
}

func (c *Config) WethAddress() common.Address {
	return common.HexToAddress(c.Exchange.WethAddress)
}
