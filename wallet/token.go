package wallet

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const wethSymbol = "weth"

type Token struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Decimals     int32  `json:"decimals"`
	PrimaryColor string `json:"primaryColor,omitempty"`
}

type TokenBalance struct {
	Token      Token           `json:"token"`
	Balance    decimal.Decimal `json:"balance"`
	IsUnlocked bool            `json:"isUnlocked"`
}

// IsWeth reports whether symbol names wrapped ether.
func IsWeth(symbol string) bool {
	return strings.EqualFold(symbol, wethSymbol)
}

// SearchToken finds the balance held for token. WETH is tracked apart from
// the other balances and resolves to weth. A nil token or a token without a
// balance yields nil.
func SearchToken(balances []TokenBalance, weth *TokenBalance, token *Token) *TokenBalance {
	if token == nil {
		return nil
	}
	if IsWeth(token.Symbol) {
		return weth
	}
	_, idx, ok := lo.FindIndexOf(balances, func(b TokenBalance) bool {
		return b.Token.Symbol == token.Symbol
	})
	if !ok {
		return nil
	}
	return &balances[idx]
}

func Tokens(balances []TokenBalance) []Token {
	return lo.Map(balances, func(b TokenBalance, _ int) Token {
		return b.Token
	})
}

// TokenAmountInUnits converts a base-unit amount into token units.
func TokenAmountInUnits(amount decimal.Decimal, decimals int32) decimal.Decimal {
	return amount.Shift(-decimals)
}

// UnitsInTokenAmount converts token units into a base-unit amount.
func UnitsInTokenAmount(units decimal.Decimal, decimals int32) decimal.Decimal {
	return units.Shift(decimals)
}
