package wallet

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type Collectible struct {
	TokenID      string           `json:"tokenId"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Image        string           `json:"image,omitempty"`
	CurrentOwner string           `json:"currentOwner"`
	Price        *decimal.Decimal `json:"price,omitempty"`
}

// UserCollectibles keeps the collectibles owned by account. Addresses are
// compared case-insensitively.
func UserCollectibles(account string, all map[string]Collectible) map[string]Collectible {
	return lo.PickBy(all, func(_ string, c Collectible) bool {
		return strings.EqualFold(c.CurrentOwner, account)
	})
}

// OtherUsersCollectibles keeps the collectibles not owned by account.
func OtherUsersCollectibles(account string, all map[string]Collectible) map[string]Collectible {
	return lo.OmitBy(all, func(_ string, c Collectible) bool {
		return strings.EqualFold(c.CurrentOwner, account)
	})
}
