package orderbook

import (
	"slices"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DivisionPlaces is the number of decimal places kept by every division in
// book and fee arithmetic.
const DivisionPlaces = 78

var hundred = decimal.NewFromInt(100)

// OpenOrders returns the orders that make up the visible book. Without a
// usable wallet the whole set is shown read-only; once connected only
// fillable orders remain.
func OpenOrders(orders []Order, state Web3State) []Order {
	switch state {
	case NotInstalled, Locked:
		return orders
	default:
		return lo.Filter(orders, func(o Order, _ int) bool {
			return o.Status == Fillable
		})
	}
}

// OpenSellOrders returns the sell side sorted by descending price, so the
// lowest ask is the last element.
func OpenSellOrders(open []Order) []Order {
	return sideByPriceDesc(open, Sell)
}

// OpenBuyOrders returns the buy side sorted by descending price, so the
// highest bid is the first element.
func OpenBuyOrders(open []Order) []Order {
	return sideByPriceDesc(open, Buy)
}

func sideByPriceDesc(orders []Order, side Side) []Order {
	out := lo.Filter(orders, func(o Order, _ int) bool {
		return o.Side == side
	})
	slices.SortStableFunc(out, func(a, b Order) int {
		return b.Price.Cmp(a.Price)
	})
	return out
}

// MySizeOrders reduces the user's fillable orders to their remaining size.
func MySizeOrders(userOrders []Order) []SizeOrder {
	fillable := lo.Filter(userOrders, func(o Order, _ int) bool {
		return o.Status == Fillable
	})
	return lo.Map(fillable, func(o Order, _ int) SizeOrder {
		size := o.Size
		if o.Filled != nil {
			size = o.Size.Sub(*o.Filled)
		}
		return SizeOrder{Size: size, Side: o.Side, Price: o.Price}
	})
}

// Spread is lowest ask minus highest bid. Both slices must be sorted by
// descending price. A crossed book yields a negative spread.
func Spread(buys, sells []Order) decimal.Decimal {
	if len(buys) == 0 || len(sells) == 0 {
		return decimal.Zero
	}
	lowestSell := sells[len(sells)-1].Price
	highestBuy := buys[0].Price
	return lowestSell.Sub(highestBuy)
}

func SpreadPercentage(buys, sells []Order) decimal.Decimal {
	if len(buys) == 0 || len(sells) == 0 {
		return decimal.Zero
	}
	lowestSell := sells[len(sells)-1].Price
	if lowestSell.IsZero() {
		return decimal.Zero
	}
	spread := lowestSell.Sub(buys[0].Price)
	return spread.DivRound(lowestSell, DivisionPlaces).Mul(hundred)
}

// MergeByPrice folds orders sharing a price into a single level. Levels come
// out in descending price order.
func MergeByPrice(orders []Order) []PricedLevel {
	tree := rbt.NewWith(PriceDescComparator)
	for _, o := range orders {
		if v, ok := tree.Get(o.Price); ok {
			level := v.(PricedLevel)
			level.Size = level.Size.Add(o.Size)
			tree.Put(o.Price, level)
			continue
		}
		tree.Put(o.Price, PricedLevel{Side: o.Side, Price: o.Price, Size: o.Size})
	}
	levels := make([]PricedLevel, 0, tree.Size())
	it := tree.Iterator()
	for it.Next() {
		levels = append(levels, it.Value().(PricedLevel))
	}
	return levels
}

// Build assembles the display book from the sorted sides and the user's sizes.
func Build(sells, buys []Order, mySizeOrders []SizeOrder) *OrderBook {
	return &OrderBook{
		SellOrders:   MergeByPrice(sells),
		BuyOrders:    MergeByPrice(buys),
		MySizeOrders: mySizeOrders,
	}
}

func (b *OrderBook) BestBid() (PricedLevel, bool) {
	if len(b.BuyOrders) == 0 {
		return PricedLevel{}, false
	}
	return b.BuyOrders[0], true
}

func (b *OrderBook) BestAsk() (PricedLevel, bool) {
	if len(b.SellOrders) == 0 {
		return PricedLevel{}, false
	}
	return b.SellOrders[len(b.SellOrders)-1], true
}

func PriceDescComparator(a, b interface{}) int {
	aAsserted := a.(decimal.Decimal)
	bAsserted := b.(decimal.Decimal)
	switch {
	case aAsserted.GreaterThan(bAsserted):
		return -1
	case aAsserted.LessThan(bAsserted):
		return 1
	default:
		return 0
	}
}
