package order

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// erc20ProxyID is the 4-byte id of the ERC20 asset proxy,
// keccak256("ERC20Token(address)")[:4] = 0xf47261b0.
var erc20ProxyID = ethcrypto.Keccak256([]byte("ERC20Token(address)"))[:4]

const erc20AssetDataLen = 4 + 32

var ErrInvalidAssetData = errors.New("order: invalid erc20 asset data")

// EncodeERC20AssetData returns the asset descriptor the exchange contract
// expects for a fungible token: proxy id followed by the abi-encoded address.
func EncodeERC20AssetData(token common.Address) hexutil.Bytes {
	data := make([]byte, 0, erc20AssetDataLen)
	data = append(data, erc20ProxyID...)
	data = append(data, common.LeftPadBytes(token.Bytes(), 32)...)
	return data
}

func DecodeERC20AssetData(data []byte) (common.Address, error) {
	if len(data) != erc20AssetDataLen || !bytes.Equal(data[:4], erc20ProxyID) {
		return common.Address{}, errors.Wrapf(ErrInvalidAssetData, "%s", hexutil.Encode(data))
	}
	return common.BytesToAddress(data[4:]), nil
}
