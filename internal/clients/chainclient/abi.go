package chainclient

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	methodStakeCount      = "stakeCount"
	methodUserStakeRecord = "userStakeRecord"
	methodBalanceOf       = "balanceOf"
)

const stakingABIJSON = `[
	{
		"type": "function",
		"name": "stakeCount",
		"stateMutability": "view",
		"inputs": [{"name": "user", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "userStakeRecord",
		"stateMutability": "view",
		"inputs": [
			{"name": "user", "type": "address"},
			{"name": "index", "type": "uint256"}
		],
		"outputs": [
			{"name": "stakeTime", "type": "uint40"},
			{"name": "amount", "type": "uint160"},
			{"name": "isRedeemed", "type": "bool"},
			{"name": "stakeIndex", "type": "uint8"}
		]
	}
]`

const erc20ABIJSON = `[
	{
		"type": "function",
		"name": "balanceOf",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

var (
	stakingABI = mustParseABI(stakingABIJSON)
	erc20ABI   = mustParseABI(erc20ABIJSON)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(err)
	}
	return parsed
}
