package state

import (
	"encoding/json"
	"io/ioutil"
	"math/big"
	"os"

	"github.com/korolevchain/sequencer/common/eth/common"
)

type SeedData struct {
	Accounts []*AccountData `json:"accounts"`
}

type AccountData struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

func SeedFromFile(filePath string) map[common.Address]*Account {
	res := make(map[common.Address]*Account)
	file, e := os.Open(filePath)
	if e != nil {
		log.Fatal("Can't load seed", e)
		return nil
	}
	defer file.Close()

	byteValue, _ := ioutil.ReadAll(file)

	var data SeedData
	if err := json.Unmarshal(byteValue, &data); err != nil {
		log.Fatal("Can't unmarshal seed file", err)
		return nil
	}

	for _, a := range data.Accounts {
		address := common.HexToAddress(a.Address)
		balance := big.NewInt(a.Balance)
		res[address] = NewAccount(a.Nonce, balance)
	}

	return res
}
