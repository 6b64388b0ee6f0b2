package registrar

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/Uchiha-Network/Story-Guard/internal/domain"
	"github.com/Uchiha-Network/Story-Guard/internal/usecase"
)

// Mock stands in for the on-chain registrar. It fabricates a plausible
// receipt and never fails, so local registration is exercised end to
// end without a network dependency.
type Mock struct {
	Network string
}

func NewMock() *Mock {
	return &Mock{Network: "testnet"}
}

func (m *Mock) Register(_ context.Context, asset domain.RegisteredAsset) (usecase.RegistrarReceipt, error) {
	receipt := usecase.RegistrarReceipt{
		IPAssetID: fmt.Sprintf("sp_%d_%s", time.Now().UnixMilli(), randomHex(4)),
		TxHash:    "0x" + randomHex(32),
		Network:   m.Network,
	}
	log.Printf("registrar(mock): asset %s mirrored as %s tx %s", asset.ID, receipt.IPAssetID, receipt.TxHash)
	return receipt, nil
}

func randomHex(n int) string {
	buf := make([]byte, n)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
