package interfaces

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"x402-gate/domain/entities"
)

// ChainReader is the minimal RPC surface the EVM verifier needs. It is
// satisfied by *ethclient.Client.
type ChainReader interface {
	// ChainID returns the chain id reported by the RPC endpoint.
	ChainID(ctx context.Context) (*big.Int, error)

	// TransactionByHash returns the transaction and whether it is still pending.
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)

	// TransactionReceipt returns the receipt of a mined transaction.
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)

	// HeaderByNumber returns the header of the given block.
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// BalanceAt returns the native-token balance of an account.
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// VerifyRequest carries the parameters of a payment verification.
type VerifyRequest struct {
	TxHash         common.Hash
	ExpectedSender common.Address
	ExpectedAmount *big.Int

	// MaxAge rejects transactions mined longer ago than this. Zero disables
	// the age check.
	MaxAge time.Duration
}

// ChainVerifier confirms that a claimed payment settled on-chain. The gate
// and the job store are chain-agnostic and depend only on this interface.
type ChainVerifier interface {
	// Verify checks that the referenced transaction is a successful,
	// sufficiently funded transfer from the expected sender to the treasury.
	// Rejections are reported in the result, not as an error; only the
	// initial waiting-for-receipt phase retries, bounded by the verifier's
	// polling budget and the request context.
	Verify(ctx context.Context, req VerifyRequest) *entities.PaymentVerification

	// CheckStatus reports the transaction's state for status polling outside
	// the verify flow.
	CheckStatus(ctx context.Context, txHash common.Hash) (entities.TxStatus, error)

	// Connected reports whether the RPC endpoint is reachable and serves the
	// configured chain.
	Connected(ctx context.Context) bool

	// Balance returns the native-token balance of an address.
	Balance(ctx context.Context, address common.Address) (*big.Int, error)
}
