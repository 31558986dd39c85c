package blockchain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"x402-gate/domain/entities"
	"x402-gate/domain/interfaces"
	"x402-gate/infrastructure/logger"
	"x402-gate/test/mocks"
)

const testChainID int64 = 10143

var testTreasury = common.HexToAddress("0x00000000000000000000000000000000000402fe")

// signedTransfer builds a signed value transfer so sender recovery works the
// same way it does against real chain data.
func signedTransfer(t *testing.T, key *ecdsa.PrivateKey, to common.Address, value *big.Int, chainID int64) *types.Transaction {
	t.Helper()
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(chainID),
		Nonce:     1,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(1000000000),
		Gas:       21000,
		To:        &to,
		Value:     value,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(chainID)), key)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(reader interfaces.ChainReader, policy string) interfaces.ChainVerifier {
	return NewEVMVerifier(reader, VerifierConfig{
		ChainID:      testChainID,
		Treasury:     testTreasury,
		PollInterval: time.Millisecond,
		PollBudget:   20 * time.Millisecond,
		Policy:       policy,
	}, logger.NewNopLogger())
}

func TestEVMVerifier_Verify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sender := crypto.PubkeyToAddress(key.PublicKey)

	price := big.NewInt(1000000000000000)
	successReceipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(100),
	}

	t.Run("settled matching transfer is verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.True(t, result.Verified)
		assert.Equal(t, tx.Hash().Hex(), result.TxHash)
		assert.Equal(t, sender.Hex(), result.Sender)
		assert.Equal(t, price, result.Amount)
		assert.Empty(t, result.Reason)
	})

	t.Run("overpayment is accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, new(big.Int).Add(price, big.NewInt(5)), testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		assert.True(t, result.Verified)
	})

	t.Run("underpayment is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, big.NewInt(1), testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "amount too low")
	})

	t.Run("payment to the wrong recipient is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		other := common.HexToAddress("0x1111111111111111111111111111111111111111")
		tx := signedTransfer(t, key, other, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "recipient mismatch")
	})

	t.Run("payment from a different wallet is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		otherKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		tx := signedTransfer(t, otherKey, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "sender mismatch")
	})

	t.Run("reverted transaction is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(&types.Receipt{
			Status:      types.ReceiptStatusFailed,
			BlockNumber: big.NewInt(100),
		}, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "failed on-chain")
	})

	t.Run("transaction signed for another chain is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, 1)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		assert.False(t, result.Verified)
	})

	t.Run("unknown hash rejects after the polling budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		hash := common.HexToHash("0xdead")
		reader.EXPECT().TransactionByHash(gomock.Any(), hash).
			Return(nil, false, ethereum.NotFound).AnyTimes()

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         hash,
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "not confirmed within")
	})

	t.Run("pending matching transfer is accepted under optimistic policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).
			Return(tx, true, nil).AnyTimes()

		v := newTestVerifier(reader, PolicyOptimistic)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.True(t, result.Verified)
		assert.Equal(t, sender.Hex(), result.Sender)
	})

	t.Run("pending transfer is rejected under strict policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).
			Return(tx, true, nil).AnyTimes()

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "not confirmed within")
	})

	t.Run("pending transfer with mismatched fields fails fast", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, big.NewInt(1), testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, true, nil)

		v := newTestVerifier(reader, PolicyOptimistic)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "amount too low")
	})

	t.Run("cancelled context stops polling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		hash := common.HexToHash("0xbeef")
		reader.EXPECT().TransactionByHash(gomock.Any(), hash).
			Return(nil, false, ethereum.NotFound).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		v := NewEVMVerifier(reader, VerifierConfig{
			ChainID:      testChainID,
			Treasury:     testTreasury,
			PollInterval: time.Millisecond,
			PollBudget:   time.Minute,
			Policy:       PolicyStrict,
		}, logger.NewNopLogger())

		result := v.Verify(ctx, interfaces.VerifyRequest{
			TxHash:         hash,
			ExpectedSender: sender,
			ExpectedAmount: price,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "cancelled")
	})

	t.Run("stale transaction is rejected when max age is set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)
		reader.EXPECT().HeaderByNumber(gomock.Any(), successReceipt.BlockNumber).Return(&types.Header{
			Time: uint64(time.Now().Add(-time.Hour).Unix()),
		}, nil)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
			MaxAge:         300 * time.Second,
		})

		require.False(t, result.Verified)
		assert.Contains(t, result.Reason, "too old")
	})

	t.Run("header fetch failure skips the age check", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		tx := signedTransfer(t, key, testTreasury, price, testChainID)
		reader.EXPECT().TransactionByHash(gomock.Any(), tx.Hash()).Return(tx, false, nil)
		reader.EXPECT().TransactionReceipt(gomock.Any(), tx.Hash()).Return(successReceipt, nil)
		reader.EXPECT().HeaderByNumber(gomock.Any(), successReceipt.BlockNumber).
			Return(nil, assert.AnError)

		v := newTestVerifier(reader, PolicyStrict)
		result := v.Verify(context.Background(), interfaces.VerifyRequest{
			TxHash:         tx.Hash(),
			ExpectedSender: sender,
			ExpectedAmount: price,
			MaxAge:         300 * time.Second,
		})

		assert.True(t, result.Verified)
	})
}

func TestEVMVerifier_CheckStatus(t *testing.T) {
	hash := common.HexToHash("0xabc1")

	t.Run("successful receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
			Status: types.ReceiptStatusSuccessful,
		}, nil)

		v := newTestVerifier(reader, PolicyStrict)
		status, err := v.CheckStatus(context.Background(), hash)
		require.NoError(t, err)
		assert.Equal(t, entities.TxStatusSuccess, status)
	})

	t.Run("failed receipt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(&types.Receipt{
			Status: types.ReceiptStatusFailed,
		}, nil)

		v := newTestVerifier(reader, PolicyStrict)
		status, err := v.CheckStatus(context.Background(), hash)
		require.NoError(t, err)
		assert.Equal(t, entities.TxStatusFailed, status)
	})

	t.Run("known but unmined transaction is pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound)
		reader.EXPECT().TransactionByHash(gomock.Any(), hash).Return(nil, true, nil)

		v := newTestVerifier(reader, PolicyStrict)
		status, err := v.CheckStatus(context.Background(), hash)
		require.NoError(t, err)
		assert.Equal(t, entities.TxStatusPending, status)
	})

	t.Run("unknown hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, ethereum.NotFound)
		reader.EXPECT().TransactionByHash(gomock.Any(), hash).Return(nil, false, ethereum.NotFound)

		v := newTestVerifier(reader, PolicyStrict)
		status, err := v.CheckStatus(context.Background(), hash)
		require.NoError(t, err)
		assert.Equal(t, entities.TxStatusNotFound, status)
	})

	t.Run("RPC failure surfaces as chain error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().TransactionReceipt(gomock.Any(), hash).Return(nil, assert.AnError)

		v := newTestVerifier(reader, PolicyStrict)
		_, err := v.CheckStatus(context.Background(), hash)
		require.Error(t, err)
	})
}

func TestEVMVerifier_Connected(t *testing.T) {
	t.Run("matching chain id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(testChainID), nil)

		v := newTestVerifier(reader, PolicyStrict)
		assert.True(t, v.Connected(context.Background()))
	})

	t.Run("wrong chain id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(1), nil)

		v := newTestVerifier(reader, PolicyStrict)
		assert.False(t, v.Connected(context.Background()))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().ChainID(gomock.Any()).Return(nil, assert.AnError)

		v := newTestVerifier(reader, PolicyStrict)
		assert.False(t, v.Connected(context.Background()))
	})
}

func TestEVMVerifier_Balance(t *testing.T) {
	addr := common.HexToAddress("0x2222222222222222222222222222222222222222")

	t.Run("returns balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().BalanceAt(gomock.Any(), addr, nil).Return(big.NewInt(42), nil)

		v := newTestVerifier(reader, PolicyStrict)
		balance, err := v.Balance(context.Background(), addr)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(42), balance)
	})

	t.Run("wraps RPC failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		reader := mocks.NewMockChainReader(ctrl)

		reader.EXPECT().BalanceAt(gomock.Any(), addr, nil).Return(nil, assert.AnError)

		v := newTestVerifier(reader, PolicyStrict)
		_, err := v.Balance(context.Background(), addr)
		require.Error(t, err)
	})
}
