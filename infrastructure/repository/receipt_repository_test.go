package repository

import (
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"x402-gate/domain/entities"
	"x402-gate/domain/errors"
	"x402-gate/test/helpers"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	cleanup := func() {
		_ = db.Close()
	}

	return gormDB, mock, cleanup
}

func sampleReceipt() *entities.PaymentReceipt {
	return &entities.PaymentReceipt{
		JobID:         "job-1",
		ContentType:   "market_data",
		ContentID:     "BTC-100K",
		WalletAddress: "0xAbCd000000000000000000000000000000000001",
		TxHash:        "0x11111111111111111111111111111111111111111111111111111111111111AB",
		Amount:        "1000000000000000",
		PaidAt:        time.Now(),
	}
}

func TestReceiptRepository_Save(t *testing.T) {
	ctx := helpers.TestContext(t)

	t.Run("persists and lowercases identifiers", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "payment_receipts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		receipt := sampleReceipt()
		err := repo.Save(ctx, receipt)
		require.NoError(t, err)

		assert.Equal(t, "0x1111111111111111111111111111111111111111111111111111111111111ab", receipt.TxHash)
		assert.Equal(t, "0xabcd000000000000000000000000000000000001", receipt.WalletAddress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database failures", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "payment_receipts"`).
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.Save(ctx, sampleReceipt())
		require.Error(t, err)

		var repoErr *errors.RepositoryError
		require.True(t, stderrors.As(err, &repoErr))
		assert.Equal(t, "Save", repoErr.Operation)
	})
}

func TestReceiptRepository_FindByTxHash(t *testing.T) {
	ctx := helpers.TestContext(t)
	txHash := "0x1111111111111111111111111111111111111111111111111111111111111ab"

	t.Run("returns the stored receipt", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		rows := sqlmock.NewRows([]string{
			"id", "job_id", "content_type", "content_id",
			"wallet_address", "tx_hash", "amount", "paid_at",
		}).AddRow(
			1, "job-1", "market_data", "BTC-100K",
			"0xabcd000000000000000000000000000000000001", txHash,
			"1000000000000000", time.Now(),
		)

		mock.ExpectQuery(`SELECT .* FROM "payment_receipts"`).WillReturnRows(rows)

		receipt, err := repo.FindByTxHash(ctx, txHash)
		require.NoError(t, err)
		assert.Equal(t, "job-1", receipt.JobID)
		assert.Equal(t, txHash, receipt.TxHash)
	})

	t.Run("missing receipt is not found", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "payment_receipts"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		receipt, err := repo.FindByTxHash(ctx, txHash)
		require.Error(t, err)
		assert.Nil(t, receipt)
		assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	})
}

func TestReceiptRepository_ListByWallet(t *testing.T) {
	ctx := helpers.TestContext(t)

	t.Run("returns recent receipts", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		rows := sqlmock.NewRows([]string{
			"id", "job_id", "content_type", "content_id",
			"wallet_address", "tx_hash", "amount", "paid_at",
		}).
			AddRow(2, "job-2", "chart", "ETH-5K",
				"0xabcd000000000000000000000000000000000001",
				"0xbbb", "2000000000000000", time.Now()).
			AddRow(1, "job-1", "market_data", "BTC-100K",
				"0xabcd000000000000000000000000000000000001",
				"0xaaa", "1000000000000000", time.Now().Add(-time.Minute))

		mock.ExpectQuery(`SELECT .* FROM "payment_receipts"`).WillReturnRows(rows)

		receipts, err := repo.ListByWallet(ctx, "0xAbCd000000000000000000000000000000000001", 10)
		require.NoError(t, err)
		require.Len(t, receipts, 2)
		assert.Equal(t, "job-2", receipts[0].JobID)
	})

	t.Run("wraps database failures", func(t *testing.T) {
		db, mock, cleanup := setupTestDB(t)
		defer cleanup()
		repo := NewReceiptRepository(db)

		mock.ExpectQuery(`SELECT .* FROM "payment_receipts"`).
			WillReturnError(sql.ErrConnDone)

		receipts, err := repo.ListByWallet(ctx, "0xabcd000000000000000000000000000000000001", 10)
		require.Error(t, err)
		assert.Nil(t, receipts)
	})
}
