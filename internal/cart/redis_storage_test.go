package cart_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/strixcommerce/storefront-platform/internal/cart"
	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStorage(t *testing.T) (*cart.RedisStorage, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	storage := cart.NewRedisStorage(client, 10*time.Minute)

	return storage, mock
}

func TestLoad(t *testing.T) {
	ctx := t.Context()
	key := "cart:" + testSessionID

	t.Run("Success - Cart Found", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)

		saved := models.Cart{Items: []models.CartItem{testItem(1, 2)}}
		data, err := json.Marshal(saved)
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(data))

		// Act
		loaded, err := storage.Load(ctx, testSessionID)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Len(t, loaded.Items, 1)
		assert.Equal(t, int64(1), loaded.Items[0].VariantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Cart Persisted", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)
		mock.ExpectGet(key).SetErr(redis.Nil)

		// Act
		loaded, err := storage.Load(ctx, testSessionID)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Corrupt Blob Dropped And Treated As No Cart", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)
		mock.ExpectGet(key).SetVal("{not json")
		mock.ExpectDel(key).SetVal(1)

		// Act
		loaded, err := storage.Load(ctx, testSessionID)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, loaded)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)
		mock.ExpectGet(key).SetErr(errors.New("connection refused"))

		// Act
		_, err := storage.Load(ctx, testSessionID)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSave(t *testing.T) {
	ctx := t.Context()
	key := "cart:" + testSessionID

	t.Run("Success", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)

		saved := models.Cart{Items: []models.CartItem{testItem(1, 2)}}
		data, err := json.Marshal(&saved)
		require.NoError(t, err)

		mock.ExpectSet(key, data, 10*time.Minute).SetVal("OK")

		// Act
		err = storage.Save(ctx, testSessionID, &saved)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)

		saved := models.Cart{Items: []models.CartItem{testItem(1, 2)}}
		data, err := json.Marshal(&saved)
		require.NoError(t, err)

		mock.ExpectSet(key, data, 10*time.Minute).SetErr(errors.New("connection refused"))

		// Act
		err = storage.Save(ctx, testSessionID, &saved)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorageClear(t *testing.T) {
	ctx := t.Context()
	key := "cart:" + testSessionID

	t.Run("Success", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)
		mock.ExpectDel(key).SetVal(1)

		// Act
		err := storage.Clear(ctx, testSessionID)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		storage, mock := setupStorage(t)
		mock.ExpectDel(key).SetErr(errors.New("connection refused"))

		// Act
		err := storage.Clear(ctx, testSessionID)

		// Assert
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
