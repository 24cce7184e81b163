package repository

import (
	"context"
	"testing"
	"time"

	"github.com/louisuxu-sys/BC-LINE/events"
	"github.com/louisuxu-sys/BC-LINE/models"
	"github.com/louisuxu-sys/BC-LINE/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	bus := events.NewBus()
	redeemed := make(chan events.Event, 4)
	bus.Subscribe(events.EventTypeCodeRedeemed, func(_ context.Context, e events.Event) {
		redeemed <- e
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)
	ctx := context.Background()
	expires := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("getters panic before begin", func(t *testing.T) {
		uow := factory.Create()
		assert.Panics(t, func() { uow.EntitlementRepository() })
		assert.Panics(t, func() { uow.RedemptionCodeRepository() })
		assert.NotNil(t, uow.EventBus())
	})

	t.Run("begin twice fails", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()
		assert.Error(t, uow.Begin(ctx))
	})

	t.Run("commit persists and flushes events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		_, err := uow.EntitlementRepository().Upsert(ctx, "Ucommit", expires)
		require.NoError(t, err)
		uow.EventBus().Publish(events.CodeRedeemedEvent{UserID: "Ucommit", Code: "ABCDEFGHJK"})

		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback(), "rollback after commit is a no-op")

		select {
		case e := <-redeemed:
			assert.Equal(t, "Ucommit", e.(events.CodeRedeemedEvent).UserID)
		case <-time.After(2 * time.Second):
			t.Fatal("event was not delivered after commit")
		}

		got, err := NewEntitlementRepository(testDB.DB).GetByUserID(ctx, "Ucommit")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, expires.Equal(got.ExpiresAt))
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		require.NoError(t, uow.RedemptionCodeRepository().CreateBatch(ctx, []*models.RedemptionCode{
			testutil.CreateTestCode("ROLLBACK01", models.CodeDuration1Hour),
		}))
		uow.EventBus().Publish(events.CodeRedeemedEvent{UserID: "Urollback"})

		require.NoError(t, uow.Rollback())

		select {
		case e := <-redeemed:
			t.Fatalf("unexpected event after rollback: %v", e)
		case <-time.After(200 * time.Millisecond):
		}

		exists, err := NewRedemptionCodeRepository(testDB.DB).Exists(ctx, "ROLLBACK01")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("commit without begin fails", func(t *testing.T) {
		assert.Error(t, factory.Create().Commit())
	})
}
