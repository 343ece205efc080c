package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderStatusCommand(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewUpdateOrderStatusCommand(orderID, order.PickedUp)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, order.PickedUp, cmd.Next())
	})

	t.Run("invalid order id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.UUID{}, order.PickedUp)
		require.Error(t, err)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(kernel.NewUUID(), order.Unknown)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.UpdateOrderStatusCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderStatusCommandIsNotConstructed)
	})
}
