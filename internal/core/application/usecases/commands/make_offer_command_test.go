package commands_test

import (
	"testing"

	"ineed/internal/core/application/usecases/commands"
	"ineed/internal/core/domain/model/kernel"
	"ineed/internal/core/domain/model/review"
	"ineed/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMakeOfferCommand(t *testing.T) {
	t.Run("creates command", func(t *testing.T) {
		offerID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		providerID := kernel.NewUUID()

		cmd, err := commands.NewMakeOfferCommand(offerID, orderID, providerID, 55.5, "msg")

		require.NoError(t, err)
		assert.True(t, cmd.OfferID().IsEqual(offerID))
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.ProviderID().IsEqual(providerID))
		assert.InDelta(t, 55.5, cmd.Value(), 1e-9)
		assert.Equal(t, "msg", cmd.Message())
		require.NoError(t, cmd.Validate())
	})

	t.Run("rejects non-positive value", func(t *testing.T) {
		_, err := commands.NewMakeOfferCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		var zero kernel.UUID
		_, err := commands.NewMakeOfferCommand(zero, kernel.NewUUID(), kernel.NewUUID(), 10, "")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.MakeOfferCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrMakeOfferCommandIsNotConstructed)
	})
}

func TestNewSubmitReviewCommand(t *testing.T) {
	t.Run("rejects out-of-range rating", func(t *testing.T) {
		_, err := commands.NewSubmitReviewCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 6, "", review.Aspects{})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.SubmitReviewCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrSubmitReviewCommandIsNotConstructed)
	})
}
