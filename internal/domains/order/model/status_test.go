package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petcare/internal/domains/order/model"
)

func TestStatusValid(t *testing.T) {
	for _, status := range []model.Status{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusProcessing,
		model.StatusShipped,
		model.StatusReadyToPickup,
		model.StatusDelivered,
		model.StatusCompleted,
		model.StatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, model.Status("refunded").Valid())
}

func TestStatusCanTransitionTo(t *testing.T) {
	all := []model.Status{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusProcessing,
		model.StatusShipped,
		model.StatusReadyToPickup,
		model.StatusDelivered,
		model.StatusCompleted,
		model.StatusCancelled,
	}

	allowed := map[model.Status][]model.Status{
		model.StatusPending:       {model.StatusConfirmed, model.StatusCancelled},
		model.StatusConfirmed:     {model.StatusProcessing, model.StatusCancelled},
		model.StatusProcessing:    {model.StatusShipped, model.StatusReadyToPickup},
		model.StatusShipped:       {model.StatusDelivered, model.StatusCompleted},
		model.StatusReadyToPickup: {model.StatusDelivered, model.StatusCompleted},
		model.StatusDelivered:     {model.StatusCompleted},
	}

	for _, from := range all {
		for _, to := range all {
			want := false

			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}

			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestRequiresReceipt(t *testing.T) {
	tests := []struct {
		paymentMethod string
		want          bool
	}{
		{model.PaymentCash, false},
		{model.PaymentGcash, true},
		{model.PaymentCard, true},
	}

	for _, tt := range tests {
		t.Run(tt.paymentMethod, func(t *testing.T) {
			order := model.Order{PaymentMethod: tt.paymentMethod}

			assert.Equal(t, tt.want, order.RequiresReceipt())
		})
	}
}
