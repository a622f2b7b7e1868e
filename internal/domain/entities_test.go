package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeighborhoodFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"Çankaya, Kültür, Atatürk Cad. No:5", "Kültür"},
		{"Çankaya,  Bahçeli ,No:3", "Bahçeli"},
		{"Çankaya, , No:3", DefaultNeighborhood},
		{"tek segment", DefaultNeighborhood},
		{"", DefaultNeighborhood},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeighborhoodFromAddress(tt.address), "address %q", tt.address)
	}
}

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusPending.IsValid())
	assert.True(t, OrderStatusDelivered.IsValid())
	assert.False(t, OrderStatus("Uçtu").IsValid())

	assert.True(t, OrderStatusPending.Active())
	assert.True(t, OrderStatusOnWay.Active())
	assert.False(t, OrderStatusDelivered.Active())
	assert.False(t, OrderStatusCancelled.Active())
}

func TestCourierStatusIsValid(t *testing.T) {
	assert.True(t, CourierActive.IsValid())
	assert.True(t, CourierBusy.IsValid())
	assert.True(t, CourierOffline.IsValid())
	assert.False(t, CourierStatus("uçuyor").IsValid())
}
