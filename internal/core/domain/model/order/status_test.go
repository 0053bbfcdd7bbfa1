package order_test

import (
	"testing"

	"bloomify/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsConfirmed(t *testing.T) {
	tests := []struct {
		status order.Status
		want   bool
	}{
		{status: "confirmed", want: true},
		{status: "Confirmed", want: true},
		{status: "CONFIRMED", want: true},
		{status: "cOnFiRmEd", want: true},
		{status: "pending", want: false},
		{status: "confirmed ", want: false},
		{status: "unconfirmed", want: false},
		{status: "", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsConfirmed())
		})
	}
}

func TestStatusOrDefault(t *testing.T) {
	assert.Equal(t, order.Pending, order.StatusOrDefault(""))
	assert.Equal(t, order.Status("delivered"), order.StatusOrDefault("delivered"))
	assert.Equal(t, "delivered", order.StatusOrDefault("delivered").String())
}
