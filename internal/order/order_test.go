package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dish-dispatcher/internal/order"
)

func TestNewOrder(t *testing.T) {
	o := order.NewOrder("1", "Burger", order.Hot)

	assert.Equal(t, "1", o.ID)
	assert.Equal(t, "Burger", o.Name)
	assert.Equal(t, order.Hot, o.Temp)
	assert.False(t, o.Cooked)
	assert.False(t, o.PickupSuccessful)
}

func TestCook(t *testing.T) {
	o := order.NewOrder("1", "Pizza", order.Hot)
	cooked := o.Cook()

	assert.True(t, cooked.Cooked)
	assert.False(t, o.Cooked, "Cook must not mutate the receiver")
}

func TestTemperatureValid(t *testing.T) {
	assert.True(t, order.Hot.Valid())
	assert.True(t, order.Cold.Valid())
	assert.True(t, order.Frozen.Valid())
	assert.False(t, order.Temperature("lukewarm").Valid())
	assert.False(t, order.Temperature("overflow").Valid())
}

func TestString(t *testing.T) {
	o := order.NewOrder("1", "Salad", order.Cold)
	assert.Contains(t, o.String(), "Salad")
	assert.Contains(t, o.String(), "cold")
}
