package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    Price
		wantErr error
	}{
		{name: "whole", amount: 25, want: 2500},
		{name: "cents", amount: 19.99, want: 1999},
		{name: "rounds half cent", amount: 0.125, want: 13},
		{name: "zero", amount: 0, want: 0},
		{name: "negative", amount: -1, wantErr: ErrNegativePrice},
		{name: "largest whole amount", amount: 92233720368547, want: 9223372036854700},
		{name: "overflows cents", amount: 1e20, wantErr: ErrPriceTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceFromFloat(tt.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "30.00", Price(3000).String())
	assert.Equal(t, "0.05", Price(5).String())
	assert.Equal(t, "20.50", Price(2050).String())
	assert.InDelta(t, 40.0, Price(4000).Float(), 1e-9)
}

func TestPriceMarshalJSON(t *testing.T) {
	b, err := Price(2500).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "25.00", string(b))
}

func TestPriceUnmarshalJSON(t *testing.T) {
	var d Dish
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"name":"Sushi Combo","price":40.00}`), &d))
	assert.Equal(t, Price(4000), d.Price)

	err := json.Unmarshal([]byte(`{"price":-3}`), &d)
	require.ErrorIs(t, err, ErrNegativePrice)

	err = json.Unmarshal([]byte(`{"price":"abc"}`), &d)
	require.Error(t, err)
}
