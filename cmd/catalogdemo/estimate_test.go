package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateDelivery(t *testing.T) {
	tests := []struct {
		name     string
		cep      string
		distance float64
		fee      float64
		time     string
		minOrder float64
	}{
		// 01000 % 50 = 0 -> 5 km, free tier
		{"free tier", "01000-000", 5, 0, "30-45 min", 100},
		// 01010 % 50 = 10 -> 15 km
		{"second tier", "01010-000", 15, 15, "45-60 min", 100},
		// 01020 % 50 = 20 -> 25 km
		{"third tier", "01020000", 25, 25, "60-90 min", 150},
		// 01030 % 50 = 30 -> 35 km, higher minimum
		{"far tier", "01030-000", 35, 35, "90-120 min", 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := EstimateDelivery(tt.cep)
			require.NoError(t, err)
			assert.Equal(t, tt.distance, est.Distance)
			assert.Equal(t, tt.fee, est.DeliveryFee)
			assert.Equal(t, tt.time, est.EstimatedTime)
			assert.Equal(t, tt.minOrder, est.MinOrderValue)
		})
	}
}

func TestEstimateDelivery_InvalidCEP(t *testing.T) {
	for _, cep := range []string{"", "1234567", "123456789", "abcdefgh", "12345-67a"} {
		_, err := EstimateDelivery(cep)
		assert.Error(t, err, "cep %q", cep)
	}
}

func TestFilterProducts(t *testing.T) {
	assert.Len(t, filterProducts(""), 12)
	assert.Len(t, filterProducts("all"), 12)

	legumes := filterProducts("legumes")
	require.NotEmpty(t, legumes)
	for _, p := range legumes {
		assert.Equal(t, "legumes", p.Category)
	}

	assert.Empty(t, filterProducts("carnes"))
}

func TestFindProduct(t *testing.T) {
	p := findProduct("1")
	require.NotNil(t, p)
	assert.Equal(t, "Alface Americana", p.Name)

	assert.Nil(t, findProduct("999"))
}
