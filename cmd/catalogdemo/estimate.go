package main

import (
	"errors"
	"strconv"
	"strings"
)

// DeliveryEstimate is the response of the delivery simulator
type DeliveryEstimate struct {
	Distance      float64 `json:"distance"`
	EstimatedTime string  `json:"estimatedTime"`
	DeliveryFee   float64 `json:"deliveryFee"`
	MinOrderValue float64 `json:"minOrderValue"`
}

var errInvalidCEP = errors.New("invalid CEP")

// EstimateDelivery derives a delivery quote from a Brazilian postal code.
// The distance is simulated from the CEP prefix, not geolocated.
func EstimateDelivery(cep string) (*DeliveryEstimate, error) {
	cep = strings.ReplaceAll(cep, "-", "")
	if len(cep) != 8 || !isDigits(cep) {
		return nil, errInvalidCEP
	}

	prefix, _ := strconv.Atoi(cep[:5])

	// Distance between 5 and 54 km
	distance := float64(prefix%50 + 5)

	var fee float64
	var estimatedTime string
	switch {
	case distance <= 10:
		fee = 0 // free delivery up to 10km
		estimatedTime = "30-45 min"
	case distance <= 20:
		fee = 15
		estimatedTime = "45-60 min"
	case distance <= 30:
		fee = 25
		estimatedTime = "60-90 min"
	default:
		fee = 35
		estimatedTime = "90-120 min"
	}

	minOrderValue := 100.0
	if distance > 20 {
		minOrderValue = 150.0
	}

	return &DeliveryEstimate{
		Distance:      distance,
		EstimatedTime: estimatedTime,
		DeliveryFee:   fee,
		MinOrderValue: minOrderValue,
	}, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
