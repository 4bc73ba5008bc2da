package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkin  string
		checkout string
		expected int
	}{
		{"Two Full Days", "2024-06-01 00:00", "2024-06-03 00:00", 2},
		{"Single Night", "2024-06-01 00:00", "2024-06-02 00:00", 1},
		{"Partial Day Rounds Up", "2024-06-01 14:00", "2024-06-03 17:00", 3},
		{"Week", "2024-06-01 00:00", "2024-06-08 00:00", 7},
		{"Same Instant", "2024-06-01 00:00", "2024-06-01 00:00", 0},
		{"Checkout Before Checkin", "2024-06-03 00:00", "2024-06-01 00:00", 0},
		{"Few Hours", "2024-06-01 10:00", "2024-06-01 16:00", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Nights(day(tt.checkin), day(tt.checkout)))
		})
	}
}

func TestStayTotal(t *testing.T) {
	t.Run("Nights Times Rate", func(t *testing.T) {
		total := StayTotal(day("2024-06-01 00:00"), day("2024-06-03 00:00"), 100)
		assert.Equal(t, 200.0, total)
	})

	t.Run("Partial Day Bills Full Night", func(t *testing.T) {
		total := StayTotal(day("2024-06-01 14:00"), day("2024-06-03 17:00"), 150)
		assert.Equal(t, 450.0, total)
	})

	t.Run("Zero Nights", func(t *testing.T) {
		total := StayTotal(day("2024-06-01 00:00"), day("2024-06-01 00:00"), 150)
		assert.Equal(t, 0.0, total)
	})
}

func TestAmountMinorUnits(t *testing.T) {
	tests := []struct {
		amount   float64
		expected int64
	}{
		{450, 45000},
		{99.99, 9999},
		{0.1, 10},
		{123.455, 12346}, // rounds, never truncates
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AmountMinorUnits(tt.amount))
	}
}
