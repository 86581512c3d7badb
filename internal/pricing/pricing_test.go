package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rate(cents int32) *int32 {
	return &cents
}

func TestCompute_AllTiers(t *testing.T) {
	daily := int32(300)
	weekly := rate(1800)
	monthly := rate(6000)

	t.Run("One day", func(t *testing.T) {
		q, err := Compute(1, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(300), q.TotalCents)
		assert.Equal(t, "1 day", q.Breakdown)
	})

	t.Run("Exactly one week", func(t *testing.T) {
		q, err := Compute(7, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(1800), q.TotalCents)
		assert.Equal(t, "1 week", q.Breakdown)
	})

	t.Run("Week plus days", func(t *testing.T) {
		q, err := Compute(10, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(2700), q.TotalCents) // 1800 + 3*300
		assert.Equal(t, "1 week + 3 days", q.Breakdown)
	})

	t.Run("Exactly one month", func(t *testing.T) {
		q, err := Compute(30, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(6000), q.TotalCents)
		assert.Equal(t, "1 month", q.Breakdown)
	})

	t.Run("Month plus days", func(t *testing.T) {
		q, err := Compute(35, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(7500), q.TotalCents) // 6000 + 5*300
		assert.Equal(t, "1 month + 5 days", q.Breakdown)
	})

	t.Run("Month plus week plus days", func(t *testing.T) {
		q, err := Compute(40, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(8700), q.TotalCents) // 6000 + 1800 + 3*300
		assert.Equal(t, "1 month + 1 week + 3 days", q.Breakdown)
		assert.Equal(t, 1, q.Months)
		assert.Equal(t, 1, q.Weeks)
		assert.Equal(t, 3, q.Days)
	})

	t.Run("Two months", func(t *testing.T) {
		q, err := Compute(63, daily, weekly, monthly)
		assert.NoError(t, err)
		assert.Equal(t, int32(12900), q.TotalCents) // 2*6000 + 900
		assert.Equal(t, "2 months + 3 days", q.Breakdown)
	})
}

func TestCompute_MissingTiers(t *testing.T) {
	daily := int32(300)

	t.Run("Daily only", func(t *testing.T) {
		q, err := Compute(5, daily, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(1500), q.TotalCents)
		assert.Equal(t, "5 days", q.Breakdown)
	})

	t.Run("Long duration with daily only", func(t *testing.T) {
		q, err := Compute(35, daily, nil, nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(10500), q.TotalCents) // no tier to consume
		assert.Equal(t, "35 days", q.Breakdown)
	})

	t.Run("Weekly without monthly", func(t *testing.T) {
		q, err := Compute(35, daily, rate(1800), nil)
		assert.NoError(t, err)
		assert.Equal(t, int32(9000), q.TotalCents) // 5 weeks
		assert.Equal(t, "5 weeks", q.Breakdown)
	})

	t.Run("Monthly without weekly", func(t *testing.T) {
		q, err := Compute(40, daily, nil, rate(6000)) // 1 month + 10 days
		assert.NoError(t, err)
		assert.Equal(t, int32(9000), q.TotalCents) // 6000 + 10*300
		assert.Equal(t, "1 month + 10 days", q.Breakdown)
	})
}

func TestCompute_InvalidInput(t *testing.T) {
	_, err := Compute(0, 300, nil, nil)
	assert.Error(t, err)

	_, err = Compute(-3, 300, nil, nil)
	assert.Error(t, err)

	_, err = Compute(5, -100, nil, nil)
	assert.Error(t, err)
}
