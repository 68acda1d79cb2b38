package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PMS-FacilityService/pkg/ptr"
)

func TestQuoteFee_HourlyProration(t *testing.T) {
	f := newTestFacility()
	f.HourlyFee = ptr.Ptr(25.0)

	cases := []struct {
		name     string
		duration time.Duration
		want     float64
	}{
		{"two hours", 2 * time.Hour, 50.0},
		{"half hour", 30 * time.Minute, 12.5},
		{"ninety minutes", 90 * time.Minute, 37.5},
		{"one minute", time.Minute, 25.0 / 60.0},
	}

	start := mondayAt(10, 0)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote := QuoteFee(f, start, start.Add(tc.duration))
			assert.InDelta(t, tc.want, quote.Fee, 1e-9)
		})
	}
}

func TestQuoteFee_UnsetRatesQuoteZero(t *testing.T) {
	f := newTestFacility()

	quote := QuoteFee(f, mondayAt(10, 0), mondayAt(12, 0))
	assert.Zero(t, quote.Fee)
	assert.Zero(t, quote.Deposit)
}

func TestQuoteFee_DepositIsFlat(t *testing.T) {
	// Депозит не зависит от длительности.
	f := newTestFacility()
	f.DepositAmount = ptr.Ptr(100.0)

	short := QuoteFee(f, mondayAt(10, 0), mondayAt(10, 30))
	long := QuoteFee(f, mondayAt(10, 0), mondayAt(17, 0))

	assert.Equal(t, 100.0, short.Deposit)
	assert.Equal(t, 100.0, long.Deposit)
	assert.Zero(t, short.Fee)
}

func TestQuoteFee_Additivity(t *testing.T) {
	// Сумма за [a,b) плюс сумма за [b,c) равна сумме за [a,c).
	rng := rand.New(rand.NewSource(13))
	f := newTestFacility()
	f.HourlyFee = ptr.Ptr(37.5)

	base := mondayAt(0, 0)
	for i := 0; i < 500; i++ {
		a := base.Add(time.Duration(rng.Intn(600)) * time.Minute)
		b := a.Add(time.Duration(1+rng.Intn(300)) * time.Minute)
		c := b.Add(time.Duration(1+rng.Intn(300)) * time.Minute)

		left := QuoteFee(f, a, b).Fee
		right := QuoteFee(f, b, c).Fee
		whole := QuoteFee(f, a, c).Fee

		require.InDelta(t, whole, left+right, 1e-6,
			"a=%s b=%s c=%s", a.Format("15:04"), b.Format("15:04"), c.Format("15:04"))
	}
}
