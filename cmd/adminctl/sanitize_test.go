package main

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	bookingentity "castle-admin/modules/booking/entity"
	"castle-admin/modules/booking/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSampleBookings(t *testing.T) {
	today := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	bookings := SampleBookings(rand.New(rand.NewPCG(1, 2)), today)

	require.Len(t, bookings, len(sampleCustomers))
	wantStatus := []bookingentity.Status{"confirmed", "pending", "completed", "confirmed", "pending"}
	for i, b := range bookings {
		assert.Equal(t, int64(i+1), b.ID)
		assert.Equal(t, wantStatus[i], b.Status)
		assert.Contains(t, b.CustomerEmail, "@example.com")
		assert.True(t, b.Date.After(today), "date %s", b.Date)
		assert.False(t, b.Date.After(today.AddDate(0, 6, 0)))
		assert.Contains(t, samplePrices, b.TotalPrice)
		assert.Equal(t, pricing.Deposit(b.TotalPrice), b.Deposit)
		require.NotNil(t, b.CastleID)
		assert.Equal(t, sampleServices[*b.CastleID-1], b.CastleName)
		if b.AgreementSigned {
			require.NotNil(t, b.AgreementSignedBy)
			assert.Equal(t, b.CustomerName, *b.AgreementSignedBy)
		}
	}
	assert.Equal(t, "SAMPLE001", bookings[0].BookingRef)
	assert.Equal(t, "SAMPLE005", bookings[4].BookingRef)
}

func TestSampleBookingsAreReproducible(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	a := SampleBookings(rand.New(rand.NewPCG(7, 7)), today)
	b := SampleBookings(rand.New(rand.NewPCG(7, 7)), today)
	assert.Equal(t, a, b)
}

func TestSanitizeWritesFiles(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "data", "sample-bookings.json")
	env := filepath.Join(dir, ".env.template")

	app := &cli.App{Commands: []*cli.Command{sanitizeCommand()}, Writer: os.Stdout}
	require.NoError(t, app.Run([]string{"adminctl", "sanitize", "--out", out, "--env", env, "--seed", "42"}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"booking_ref": "SAMPLE001"`)

	tmpl, err := os.ReadFile(env)
	require.NoError(t, err)
	assert.Contains(t, string(tmpl), "ADMIN_EMAILS=")
}
