package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_ReachesSuccessExactlyOnce(t *testing.T) {
	sim := NewSimulator(time.Millisecond, 20*time.Millisecond)
	assert.Equal(t, StepInput, sim.Step())

	require.NoError(t, sim.Start(context.Background()))
	assert.Equal(t, StepProcessing, sim.Step())

	txn, err := sim.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, sim.Step())
	assert.True(t, strings.HasPrefix(txn, "TXN"))

	// a completed simulator cannot re-enter processing
	assert.ErrorIs(t, sim.Start(context.Background()), ErrAlreadyStarted)
	assert.Equal(t, StepSuccess, sim.Step())
	assert.Equal(t, txn, sim.TransactionID())
}

func TestSimulator_DoubleStartRejected(t *testing.T) {
	sim := NewSimulator(time.Millisecond, 50*time.Millisecond)
	require.NoError(t, sim.Start(context.Background()))
	assert.ErrorIs(t, sim.Start(context.Background()), ErrAlreadyStarted)
}

func TestSimulator_CancelDiscardsPayment(t *testing.T) {
	sim := NewSimulator(time.Millisecond, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, sim.Start(ctx))

	cancel()
	_, err := sim.Wait(ctx)
	assert.ErrorIs(t, err, ErrCancelled)

	// give the run goroutine a moment to observe the cancellation
	time.Sleep(5 * time.Millisecond)
	assert.NotEqual(t, StepSuccess, sim.Step())
	assert.Empty(t, sim.TransactionID())
}

func TestSimulator_StatusCyclesDuringProcessing(t *testing.T) {
	sim := NewSimulator(time.Millisecond, 30*time.Millisecond)
	first := sim.Status()
	require.NoError(t, sim.Start(context.Background()))

	_, err := sim.Wait(context.Background())
	require.NoError(t, err)
	// with a 1ms tick and 30ms total the text has moved past the first entry
	assert.NotEqual(t, first, sim.Status())
}

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		details Details
		wantErr error
	}{
		{"card ok", MethodCard, Details{CardNumber: "4111 1111 1111 1111", Expiry: "12/27", CVV: "123"}, nil},
		{"card short", MethodCard, Details{CardNumber: "4111 1111", Expiry: "12/27", CVV: "123"}, ErrInvalidCard},
		{"card bad expiry", MethodCard, Details{CardNumber: "4111111111111111", Expiry: "13/27", CVV: "123"}, ErrInvalidExpiry},
		{"card bad cvv", MethodCard, Details{CardNumber: "4111111111111111", Expiry: "12/27", CVV: "12"}, ErrInvalidCVV},
		{"upi ok", MethodUPI, Details{UPIID: "someone@okbank"}, nil},
		{"upi missing at", MethodUPI, Details{UPIID: "someone"}, ErrInvalidUPI},
		{"wallet needs nothing", MethodWallet, Details{}, nil},
		{"netbanking needs nothing", MethodNetbanking, Details{}, nil},
		{"unknown method", "cash", Details{}, ErrUnknownMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDetails(tt.method, tt.details)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestFormatCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111-1111-1111-1111"))
	assert.Equal(t, "4111 11", FormatCardNumber("411111"))
	assert.Equal(t, "", FormatCardNumber("no digits"))
}
