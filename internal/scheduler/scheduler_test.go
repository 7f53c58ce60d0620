package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCronSpec(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08:30", "30 8 * * *"},
		{"00:00", "0 0 * * *"},
		{"23:59", "59 23 * * *"},
	}
	for _, tt := range tests {
		got, err := CronSpec(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCronSpecRejectsInvalid(t *testing.T) {
	for _, bad := range []string{"", "8", "24:00", "12:60", "aa:bb", "12:34:56"} {
		_, err := CronSpec(bad)
		assert.Error(t, err, "%q should be rejected", bad)
	}
}

func TestNewRequiresRunFunc(t *testing.T) {
	_, err := New("08:00", nil)
	assert.Error(t, err)
}

func TestStartRunsImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	s, err := New("08:00", func(context.Context) {
		ran <- struct{}{}
	})
	require.NoError(t, err)

	s.Start(context.Background())
	defer s.Stop()

	select {
	case <-ran:
	default:
		t.Fatal("expected an immediate run on Start")
	}
}
