package slug

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hello World!", "hello-world"},
		{"underscores and spaces", "  ZK_T88   Pro  ", "zk-t88-pro"},
		{"edge hyphens", "--Edge--", "edge"},
		{"keeps inner hyphens", "a-b", "a-b"},
		{"arabic only", "برنامج المحاسبة", ""},
		{"mixed", "نظام POS 2024", "pos-2024"},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.in))
		})
	}
}

func TestWithFallback(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "program-1700000000123", WithFallback("   ", "program", now))
	assert.Equal(t, "program-1700000000123", WithFallback("برنامج", "program", now))
	assert.Equal(t, "erp-suite", WithFallback("ERP Suite", "program", now))
}

var errTaken = errors.New("slug taken")

func TestAllocateSuffixes(t *testing.T) {
	used := map[string]bool{"zk-100": true, "zk-100-1": true}
	insert := func(c string) error {
		if used[c] {
			return errTaken
		}
		used[c] = true
		return nil
	}
	isTaken := func(err error) bool { return errors.Is(err, errTaken) }

	got, err := Allocate(context.Background(), "zk-100", insert, isTaken)
	require.NoError(t, err)
	assert.Equal(t, "zk-100-2", got)

	got, err = Allocate(context.Background(), "fresh", insert, isTaken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}

func TestAllocateStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := Allocate(context.Background(), "x", func(string) error {
		calls++
		return boom
	}, func(err error) bool { return errors.Is(err, errTaken) })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestAllocateExhausted(t *testing.T) {
	_, err := Allocate(context.Background(), "x", func(string) error { return errTaken },
		func(err error) bool { return true })
	assert.ErrorIs(t, err, ErrExhausted)
}
