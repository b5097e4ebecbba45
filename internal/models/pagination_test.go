package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestSkip(t *testing.T) {
	tests := []struct {
		name string
		page PageRequest
		want int64
	}{
		{"first page", PageRequest{Page: 1, Limit: 10}, 0},
		{"third page", PageRequest{Page: 3, Limit: 10}, 20},
		{"zero page", PageRequest{Page: 0, Limit: 10}, 0},
		{"zero limit", PageRequest{Page: 5, Limit: 0}, 0},
		{"saturates", PageRequest{Page: math.MaxInt, Limit: 2}, math.MaxInt64},
		{"just below saturation", PageRequest{Page: math.MaxInt64/100 + 1, Limit: 100}, math.MaxInt64 / 100 * 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Skip())
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(21, PageRequest{Page: 2, Limit: 10})
	assert.Equal(t, int64(3), p.TotalPages)
	assert.Equal(t, 2, p.Page)
}
