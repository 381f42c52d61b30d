package clients

import (
	"testing"

	"github.com/helixml/brokerseed/domain/broker"
	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		total int
		want  []int
	}{
		{2000, []int{1500, 300, 150, 50}},
		{40, []int{30, 6, 3, 1}},
		{7, []int{5, 1, 0, 1}},
		{0, []int{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		targets := Split(tt.total)
		got := make([]int, len(targets))
		sum := 0
		for i, target := range targets {
			got[i] = target.Count
			sum += target.Count
		}
		assert.Equal(t, tt.want, got, "total %d", tt.total)
		assert.Equal(t, tt.total, sum)
	}
}

func TestSplit_TypeOrder(t *testing.T) {
	targets := Split(100)

	assert.Equal(t, broker.ClientTypeB2C, targets[0].Type)
	assert.Equal(t, broker.ClientTypeB2B, targets[1].Type)
	assert.Equal(t, broker.ClientTypeVIP, targets[2].Type)
	assert.Equal(t, broker.ClientTypeCorporate, targets[3].Type)
}
