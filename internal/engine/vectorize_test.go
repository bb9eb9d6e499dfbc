package engine

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLevel(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{"free", 0, 0},
		{"half average", 50, 0.3},
		{"at average", 100, 0.5},
		{"1.5x average", 150, 0.7},
		{"3x average", 300, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PriceLevel(tt.price, 100), 1e-9)
		})
	}
}

func TestPriceLevelExtremeTail(t *testing.T) {
	// Far above market stays under 1.0 but above the 3x anchor.
	v := PriceLevel(500, 100)
	assert.Greater(t, v, 0.9)
	assert.Less(t, v, 1.0)

	// Monotone in the tail.
	assert.Greater(t, PriceLevel(2000, 100), v)
	assert.Less(t, PriceLevel(1e9, 100), 1.0)
}

func TestPriceLevelContinuity(t *testing.T) {
	// The curve must not jump at segment borders.
	for _, ratio := range []float64{0.5, 1.5, 3.0} {
		below := PriceLevel(ratio*100-0.01, 100)
		above := PriceLevel(ratio*100+0.01, 100)
		assert.InDelta(t, below, above, 0.01, "discontinuity at ratio %.1f", ratio)
	}
}

func TestPriceLevelNoReference(t *testing.T) {
	assert.Equal(t, 0.5, PriceLevel(100, 0))
	assert.Equal(t, 0.5, PriceLevel(100, -5))
}

func TestMarketAverage(t *testing.T) {
	items := []Item{
		fakeItem{id: "a", price: 50},
		fakeItem{id: "b", price: 150},
		fakeItem{id: "c", price: 0}, // unpriced, excluded
	}
	assert.Equal(t, 100.0, marketAverage(items, 42))
}

func TestMarketAverageFallback(t *testing.T) {
	items := []Item{fakeItem{id: "a"}, fakeItem{id: "b"}}
	assert.Equal(t, 42.0, marketAverage(items, 42))
	assert.Equal(t, 42.0, marketAverage(nil, 42))
}

func TestVectorizeBatch(t *testing.T) {
	eng := newTestEngine(t, fakeAdapter{}, testConfig())

	items := make([]Item, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, fakeItem{id: fmt.Sprintf("item-%d", i), vec: uniformVector(0.5)})
	}

	cands, errs := eng.vectorizeBatch(items)
	require.Empty(t, errs)
	require.Len(t, cands, 20)

	// Order is preserved despite the concurrent fan-out.
	for i, c := range cands {
		assert.Equal(t, fmt.Sprintf("item-%d", i), c.item.Meta().ID)
	}
}

func TestVectorizeBatchPartialFailure(t *testing.T) {
	adapter := fakeAdapter{
		vectorize: func(it Item, _ VectorizationConfig, _ float64) (Vector, error) {
			switch it.Meta().ID {
			case "bad":
				return nil, fmt.Errorf("malformed item")
			case "invalid":
				return Vector{2.0}, nil // wrong shape and range
			}
			return uniformVector(0.5), nil
		},
	}
	eng := newTestEngine(t, adapter, testConfig())

	cands, errs := eng.vectorizeBatch([]Item{
		fakeItem{id: "ok-1"},
		fakeItem{id: "bad"},
		fakeItem{id: "invalid"},
		fakeItem{id: "ok-2"},
	})

	require.Len(t, cands, 2)
	assert.Equal(t, "ok-1", cands[0].item.Meta().ID)
	assert.Equal(t, "ok-2", cands[1].item.Meta().ID)

	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.Equal(t, StageVectorizing, e.Stage)
	}
}

func TestVectorizeBatchPanicIsolation(t *testing.T) {
	adapter := fakeAdapter{
		vectorize: func(it Item, _ VectorizationConfig, _ float64) (Vector, error) {
			if it.Meta().ID == "boom" {
				panic("adapter bug")
			}
			return uniformVector(0.5), nil
		},
	}
	eng := newTestEngine(t, adapter, testConfig())

	cands, errs := eng.vectorizeBatch([]Item{fakeItem{id: "boom"}, fakeItem{id: "ok"}})
	require.Len(t, cands, 1)
	require.Len(t, errs, 1)
	assert.Equal(t, "boom", errs[0].ItemID)
}

func TestVectorizeBatchUsesBatchAverage(t *testing.T) {
	var mu sync.Mutex
	var gotRef float64
	adapter := fakeAdapter{
		vectorize: func(_ Item, _ VectorizationConfig, ref float64) (Vector, error) {
			mu.Lock()
			gotRef = ref
			mu.Unlock()
			return uniformVector(0.5), nil
		},
	}
	eng := newTestEngine(t, adapter, testConfig())

	eng.vectorizeBatch([]Item{
		fakeItem{id: "a", price: 200},
		fakeItem{id: "b", price: 400},
	})
	// The batch average, not the configured fallback.
	assert.Equal(t, 300.0, gotRef)
}
