package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(near, far float32) visibleItem {
	return visibleItem{nearDistance: near, farDistance: far}
}

func TestSplitDepthBuffer(t *testing.T) {
	tests := []struct {
		name  string
		items []visibleItem
		want  []depthBufferSpan
	}{
		{
			name:  "no items",
			items: nil,
			want:  nil,
		},
		{
			name:  "single item",
			items: []visibleItem{item(5, 10)},
			want: []depthBufferSpan{
				{nearDistance: 5, farDistance: 10, backItemIndex: 0, itemCount: 1},
			},
		},
		{
			name:  "overlapping items share a span",
			items: []visibleItem{item(4, 9), item(8, 12)},
			want: []depthBufferSpan{
				{nearDistance: 4, farDistance: 12, backItemIndex: 1, itemCount: 2},
			},
		},
		{
			name:  "touching items share a span",
			items: []visibleItem{item(4, 8), item(8, 12)},
			want: []depthBufferSpan{
				{nearDistance: 4, farDistance: 12, backItemIndex: 1, itemCount: 2},
			},
		},
		{
			name:  "gap produces an empty placeholder span",
			items: []visibleItem{item(1, 10), item(1000, 2000)},
			want: []depthBufferSpan{
				{nearDistance: 1000, farDistance: 2000, backItemIndex: 1, itemCount: 1},
				{nearDistance: 10, farDistance: 1000, backItemIndex: 0, itemCount: 0},
				{nearDistance: 1, farDistance: 10, backItemIndex: 0, itemCount: 1},
			},
		},
		{
			name: "mixed overlap and gap",
			items: []visibleItem{
				item(1, 2), item(50, 120), item(100, 200),
			},
			want: []depthBufferSpan{
				{nearDistance: 50, farDistance: 200, backItemIndex: 2, itemCount: 2},
				{nearDistance: 2, farDistance: 50, backItemIndex: 0, itemCount: 0},
				{nearDistance: 1, farDistance: 2, backItemIndex: 0, itemCount: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDepthBuffer(tt.items))
		})
	}
}

func TestCoalesceDepthBuffer(t *testing.T) {
	tests := []struct {
		name  string
		spans []depthBufferSpan
		want  []depthBufferSpan
	}{
		{
			name:  "no spans",
			spans: nil,
			want:  nil,
		},
		{
			name: "merges while ratio stays comfortable",
			spans: []depthBufferSpan{
				{nearDistance: 10, farDistance: 100, backItemIndex: 3, itemCount: 2},
				{nearDistance: 1, farDistance: 10, backItemIndex: 1, itemCount: 2},
			},
			// 1/100 is well above preferredNearFarRatio, so one span
			// covering both is enough.
			want: []depthBufferSpan{
				{nearDistance: 1, farDistance: 100, backItemIndex: 3, itemCount: 4},
			},
		},
		{
			name: "keeps spans apart when the ratio collapses",
			spans: []depthBufferSpan{
				{nearDistance: 1e4, farDistance: 1e6, backItemIndex: 2, itemCount: 1},
				{nearDistance: 1, farDistance: 10, backItemIndex: 0, itemCount: 1},
			},
			// 1/1e6 is far below preferredNearFarRatio.
			want: []depthBufferSpan{
				{nearDistance: 1e4, farDistance: 1e6, backItemIndex: 2, itemCount: 1},
				{nearDistance: 1, farDistance: 10, backItemIndex: 0, itemCount: 1},
			},
		},
		{
			name: "empty placeholder spans merge into a neighbor",
			spans: []depthBufferSpan{
				{nearDistance: 80, farDistance: 100, backItemIndex: 1, itemCount: 1},
				{nearDistance: 10, farDistance: 80, backItemIndex: 0, itemCount: 0},
				{nearDistance: 1, farDistance: 10, backItemIndex: 0, itemCount: 1},
			},
			want: []depthBufferSpan{
				{nearDistance: 1, farDistance: 100, backItemIndex: 1, itemCount: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coalesceDepthBuffer(tt.spans))
		})
	}
}

func TestCoalesceRatioBoundary(t *testing.T) {
	// A merged near/far ratio exactly at preferredNearFarRatio still merges;
	// anything smaller does not.
	atBoundary := []depthBufferSpan{
		{nearDistance: preferredNearFarRatio * 1000, farDistance: 1000, itemCount: 1},
		{nearDistance: preferredNearFarRatio * 1000, farDistance: preferredNearFarRatio * 1000, itemCount: 1},
	}
	merged := coalesceDepthBuffer(atBoundary)
	require.Len(t, merged, 1)
	assert.Equal(t, 2, merged[0].itemCount)

	below := []depthBufferSpan{
		{nearDistance: 900, farDistance: 1000, itemCount: 1},
		{nearDistance: 1, farDistance: 900, itemCount: 1},
	}
	assert.Len(t, coalesceDepthBuffer(below), 2)
}

func TestExtendSpansForSplittables(t *testing.T) {
	t.Run("only splittable geometry in view", func(t *testing.T) {
		splittables := []visibleItem{item(0.5, 5000)}

		spans := extendSpansForSplittables(nil, splittables, 1, 1e6)

		// One span at the back of the view volume, filled toward the near
		// plane, plus the extra span behind everything.
		require.Len(t, spans, 3)
		assert.Equal(t, float32(1e10), spans[0].farDistance)
		assert.Equal(t, float32(1e6), spans[0].nearDistance)
		assert.Equal(t, float32(1e6), spans[1].farDistance)
		assert.Equal(t, float32(100), spans[1].nearDistance)
		assert.Equal(t, float32(100), spans[2].farDistance)
		assert.Equal(t, float32(1), spans[2].nearDistance)
	})

	t.Run("splittable extends behind the occupied spans", func(t *testing.T) {
		merged := []depthBufferSpan{
			{nearDistance: 10, farDistance: 100, backItemIndex: 0, itemCount: 1},
		}
		splittables := []visibleItem{item(0.5, 5000)}

		spans := extendSpansForSplittables(merged, splittables, 1, 1e6)

		require.Len(t, spans, 4)
		// Extra back span, then the splittable extension, then the original
		// span, then the front fill down to the near plane.
		assert.Equal(t, float32(5e7), spans[0].farDistance)
		assert.Equal(t, float32(5000), spans[0].nearDistance)
		assert.Equal(t, float32(5000), spans[1].farDistance)
		assert.Equal(t, float32(100), spans[1].nearDistance)
		assert.Equal(t, depthBufferSpan{nearDistance: 10, farDistance: 100, backItemIndex: 0, itemCount: 1}, spans[2])
		assert.Equal(t, float32(10), spans[3].farDistance)
		assert.Equal(t, float32(1), spans[3].nearDistance)
	})

	t.Run("splittable extent is clamped to the projection far plane", func(t *testing.T) {
		merged := []depthBufferSpan{
			{nearDistance: 1, farDistance: 100, itemCount: 1},
		}
		splittables := []visibleItem{item(0.5, 1e9)}

		spans := extendSpansForSplittables(merged, splittables, 1, 1e6)

		require.Len(t, spans, 3)
		assert.Equal(t, float32(1e6), spans[1].farDistance)
		assert.Equal(t, float32(100), spans[1].nearDistance)
	})

	t.Run("no extension needed when spans already cover the splittable", func(t *testing.T) {
		merged := []depthBufferSpan{
			{nearDistance: 1, farDistance: 10000, itemCount: 2},
		}
		splittables := []visibleItem{item(2, 5000)}

		spans := extendSpansForSplittables(merged, splittables, 1, 1e6)

		// Only the extra back span is added.
		require.Len(t, spans, 2)
		assert.Equal(t, float32(10000), spans[0].nearDistance)
		assert.Equal(t, float32(1e8), spans[0].farDistance)
		assert.Equal(t, merged[0], spans[1])
	})
}
