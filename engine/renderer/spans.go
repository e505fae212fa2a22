package renderer

// depthBufferSpan is a contiguous depth interval holding a run of visible
// items. Each span is rendered with its own projection slice and a private
// region of the depth buffer, so the near/far ratio within any one span
// stays small enough for adequate depth precision.
//
// Spans are stored back to front: index 0 is the farthest span, and the
// items of a span are m_visibleItems[backItemIndex-i] in the renderer's
// item list. backItemIndex is the index of the span's most distant item.
type depthBufferSpan struct {
	nearDistance  float32
	farDistance   float32
	backItemIndex int
	itemCount     int
}

// splitDepthBuffer walks the visible items from back to front and groups
// them into depth spans. Items whose depth intervals touch share a span;
// a gap between consecutive items closes the current span and records an
// empty placeholder span covering the gap, so that coalescing can still
// merge across it when the ratio allows.
//
// items must be sorted by ascending farDistance.
func splitDepthBuffer(items []visibleItem) []depthBufferSpan {
	var spans []depthBufferSpan

	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]

		if len(spans) == 0 {
			spans = append(spans, depthBufferSpan{
				backItemIndex: i,
				itemCount:     1,
				farDistance:   item.farDistance,
				nearDistance:  item.nearDistance,
			})
			continue
		}

		span := &spans[len(spans)-1]
		if item.farDistance < span.nearDistance {
			// Item doesn't overlap the current span. Record the empty range
			// in between, then start a new span containing the item.
			emptySpan := depthBufferSpan{
				farDistance:   span.nearDistance,
				nearDistance:  item.farDistance,
				backItemIndex: i,
				itemCount:     0,
			}
			newSpan := depthBufferSpan{
				farDistance:   item.farDistance,
				nearDistance:  item.nearDistance,
				backItemIndex: i,
				itemCount:     1,
			}
			spans = append(spans, emptySpan, newSpan)
		} else {
			span.itemCount++
			if item.nearDistance < span.nearDistance {
				span.nearDistance = item.nearDistance
			}
		}
	}

	return spans
}

// coalesceDepthBuffer greedily merges adjacent spans for as long as the
// merged near/far ratio stays at or above preferredNearFarRatio. This keeps
// the depth buffer from being over-partitioned without sacrificing
// precision.
func coalesceDepthBuffer(spans []depthBufferSpan) []depthBufferSpan {
	var merged []depthBufferSpan

	i := 0
	for i < len(spans) {
		farDistance := spans[i].farDistance
		itemCount := spans[i].itemCount

		j := i
		for j < len(spans)-1 {
			if spans[j+1].nearDistance/farDistance < preferredNearFarRatio {
				break
			}
			itemCount += spans[j+1].itemCount
			j++
		}

		merged = append(merged, depthBufferSpan{
			farDistance:   farDistance,
			nearDistance:  spans[j].nearDistance,
			backItemIndex: spans[i].backItemIndex,
			itemCount:     itemCount,
		})

		i = j + 1
	}

	return merged
}

// extendSpansForSplittables grows the merged span list so that splittable
// geometry (orbit paths and other huge, clipping-averse items) is covered
// from the projection's near plane out to the farthest splittable extent.
// The added spans contain no regular items; splittable items are drawn into
// every span they overlap.
//
// splittables must be non-empty and sorted by ascending farDistance.
func extendSpansForSplittables(merged []depthBufferSpan, splittables []visibleItem, projNearDistance, projFarDistance float32) []depthBufferSpan {
	// The synthetic spans aren't sized by their contents, so a looser
	// near/far ratio keeps their count down.
	const maxFarNearRatio = 10000.0

	furthestDistance := min32(splittables[0].farDistance, projFarDistance)

	if len(merged) == 0 {
		// The only visible geometry is splittable. This happens in solar
		// system views where just the orbits are in view; a single span at
		// the back is enough to start from.
		merged = append(merged, depthBufferSpan{
			farDistance:  projFarDistance,
			nearDistance: max32(projNearDistance, projFarDistance/maxFarNearRatio),
		})
	} else if furthestDistance > merged[0].farDistance {
		back := depthBufferSpan{
			farDistance:  furthestDistance,
			nearDistance: merged[0].farDistance,
		}
		merged = append([]depthBufferSpan{back}, merged...)
	}

	// Fill toward the camera. Spans are stored in reverse order, so the
	// foreground span is the last one in the list.
	for merged[len(merged)-1].nearDistance > projNearDistance {
		front := depthBufferSpan{
			farDistance: merged[len(merged)-1].nearDistance,
		}
		front.nearDistance = max32(projNearDistance, front.farDistance/maxFarNearRatio)
		merged = append(merged, front)
	}

	// One extra span behind everything, so geometry just past the farthest
	// item isn't clipped.
	back := depthBufferSpan{
		nearDistance: merged[0].farDistance,
	}
	back.farDistance = back.nearDistance * maxFarNearRatio
	merged = append([]depthBufferSpan{back}, merged...)

	return merged
}
