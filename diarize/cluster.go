// SPDX-License-Identifier: EPL-2.0

package diarize

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var errClusterCount = errors.New("cluster count exceeds observation count")

// maxCosineDistance replaces NaN distances, which arise from zero-norm
// embeddings such as empty-segment zero vectors.
const maxCosineDistance = 1.0

// cosineDistance is 1 minus the cosine similarity of a and b.
// Degenerate inputs produce NaN, handled by the caller.
func cosineDistance(a, b []float64) float64 {
	dot := floats.Dot(a, b)
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	return 1 - dot/(na*nb)
}

// pairwiseDistances builds the full symmetric cosine distance matrix, with
// NaN entries clamped to the maximum distance.
func pairwiseDistances(features [][]float64) [][]float64 {
	n := len(features)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := cosineDistance(features[i], features[j])
			if math.IsNaN(d) {
				d = maxCosineDistance
			}
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// wardCluster agglomerates n observations into exactly k clusters with
// Ward linkage, using the Lance-Williams update on squared distances.
// Returned labels are 0-based, assigned in order of each cluster's earliest
// member, so the labeling is deterministic.
func wardCluster(dist [][]float64, k int) ([]int, error) {
	n := len(dist)
	if n == 0 {
		return nil, nil
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		return nil, errClusterCount
	}

	// Active cluster state. members[i] holds the original observation
	// indices of cluster i; merged clusters are set to nil.
	members := make([][]int, n)
	size := make([]float64, n)
	d2 := make([][]float64, n)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
		size[i] = 1
		d2[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d2[i][j] = dist[i][j] * dist[i][j]
		}
	}

	active := n
	for active > k {
		// Find the closest active pair.
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if members[i] == nil {
				continue
			}
			for j := i + 1; j < n; j++ {
				if members[j] == nil {
					continue
				}
				if d2[i][j] < best {
					best = d2[i][j]
					bi, bj = i, j
				}
			}
		}
		if bi < 0 {
			break
		}

		// Lance-Williams Ward update against every other active cluster.
		ni, nj := size[bi], size[bj]
		for m := 0; m < n; m++ {
			if members[m] == nil || m == bi || m == bj {
				continue
			}
			nm := size[m]
			merged := ((ni+nm)*d2[bi][m] + (nj+nm)*d2[bj][m] - nm*d2[bi][bj]) / (ni + nj + nm)
			d2[bi][m] = merged
			d2[m][bi] = merged
		}

		members[bi] = append(members[bi], members[bj]...)
		size[bi] += size[bj]
		members[bj] = nil
		active--
	}

	// Merges always collapse into the lower slot, so iterating slots in
	// order labels clusters by their earliest member.
	labels := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		if members[i] == nil {
			continue
		}
		for _, m := range members[i] {
			labels[m] = next
		}
		next++
	}

	return labels, nil
}
