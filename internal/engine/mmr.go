package engine

// diversify applies greedy MMR selection to a score-sorted candidate
// list and returns up to limit items in selection order.
//
//	mmr = lambda*relevance - (1-lambda)*maxSimilarityToSelected
//
// relevance is the candidate's final score; maxSimilarityToSelected is
// the highest cosine similarity between the candidate's vector and any
// already-selected vector (0 while nothing is selected). Ties go to the
// first-seen candidate, which keeps the output deterministic. lambda=1
// degenerates to pure relevance, lambda=0 to pure novelty.
//
// O(limit * n) comparisons of O(limit) vector pairs, fine for the
// expected 50-200 candidate batches.
func diversify(sorted []ScoredCandidate, limit int, lambda float64) []ScoredCandidate {
	if limit <= 0 || len(sorted) == 0 {
		return []ScoredCandidate{}
	}
	if limit > len(sorted) {
		limit = len(sorted)
	}
	lambda = Clamp01(lambda)

	selected := make([]ScoredCandidate, 0, limit)
	remaining := make([]ScoredCandidate, len(sorted))
	copy(remaining, sorted)

	for len(selected) < limit && len(remaining) > 0 {
		bestIdx := 0
		bestScore := mmrScore(remaining[0], selected, lambda)

		for i := 1; i < len(remaining); i++ {
			if s := mmrScore(remaining[i], selected, lambda); s > bestScore {
				bestScore = s
				bestIdx = i
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

func mmrScore(cand ScoredCandidate, selected []ScoredCandidate, lambda float64) float64 {
	maxSim := 0.0
	for i := range selected {
		// Vectors all come from the same vectorizer, so a mismatch
		// cannot happen here; a zero norm simply contributes 0.
		sim, _ := Cosine(cand.Vector, selected[i].Vector)
		if sim > maxSim {
			maxSim = sim
		}
	}
	return lambda*cand.Breakdown.Final - (1-lambda)*maxSim
}
