package assessment

// CategoryAverage computes the arithmetic mean of the answered slots among
// the given question ids. Unanswered slots are skipped; with no answers the
// result is exactly 0. Pure function, safe to call repeatedly.
func CategoryAverage(r *Response, questionIDs []int) float64 {
	sum, n := 0, 0
	for _, id := range questionIDs {
		if v := r.Answer(id); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// CategoryScored reports whether at least one question of the set was
// answered. A zero average with no answers means "unscored", not a score.
func CategoryScored(r *Response, questionIDs []int) bool {
	for _, id := range questionIDs {
		if r.Answer(id) != nil {
			return true
		}
	}
	return false
}
