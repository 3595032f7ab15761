package grabbr

// RemoveDuplicates keeps the first candidate for each distinct text,
// preserving the order of first occurrences.
func RemoveDuplicates(candidates []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(candidates))
	result := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Text]; ok {
			continue
		}
		seen[c.Text] = struct{}{}
		result = append(result, c)
	}
	return result
}

// PostProcess applies the optional post-processing steps selected by opts.
func PostProcess(candidates []Candidate, opts Options) []Candidate {
	if opts.RemoveDuplicates {
		candidates = RemoveDuplicates(candidates)
	}
	return candidates
}
