package dockb

// MergePage resolves one page's candidates into records. Within a page,
// precedence follows the Pass order: a structural candidate replaces a
// pattern candidate for the same key (the structural record is richer), and
// a candidate never loses to one from a lower pass. Record order follows
// first occurrence.
//
// Cross-page duplicate handling is not this function's concern; the snapshot
// applies the configured DuplicatePolicy as pages are merged in.
func MergePage(candidates []Candidate) []MethodRecord {
	index := make(map[string]int)
	var merged []Candidate

	for _, c := range candidates {
		c.Record.Normalize()
		if c.Record.Validate() != nil {
			continue
		}
		i, ok := index[c.Record.Key]
		if !ok {
			index[c.Record.Key] = len(merged)
			merged = append(merged, c)
			continue
		}
		if c.Pass > merged[i].Pass {
			merged[i] = c
		}
	}

	records := make([]MethodRecord, 0, len(merged))
	for _, c := range merged {
		records = append(records, c.Record)
	}
	return records
}
