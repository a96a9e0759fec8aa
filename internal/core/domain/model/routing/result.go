package routing

// Result is the aggregated outcome of one orchestration run. It is mutated
// only by the orchestrator and terminal once returned.
//
// Success turns false the first time any split or required re-fetch fails;
// everything committed before that point (splits, tags) stays listed, because
// it is real, already-applied remote state that cannot be rolled back.
// Tag-application failures never flip Success: tagging is best-effort.
type Result struct {
	// Success reports whether the decision tree ran to completion.
	Success bool `json:"success"`

	// Splits is the append-only audit trail of committed splits.
	Splits []SplitRecord `json:"splits"`

	// TagsAdded lists the tags successfully applied to the parent order.
	TagsAdded []string `json:"tagsAdded"`

	// Error carries the first hard failure's message, empty on success.
	Error string `json:"error,omitempty"`
}

// NewResult creates a Result in its initial successful state with empty
// (non-nil) collections so it serializes as [] rather than null.
func NewResult() Result {
	return Result{
		Success:   true,
		Splits:    []SplitRecord{},
		TagsAdded: []string{},
	}
}

// RecordSplit appends a committed split to the audit trail.
func (r *Result) RecordSplit(record SplitRecord) {
	r.Splits = append(r.Splits, record)
}

// RecordTag appends a successfully applied tag.
func (r *Result) RecordTag(tag string) {
	r.TagsAdded = append(r.TagsAdded, tag)
}

// Fail marks the run as failed with the given reason. Already recorded splits
// and tags are preserved.
func (r *Result) Fail(reason string) {
	r.Success = false
	r.Error = reason
}
