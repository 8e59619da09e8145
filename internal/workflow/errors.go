// Package workflow implements the impact analysis workflow. It provides the
// foundational types and the 3-node state graph (init → score → aggregate)
// that turns an uploaded regulatory document into per-company impact scores.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrExtractFailed    = errors.New("failed to extract document text")
	ErrScoreFailed      = errors.New("scoring failed")
	ErrAggregateFailed  = errors.New("aggregation failed")
)
