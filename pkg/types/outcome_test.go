// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchReportTotal(t *testing.T) {
	var r BatchReport
	r.Add(ExtractionOutcome{Status: ExtractionSuccess, Archive: "a.zip"})
	r.Add(ExtractionOutcome{Status: ExtractionFailed, Archive: "b.zip"})
	r.Add(ExtractionOutcome{Status: ExtractionSkipped, Archive: "c.zip", Reason: "skipped by user"})

	// A standalone passed over as part of an extracted set is recorded
	// without an engine outcome.
	r.Skipped = append(r.Skipped, Problem{Archive: "set-extras.zip", Reason: "part of multi-part archive set"})
	r.Problems = append(r.Problems, Problem{Archive: "bad.zip", Reason: "corrupt"})

	assert.Equal(t, 4, r.Total())
	assert.Len(t, r.Outcomes, 3)
	assert.True(t, r.HasFailures())
}
