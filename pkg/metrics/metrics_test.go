package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPlanLookup(t *testing.T) {
	hits := testutil.ToFloat64(PlanLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(PlanLookupsTotal.WithLabelValues("miss"))

	RecordPlanLookup(true)
	RecordPlanLookup(false)
	RecordPlanLookup(false)

	assert.Equal(t, hits+1, testutil.ToFloat64(PlanLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(PlanLookupsTotal.WithLabelValues("miss")))
}

func TestRecordFieldConversion(t *testing.T) {
	counter := FieldConversionsTotal.WithLabelValues("checkbox", "checkbox", "success")
	before := testutil.ToFloat64(counter)

	RecordFieldConversion("checkbox", "checkbox", "success")

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordMediaCacheLookup(t *testing.T) {
	counter := MediaCacheLookupsTotal.WithLabelValues("content", "hit")
	before := testutil.ToFloat64(counter)

	RecordMediaCacheLookup("content", true)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestSetEnabled(t *testing.T) {
	counter := PlanLookupsTotal.WithLabelValues("hit")
	before := testutil.ToFloat64(counter)

	SetEnabled(false)
	defer SetEnabled(true)
	RecordPlanLookup(true)
	assert.Equal(t, before, testutil.ToFloat64(counter))

	SetEnabled(true)
	RecordPlanLookup(true)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
