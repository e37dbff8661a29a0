package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAnswersGradedCounter(t *testing.T) {
	counter := AnswersGraded.WithLabelValues("SELECT", "true")
	before := testutil.ToFloat64(counter)

	AnswersGraded.WithLabelValues("SELECT", "true").Inc()
	AnswersGraded.WithLabelValues("SELECT", "false").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.GreaterOrEqual(t, testutil.ToFloat64(AnswersGraded.WithLabelValues("SELECT", "false")), 1.0)
}
