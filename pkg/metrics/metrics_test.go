package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("test-service", "GET /api/health", "200"))
	RecordRequest("test-service", "GET /api/health", "200", 5*time.Millisecond)
	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("test-service", "GET /api/health", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordUpload(t *testing.T) {
	success := UploadsTotal.WithLabelValues("test-service", "material", "success")
	rejected := UploadsTotal.WithLabelValues("test-service", "material", "rejected")
	s0, r0 := testutil.ToFloat64(success), testutil.ToFloat64(rejected)

	RecordUpload("test-service", "material", "success", 4096)
	RecordUpload("test-service", "material", "rejected", 0)

	assert.Equal(t, s0+1, testutil.ToFloat64(success))
	assert.Equal(t, r0+1, testutil.ToFloat64(rejected))
}
