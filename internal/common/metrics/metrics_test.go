package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-hackathon-tracker/internal/common/metrics"
)

const (
	statusSuccess = "success"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Arrange
	service := "test-service"
	method := "GET"
	endpoint := "/test"
	statusCode := 200
	duration := 100 * time.Millisecond

	// Act
	metrics.RecordHTTPRequest(service, method, endpoint, statusCode, duration)

	// Assert
	counterValue := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, "success"))
	assert.Equal(t, float64(1), counterValue)

	assert.NotNil(t, metrics.HTTPRequestDuration)
}

func TestRecordHTTPRequestError(t *testing.T) {
	// Arrange
	service := "test-service"
	method := "POST"
	endpoint := "/error"
	statusCode := 404
	duration := 50 * time.Millisecond

	// Act
	metrics.RecordHTTPRequest(service, method, endpoint, statusCode, duration)

	// Assert
	counterValue := testutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(service, method, endpoint, "error"))
	assert.Equal(t, float64(1), counterValue)
}

func TestRecordNotifyRun(t *testing.T) {
	// Arrange
	trigger := "scan_test"
	outcome := "sent"

	// Act
	metrics.RecordNotifyRun(trigger, outcome, 2*time.Second)
	metrics.RecordNotifyRun(trigger, outcome, time.Second)

	// Assert
	counterValue := testutil.ToFloat64(metrics.NotifyRunsTotal.WithLabelValues(trigger, outcome))
	assert.Equal(t, float64(2), counterValue)
}

func TestRecordDelivery(t *testing.T) {
	// Arrange
	initial := testutil.ToFloat64(metrics.DeliveriesTotal.WithLabelValues(statusSuccess))

	// Act
	metrics.RecordDelivery(statusSuccess)

	// Assert
	assert.Equal(t, initial+1, testutil.ToFloat64(metrics.DeliveriesTotal.WithLabelValues(statusSuccess)))
}

func TestRecordStoreOperation(t *testing.T) {
	// Arrange
	operation := "get_hackathons_test"

	// Act
	metrics.RecordStoreOperation(operation, statusSuccess, 10*time.Millisecond)

	// Assert
	counterValue := testutil.ToFloat64(metrics.StoreOperationsTotal.WithLabelValues(operation, statusSuccess))
	assert.Equal(t, float64(1), counterValue)
}

func TestMetricsExist(t *testing.T) {
	// Arrange
	metrics.RecordHTTPRequest("exist", "GET", "/", 200, time.Millisecond)
	metrics.RecordNotifyRun("exist", "sent", time.Millisecond)
	metrics.RecordDelivery("exist")
	metrics.RecordStoreOperation("exist", statusSuccess, time.Millisecond)

	// Act
	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	// Assert
	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[*mf.Name] = true
	}

	expectedMetrics := []string{
		"hackathon_tracker_http_requests_total",
		"hackathon_tracker_http_request_duration_seconds",
		"hackathon_tracker_notifier_runs_total",
		"hackathon_tracker_notifier_run_duration_seconds",
		"hackathon_tracker_notifier_deliveries_total",
		"hackathon_tracker_storage_operations_total",
		"hackathon_tracker_storage_operation_duration_seconds",
	}

	for _, metricName := range expectedMetrics {
		assert.True(t, metricNames[metricName], "Метрика %s должна быть зарегистрирована", metricName)
	}
}
