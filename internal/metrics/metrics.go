package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// MetricsLogger defines the contract for logging metrics
type MetricsLogger interface {
	LogEvent(eventName string, tags map[string]string, fields map[string]interface{})
	LogRequest(method string, route string, status int, elapsed time.Duration)
	Close()
}

type metricsLoggerImpl struct {
	client      influxdb2.Client
	writeAPI    api.WriteAPI
	defaultTags map[string]string // Constant tags, like the environment
}

// Ensure metricsLoggerImpl implements MetricsLogger
var _ MetricsLogger = (*metricsLoggerImpl)(nil)

// NewMetricsImpl initializes the InfluxDB writer with constant tags,
// write errors are reported to the logger. A nil httpClient uses the default transport.
func NewMetricsImpl(url string, token string, org string, bucket string, defaultTags map[string]string, httpClient *http.Client, logger *slog.Logger) MetricsLogger {
	options := influxdb2.DefaultOptions()
	if httpClient != nil {
		options.SetHTTPClient(httpClient)
	}

	client := influxdb2.NewClientWithOptions(url, token, options)
	writeAPI := client.WriteAPI(org, bucket)

	go func() {
		for err := range writeAPI.Errors() {
			logger.Warn("metrics write error", slog.String("error", err.Error()))
		}
	}()

	return &metricsLoggerImpl{
		client:      client,
		writeAPI:    writeAPI,
		defaultTags: defaultTags,
	}
}

// Universal method to log an event with customizable tags and fields
func (m *metricsLoggerImpl) LogEvent(eventName string, tags map[string]string, fields map[string]interface{}) {
	if len(fields) == 0 {
		return
	}

	m.writeAPI.WritePoint(newPoint(eventName, m.defaultTags, tags, fields, time.Now()))
}

// LogRequest records one served HTTP request
func (m *metricsLoggerImpl) LogRequest(method string, route string, status int, elapsed time.Duration) {
	m.LogEvent("http_request", requestTags(method, route, status), requestFields(elapsed))
}

// Close flushes the write API and closes the client
func (m *metricsLoggerImpl) Close() {
	m.writeAPI.Flush()
	m.client.Close()
}

func requestTags(method string, route string, status int) map[string]string {
	return map[string]string{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
}

func requestFields(elapsed time.Duration) map[string]interface{} {
	return map[string]interface{}{
		"count":      1,
		"elapsed_ms": float64(elapsed.Microseconds()) / 1000,
	}
}
