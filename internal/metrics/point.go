package metrics

import (
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const measurement = "hunchworks_event"

// newPoint builds the point written for an event, custom tags override default ones.
func newPoint(eventName string, defaultTags map[string]string, tags map[string]string, fields map[string]interface{}, at time.Time) *write.Point {
	point := influxdb2.NewPointWithMeasurement(measurement).
		AddTag("event", eventName).
		SetTime(at)

	for key, value := range defaultTags {
		point.AddTag(key, value)
	}

	for key, value := range tags {
		point.AddTag(key, value)
	}

	for key, value := range fields {
		point.AddField(key, value)
	}

	return point
}
