package metrics

import (
	"context"
	"testing"
	"time"
)

func TestRecordParse_NoPanicWithDefaultProvider(t *testing.T) {
	RecordParse(context.Background(), "collect", 10*time.Millisecond, 3, true)
	RecordParse(context.Background(), "collect", 5*time.Millisecond, 0, false)
}

func TestRecordMappingSize_NoPanic(t *testing.T) {
	RecordMappingSize(context.Background(), 42)
}

func TestRecordTransform_NoPanic(t *testing.T) {
	RecordTransform(context.Background(), time.Millisecond)
}

func TestStartSpan_EndIsCallable(t *testing.T) {
	_, end := StartSpan(context.Background(), "test-span")
	end()
}
