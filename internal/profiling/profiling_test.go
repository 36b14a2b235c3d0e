package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAccumulates(t *testing.T) {
	Reset()

	stop := Track("test.op")
	time.Sleep(time.Millisecond)
	stop()
	Track("test.op")()

	snap := Snapshot()
	if snap["test.op"] < time.Millisecond {
		t.Errorf("accumulated %v, want at least 1ms", snap["test.op"])
	}
	if !strings.Contains(Report(), "test.op") {
		t.Error("report missing tracked op")
	}

	Reset()
	if len(Snapshot()) != 0 {
		t.Error("Reset left entries behind")
	}
}
