package taskworker

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestIsRelease(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"1.2.3", true},
		{"10.20.30", true},
		{"dev", false},
		{"1.2", false},
		{"v1.2.3", false},
		{"1.2.3-rc1", false},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, IsRelease(test.v), test.v)
	}
}

func TestFormattedVersion(t *testing.T) {
	version, timestamp := Version, Timestamp
	t.Cleanup(func() { Version, Timestamp = version, timestamp })

	Version, Timestamp = "1.2.3", "86400"
	assert.Equal(t, "1.2.3", FormattedVersion())

	Version = "dev"
	assert.Equal(t, "dev (built 1970-01-02T00:00:00Z)", FormattedVersion())

	Timestamp = "0"
	assert.Equal(t, "dev", FormattedVersion())
}
