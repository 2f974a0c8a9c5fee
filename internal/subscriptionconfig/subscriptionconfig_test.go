package subscriptionconfig

import (
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/types/optional"

	"github.com/block/taskworker/worker"
)

var expected = worker.OverrideTable{
	{
		TopicName: "test-configuration",
		Options: worker.Options{
			LockDuration:   optional.Some[int64](2000),
			Variables:      optional.Some([]string{"two", "three"}),
			LocalVariables: optional.Some(false),
		},
	},
	{
		TopicName: "invoice",
		Options: worker.Options{
			BusinessKey:     optional.Some("BK2"),
			WithoutTenantID: optional.Some(true),
			TenantIDIn:      optional.Some([]string{}),
		},
	},
}

func TestLoad(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"overrides.toml", "overrides.yaml", "overrides.json5"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			table, err := Load(filepath.Join("testdata", name))
			assert.NoError(t, err)
			assert.Equal(t, expected, table)
		})
	}
}

func TestLoadWithoutPathIsEmpty(t *testing.T) {
	t.Parallel()
	table, err := Load("")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(table))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	for _, tt := range []struct {
		name  string
		ext   string
		data  string
		error string
	}{
		{
			name:  "UnsupportedFormat",
			ext:   ".ini",
			error: `unsupported subscription override format ".ini"`,
		},
		{
			name:  "MissingTopicName",
			ext:   ".toml",
			data:  "[[subscriptions]]\nlock-duration = 10\n",
			error: "subscription override 0 has no topic-name",
		},
		{
			name:  "UnknownKey",
			ext:   ".yaml",
			data:  "subscriptions:\n  - topic-name: invoice\n    lock-timeout: 10\n",
			error: "could not decode subscription overrides",
		},
		{
			name:  "WrongType",
			ext:   ".json",
			data:  `{"subscriptions": [{"topic-name": "invoice", "variables": "amount"}]}`,
			error: "could not decode subscription overrides",
		},
		{
			name:  "FractionalLockDurationYAML",
			ext:   ".yaml",
			data:  "subscriptions:\n  - topicName: invoice\n    lockDuration: 2000.7\n",
			error: "2000.7 is not a whole number",
		},
		{
			name:  "FractionalLockDurationJSON5",
			ext:   ".json5",
			data:  `{subscriptions: [{topicName: "invoice", lockDuration: 0.5}]}`,
			error: "0.5 is not a whole number",
		},
		{
			name:  "InexactLockDuration",
			ext:   ".yaml",
			data:  "subscriptions:\n  - topicName: invoice\n    lockDuration: 9007199254740993\n",
			error: "out of range",
		},
		{
			name:  "Malformed",
			ext:   ".toml",
			data:  "[[subscriptions]\n",
			error: "could not parse subscription overrides",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.ext, []byte(tt.data))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.error)
		})
	}
}

func TestWholeFloatsDecodeAsIntegers(t *testing.T) {
	t.Parallel()
	table, err := Parse(".yaml", []byte("subscriptions:\n  - topicName: invoice\n    lockDuration: 2000.0\n"))
	assert.NoError(t, err)
	assert.Equal(t, optional.Some[int64](2000), table[0].LockDuration)
}

func TestOverrideOrderIsFileOrder(t *testing.T) {
	t.Parallel()
	table, err := Parse(".toml", []byte(`
[[subscriptions]]
topic-name = "x"
business-key = "A"

[[subscriptions]]
topic-name = "x"
business-key = "B"
`))
	assert.NoError(t, err)
	override, ok := table.Lookup("x").Get()
	assert.True(t, ok)
	assert.Equal(t, optional.Some("A"), override.BusinessKey)
}
