// Package subscriptionconfig loads topic subscription overrides from a file.
//
// TOML, YAML and JSON5 files share one shape: a top-level "subscriptions"
// list whose records are keyed by topic name.
//
//	[[subscriptions]]
//	topic-name = "invoice"
//	lock-duration = 9000
//	variables = ["amount", "currency"]
package subscriptionconfig

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/types/optional"
	"github.com/go-viper/mapstructure/v2"
	"github.com/titanous/json5"
	"sigs.k8s.io/yaml"

	"github.com/block/taskworker/internal/slices"
	"github.com/block/taskworker/worker"
)

// file is the decoded shape of an override file.
type file struct {
	Subscriptions []subscription `config:"subscriptions"`
}

type subscription struct {
	TopicName                   string    `config:"topic-name"`
	LockDuration                *int64    `config:"lock-duration"`
	Variables                   *[]string `config:"variables"`
	LocalVariables              *bool     `config:"local-variables"`
	BusinessKey                 *string   `config:"business-key"`
	ProcessDefinitionID         *string   `config:"process-definition-id"`
	ProcessDefinitionIDIn       *[]string `config:"process-definition-id-in"`
	ProcessDefinitionKey        *string   `config:"process-definition-key"`
	ProcessDefinitionKeyIn      *[]string `config:"process-definition-key-in"`
	ProcessDefinitionVersionTag *string   `config:"process-definition-version-tag"`
	WithoutTenantID             *bool     `config:"without-tenant-id"`
	TenantIDIn                  *[]string `config:"tenant-id-in"`
	IncludeExtensionProperties  *bool     `config:"include-extension-properties"`
}

// Load the override table from path.
//
// An empty path yields an empty table. Records keep their file order.
func Load(path string) (worker.OverrideTable, error) {
	if path == "" {
		return worker.OverrideTable{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read subscription overrides: %w", err)
	}
	table, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Parse override records from data in the format named by ext (".toml", ".yaml", ".yml", ".json" or ".json5").
func Parse(ext string, data []byte) (worker.OverrideTable, error) {
	raw := map[string]any{}
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json", ".json5":
		err = json5.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported subscription override format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse subscription overrides: %w", err)
	}

	var decoded file
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		DecodeHook:  mapstructure.DecodeHookFuncType(exactIntegerHook),
		TagName:     "config",
		MatchName:   matchKey,
		Result:      &decoded,
	})
	if err != nil {
		return nil, fmt.Errorf("could not decode subscription overrides: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("could not decode subscription overrides: %w", err)
	}

	for i, s := range decoded.Subscriptions {
		if s.TopicName == "" {
			return nil, fmt.Errorf("subscription override %d has no topic-name", i)
		}
	}
	return slices.Map(decoded.Subscriptions, subscription.override), nil
}

// Integers at or above 2^53 may have been rounded by the float64 decode.
const maxExactFloatInteger = 1 << 53

// exactIntegerHook rejects JSON and YAML numbers that would lose their value
// when stored in an integer field. Both formats decode numbers as float64.
func exactIntegerHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	f, ok := data.(float64)
	if !ok {
		return data, nil
	}
	for to.Kind() == reflect.Pointer {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	if math.Abs(f) >= maxExactFloatInteger {
		return nil, fmt.Errorf("%.0f is out of range, integers must be below 2^53", f)
	}
	return int64(f), nil
}

// matchKey matches keys regardless of case, "-" and "_", so "topic-name",
// "topicName" and "topic_name" are equivalent.
func matchKey(mapKey, fieldName string) bool {
	return normaliseKey(mapKey) == normaliseKey(fieldName)
}

func normaliseKey(key string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(key))
}

func (s subscription) override() worker.Override {
	return worker.Override{
		TopicName: s.TopicName,
		Options: worker.Options{
			LockDuration:                optional.Ptr(s.LockDuration),
			Variables:                   optional.Ptr(s.Variables),
			LocalVariables:              optional.Ptr(s.LocalVariables),
			BusinessKey:                 optional.Ptr(s.BusinessKey),
			ProcessDefinitionID:         optional.Ptr(s.ProcessDefinitionID),
			ProcessDefinitionIDIn:       optional.Ptr(s.ProcessDefinitionIDIn),
			ProcessDefinitionKey:        optional.Ptr(s.ProcessDefinitionKey),
			ProcessDefinitionKeyIn:      optional.Ptr(s.ProcessDefinitionKeyIn),
			ProcessDefinitionVersionTag: optional.Ptr(s.ProcessDefinitionVersionTag),
			WithoutTenantID:             optional.Ptr(s.WithoutTenantID),
			TenantIDIn:                  optional.Ptr(s.TenantIDIn),
			IncludeExtensionProperties:  optional.Ptr(s.IncludeExtensionProperties),
		},
	}
}
