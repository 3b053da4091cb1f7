package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonflex/internal/config"
	"github.com/mcncl/jsonflex/internal/document"
)

func mustConfig(t *testing.T, cfg *config.Config) *config.Config {
	t.Helper()
	require.NoError(t, cfg.Compile())
	return cfg
}

func TestApply_QuotedNumbersBecomeNumbers(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{
			{Pattern: ".*_id$", To: config.TargetUint64},
			{Pattern: "^score$", To: config.TargetFloat64},
		},
	})

	root, err := document.DecodeString(`{"user_id": "221", "score": "123.456", "name": "ada"}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, json.Number("221"), obj["user_id"])
	assert.Equal(t, json.Number("123.456"), obj["score"])
	assert.Equal(t, "ada", obj["name"])

	assert.Equal(t, 1, result.Rules[0].Hits)
	assert.Equal(t, 1, result.Rules[0].Coerced)
	assert.Equal(t, 1, result.Rules[1].Coerced)
}

func TestApply_NumbersBecomeStrings(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{{Pattern: "^serial$", To: config.TargetString}},
	})

	root, err := document.DecodeString(`{"serial": -13}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, "-13", obj["serial"])
}

func TestApply_NativeValuesPassThrough(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"int_id": 655}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, json.Number("655"), obj["int_id"])
	assert.Equal(t, 1, result.Rules[0].Coerced)
}

func TestApply_WalksNestedContainers(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"orders": [{"order_id": "7"}, {"order_id": 8}], "meta": {"batch_id": "9"}}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	orders := obj["orders"].(document.Array)
	assert.Equal(t, json.Number("7"), orders[0].(document.Object)["order_id"])
	assert.Equal(t, json.Number("8"), orders[1].(document.Object)["order_id"])
	assert.Equal(t, json.Number("9"), obj["meta"].(document.Object)["batch_id"])
	assert.Equal(t, 3, result.Rules[0].Hits)
	assert.Equal(t, 3, result.Rules[0].Coerced)
}

func TestApply_NonScalarMatchesAreSkipped(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Strict: true,
		Rules:  []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"user_id": {"value": 1}, "group_id": true}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	stats := result.Rules[0]
	assert.Equal(t, 2, stats.Hits)
	assert.Equal(t, 0, stats.Coerced)
	assert.Equal(t, 2, stats.Skipped)
}

func TestApply_LenientKeepsFailingValues(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"user_id": "not-a-number"}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, "not-a-number", obj["user_id"])
	assert.Equal(t, 1, result.Rules[0].Failed)
}

func TestApply_StrictAbortsOnFailure(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Strict: true,
		Rules:  []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"outer": {"user_id": "not-a-number"}}`)
	require.NoError(t, err)

	_, err = New(cfg).Apply(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outer.user_id")
	assert.Contains(t, err.Error(), "uint64")
}

func TestApply_NormalizedKeyMatching(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		MatchNormalizedKeys: true,
		Rules:               []config.Rule{{Pattern: ".*_id$", To: config.TargetUint64}},
	})

	root, err := document.DecodeString(`{"userId": "42", "OrderID": "43"}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, json.Number("42"), obj["userId"])
	assert.Equal(t, json.Number("43"), obj["OrderID"])
	assert.Equal(t, 2, result.Rules[0].Coerced)
}

func TestApply_FirstMatchingRuleWins(t *testing.T) {
	cfg := mustConfig(t, &config.Config{
		Rules: []config.Rule{
			{Pattern: "^user_id$", To: config.TargetString},
			{Pattern: ".*_id$", To: config.TargetUint64},
		},
	})

	root, err := document.DecodeString(`{"user_id": 42}`)
	require.NoError(t, err)

	result, err := New(cfg).Apply(root)
	require.NoError(t, err)

	obj := result.Root.(document.Object)
	assert.Equal(t, "42", obj["user_id"])
	assert.Equal(t, 1, result.Rules[0].Coerced)
	assert.Equal(t, 0, result.Rules[1].Hits)
}
