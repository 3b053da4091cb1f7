// Package normalize walks a decoded JSON document and rewrites scalar
// fields whose keys match the configured rules, using the jsonflex
// coercions so that string-encoded numbers and number-encoded strings
// come out in one representation.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mcncl/jsonflex"
	"github.com/mcncl/jsonflex/internal/config"
	"github.com/mcncl/jsonflex/internal/document"
	"github.com/mcncl/jsonflex/internal/errors"
)

// Normalizer applies a rule set to document trees
type Normalizer struct {
	cfg *config.Config
}

// New creates a Normalizer for the given configuration. The
// configuration's rules must already be compiled.
func New(cfg *config.Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// RuleStats accumulates what a single rule did across one document
type RuleStats struct {
	Pattern string
	To      string
	Hits    int // fields whose key matched the rule
	Coerced int // fields rewritten to the target representation
	Skipped int // matched fields that were not scalars
	Failed  int // scalar fields the coercion rejected (value kept)
}

// Result is the normalized document plus per-rule accounting
type Result struct {
	Root  document.Value
	Rules []RuleStats
}

// Apply normalizes the document in place and returns the result. In
// strict mode the first failing coercion aborts with an error naming the
// field; otherwise failures keep the original value and are counted.
func (n *Normalizer) Apply(root document.Value) (*Result, error) {
	result := &Result{
		Root:  root,
		Rules: make([]RuleStats, len(n.cfg.Rules)),
	}
	for i, rule := range n.cfg.Rules {
		result.Rules[i] = RuleStats{Pattern: rule.Pattern, To: rule.To}
	}

	if err := n.walk(root, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

func (n *Normalizer) walk(val document.Value, path string, result *Result) error {
	switch v := val.(type) {
	case document.Object:
		for key, value := range v {
			fieldPath := key
			if path != "" {
				fieldPath = path + "." + key
			}

			if i, ok := n.matchRule(key); ok {
				stats := &result.Rules[i]
				stats.Hits++

				switch value.(type) {
				case string, json.Number:
					coerced, err := coerceScalar(value, n.cfg.Rules[i].To)
					if err != nil {
						if n.cfg.Strict {
							return errors.NewNormalizeError(
								fmt.Sprintf("field '%s' could not be coerced to %s", fieldPath, n.cfg.Rules[i].To),
								err,
							)
						}
						stats.Failed++
						continue
					}
					v[key] = coerced
					stats.Coerced++
					continue
				default:
					// Containers, booleans and nulls are out of scope for
					// field coercion.
					stats.Skipped++
				}
			}

			if err := n.walk(value, fieldPath, result); err != nil {
				return err
			}
		}
	case document.Array:
		for i, value := range v {
			if err := n.walk(value, fmt.Sprintf("%s[%d]", path, i), result); err != nil {
				return err
			}
		}
	}
	return nil
}

// matchRule returns the index of the first rule matching key
func (n *Normalizer) matchRule(key string) (int, bool) {
	for i := range n.cfg.Rules {
		if n.cfg.Rules[i].MatchesKey(key, n.cfg.MatchNormalizedKeys) {
			return i, true
		}
	}
	return 0, false
}

// coerceScalar rewrites a single string or json.Number value into the
// target representation via the library coercions.
func coerceScalar(val document.Value, target string) (document.Value, error) {
	raw, err := rawJSON(val)
	if err != nil {
		return nil, err
	}

	switch target {
	case config.TargetString:
		return jsonflex.StringFromNumber(raw)
	case config.TargetInt64:
		v, err := jsonflex.NumberFromString(raw, func(s string) (int64, error) {
			return strconv.ParseInt(s, 10, 64)
		})
		if err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatInt(v, 10)), nil
	case config.TargetUint64:
		v, err := jsonflex.NumberFromString(raw, func(s string) (uint64, error) {
			return strconv.ParseUint(s, 10, 64)
		})
		if err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatUint(v, 10)), nil
	case config.TargetFloat64:
		v, err := jsonflex.NumberFromString(raw, func(s string) (float64, error) {
			return strconv.ParseFloat(s, 64)
		})
		if err != nil {
			return nil, err
		}
		return json.Number(strconv.FormatFloat(v, 'g', -1, 64)), nil
	default:
		return nil, errors.ErrUnknownTarget
	}
}

// rawJSON renders a scalar back to the JSON text of a single value, the
// form the jsonflex coercions consume.
func rawJSON(val document.Value) ([]byte, error) {
	switch v := val.(type) {
	case json.Number:
		return []byte(v.String()), nil
	default:
		return json.Marshal(v)
	}
}
