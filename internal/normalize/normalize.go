// Package normalize coerces loosely-structured vision-model output into
// validated CDS records. The source document is untrusted: keys may be
// missing, spelled in the legacy flat shape, or cased inconsistently, and
// the text may not be JSON at all. The pipeline is permissive on shape and
// strict on final-record invariants.
package normalize

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/curblens/curbsign/internal/cds"
	"github.com/curblens/curbsign/internal/curberr"
)

// dayAliases maps full and abbreviated English day names, in any case, to
// canonical lowercase three-letter codes.
var dayAliases = map[string]string{
	"monday": "mon", "mon": "mon",
	"tuesday": "tue", "tue": "tue",
	"wednesday": "wed", "wed": "wed",
	"thursday": "thu", "thu": "thu",
	"friday": "fri", "fri": "fri",
	"saturday": "sat", "sat": "sat",
	"sunday": "sun", "sun": "sun",
}

var allDays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

const (
	defaultStartTime = "00:00"
	defaultEndTime   = "23:59"
	defaultActivity  = "parking"
	defaultRateUnit  = "hour"
)

// Normalizer maps arbitrary model JSON into SignData records.
type Normalizer struct {
	logger *slog.Logger
}

// New creates a Normalizer. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts the raw model response into a SignData record. A
// response that cannot be decoded as JSON is the single swallowed failure:
// it is logged and yields a valid envelope with zero policies. Everything
// else that goes wrong -- a record failing its construction invariants --
// propagates as a validation error.
func (n *Normalizer) Normalize(raw string, loc *cds.Location) (*cds.SignData, error) {
	doc, ok := decodeModelJSON(raw)
	if !ok {
		n.logger.Error("model response is not valid JSON, returning empty policies",
			"response_prefix", prefix(raw, 200))
		return cds.NewSignData(nil, loc), nil
	}

	items := sourcePolicies(doc)
	policies := make([]*cds.CurbPolicy, 0, len(items))
	for idx, item := range items {
		policy, err := n.normalizePolicy(idx, item)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}

	out := cds.NewSignData(policies, loc)
	n.auditSchema(out)
	return out, nil
}

// sourcePolicies locates the list of regulation-like objects: a
// "regulations" key is preferred, then "policies", else the document
// contributes nothing.
func sourcePolicies(doc any) []map[string]any {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil
	}

	var list []any
	if v, ok := root["regulations"].([]any); ok {
		list = v
	} else if v, ok := root["policies"].([]any); ok {
		list = v
	}

	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}

// normalizePolicy builds one CurbPolicy from a source item. The policy id is
// the item's 0-based position, so re-running the pipeline on the same input
// yields identical ids.
func (n *Normalizer) normalizePolicy(idx int, item map[string]any) (*cds.CurbPolicy, error) {
	spans, err := n.normalizeTimeSpans(listAt(item, "time_spans"))
	if err != nil {
		return nil, err
	}

	var rules []*cds.Rule
	if rawRules, ok := item["rules"].([]any); ok {
		for _, rawRule := range rawRules {
			m, ok := rawRule.(map[string]any)
			if !ok {
				continue
			}
			rule, err := n.normalizeRule(m)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	} else {
		// Flatter legacy shape: the regulation object is itself the rule.
		rule, err := n.normalizeRule(item)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return cds.NewCurbPolicy(strconv.Itoa(idx), 0, spans, rules)
}

// normalizeTimeSpans maps raw time-span objects to validated TimeSpans.
// Missing or empty day lists widen to all seven days; missing, empty, or
// null start and end times default to the full day.
func (n *Normalizer) normalizeTimeSpans(raw []any) ([]*cds.TimeSpan, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	spans := make([]*cds.TimeSpan, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		days := normalizeDays(stringListAt(m, "days", "days_of_week"))
		start := stringAt(m, "start_time", "time_of_day_start")
		if start == "" {
			start = defaultStartTime
		}
		end := stringAt(m, "end_time", "time_of_day_end")
		if end == "" {
			end = defaultEndTime
		}

		span, err := cds.NewTimeSpan(days, start, end)
		if err != nil {
			return nil, err
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// normalizeDays canonicalizes day names to lowercase three-letter codes.
// Unrecognized tokens pass through lowercased rather than being dropped; an
// empty list means the span applies every day.
func normalizeDays(days []string) []string {
	if len(days) == 0 {
		out := make([]string, len(allDays))
		copy(out, allDays)
		return out
	}

	out := make([]string, len(days))
	for i, d := range days {
		lower := strings.ToLower(d)
		if canonical, ok := dayAliases[lower]; ok {
			out[i] = canonical
		} else {
			out[i] = lower
		}
	}
	return out
}

// normalizeRule builds one Rule from a source object. Activity defaults to
// "parking". A "payment" object maps to a CDS rate; a source that already
// speaks CDS may carry the rate under "rate" directly.
func (n *Normalizer) normalizeRule(item map[string]any) (*cds.Rule, error) {
	activity := stringAt(item, "activity")
	if activity == "" {
		activity = defaultActivity
	}

	var maxStay *int
	if v, ok := item["max_stay"]; ok && v != nil {
		minutes, err := toInt(v)
		if err != nil {
			return nil, curberr.Wrap(curberr.KindValidation, err, "invalid max_stay")
		}
		maxStay = &minutes
	}

	var userClasses []string
	if v, ok := item["user_classes"].([]any); ok {
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				userClasses = append(userClasses, s)
			}
		}
	}

	var rate *cds.Rate
	rawRate, hasRate := item["payment"].(map[string]any)
	if !hasRate {
		rawRate, hasRate = item["rate"].(map[string]any)
	}
	if hasRate {
		var err error
		rate, err = n.normalizeRate(rawRate)
		if err != nil {
			return nil, err
		}
	}

	return cds.NewRule(activity, maxStay, userClasses, rate)
}

// normalizeRate maps a payment-like object to a Rate: the amount coerces to
// a float (default 0), the unit defaults to hourly, and the period to
// rolling.
func (n *Normalizer) normalizeRate(raw map[string]any) (*cds.Rate, error) {
	amount := 0.0
	if v, ok := raw["rate"]; ok && v != nil {
		f, err := toFloat(v)
		if err != nil {
			return nil, curberr.Wrap(curberr.KindValidation, err, "invalid rate")
		}
		amount = f
	}

	unit := stringAt(raw, "rate_unit")
	if unit == "" {
		unit = defaultRateUnit
	}
	period := stringAt(raw, "rate_unit_period")
	if period == "" {
		period = string(cds.Rolling)
	}

	rate, err := cds.NewRate(amount, unit, period)
	if err != nil {
		return nil, err
	}
	if !cds.ValidRate(rate) {
		// Advisory only: an off-vocabulary unit is worth a log line, not a
		// rejected sign.
		n.logger.Warn("rate failed advisory validation", "rate_unit", rate.RateUnit)
	}
	return rate, nil
}

// stringAt returns the first non-empty string value among keys.
func stringAt(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// listAt returns the first list value among keys.
func listAt(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if v, ok := m[key].([]any); ok {
			return v
		}
	}
	return nil
}

// stringListAt returns the first non-empty list among keys, keeping string
// entries only.
func stringListAt(m map[string]any, keys ...string) []string {
	for _, key := range keys {
		v, ok := m[key].([]any)
		if !ok || len(v) == 0 {
			continue
		}
		out := make([]string, 0, len(v))
		for _, entry := range v {
			if s, ok := entry.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case string:
		return strconv.ParseFloat(t, 64)
	}
	return 0, fmt.Errorf("expected number, got %T", v)
}

func toInt(v any) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	}
	return 0, fmt.Errorf("expected integer, got %T", v)
}

func prefix(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
