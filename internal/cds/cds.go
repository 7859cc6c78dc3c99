// Package cds holds the Curb Data Specification record types produced by the
// parser. Records are built through New* factories that check their
// invariants up front; an invalid record is never observable outside this
// package. This package has no dependencies on other curbsign packages
// beyond the error taxonomy.
package cds

import (
	"time"

	"github.com/google/uuid"

	"github.com/curblens/curbsign/internal/curberr"
)

// Version is the CDS schema version stamped on every SignData record.
const Version = "1.0"

// DefaultCurrency is used when no currency is supplied.
const DefaultCurrency = "USD"

// RegulationType enumerates the CDS activity tags the parser knows about.
type RegulationType string

const (
	NoParking         RegulationType = "no_parking"
	NoStopping        RegulationType = "no_stopping"
	Parking           RegulationType = "parking"
	Loading           RegulationType = "loading"
	PaidParking       RegulationType = "paid_parking"
	TimeLimited       RegulationType = "time_limited"
	PassengerLoading  RegulationType = "passenger_loading"
	CommercialLoading RegulationType = "commercial_loading"
)

// KnownActivity reports whether s is one of the CDS regulation types.
// Rule.Activity deliberately accepts tags outside this set; vision models
// emit activities the standard has no name for, and dropping them would
// silently discard valid-looking regulations.
func KnownActivity(s string) bool {
	switch RegulationType(s) {
	case NoParking, NoStopping, Parking, Loading, PaidParking,
		TimeLimited, PassengerLoading, CommercialLoading:
		return true
	}
	return false
}

// RateUnitPeriod enumerates CDS rate unit periods.
type RateUnitPeriod string

const (
	Rolling  RateUnitPeriod = "rolling"
	Calendar RateUnitPeriod = "calendar"
)

// ParseRateUnitPeriod converts a tag to a RateUnitPeriod. Unlike activity
// tags, this is a closed set: an unrecognized tag is a validation error.
func ParseRateUnitPeriod(s string) (RateUnitPeriod, error) {
	switch RateUnitPeriod(s) {
	case Rolling, Calendar:
		return RateUnitPeriod(s), nil
	}
	return "", curberr.New(curberr.KindValidation, "unrecognized rate_unit_period %q", s)
}

// Rate is a recurring cost attached to a rule.
type Rate struct {
	Rate           float64        `json:"rate" yaml:"rate"`
	RateUnit       string         `json:"rate_unit" yaml:"rate_unit"`
	RateUnitPeriod RateUnitPeriod `json:"rate_unit_period" yaml:"rate_unit_period"`
}

// NewRate builds a Rate. The amount must be non-negative and the period must
// be a recognized tag. The unit is free text here; ValidRate applies the
// vocabulary check as an advisory predicate.
func NewRate(amount float64, unit string, period string) (*Rate, error) {
	if amount < 0 {
		return nil, curberr.New(curberr.KindValidation, "rate must be non-negative, got %v", amount)
	}
	p, err := ParseRateUnitPeriod(period)
	if err != nil {
		return nil, err
	}
	return &Rate{Rate: amount, RateUnit: unit, RateUnitPeriod: p}, nil
}

// TimeSpan is a recurring weekly window during which a policy applies.
type TimeSpan struct {
	DaysOfWeek     []string `json:"days_of_week" yaml:"days_of_week"`
	TimeOfDayStart string   `json:"time_of_day_start" yaml:"time_of_day_start"`
	TimeOfDayEnd   string   `json:"time_of_day_end" yaml:"time_of_day_end"`
}

// NewTimeSpan builds a TimeSpan. Both times must be strict 24-hour "HH:MM"
// strings with start <= end. Overnight windows (end before start) are
// rejected; the ordering rule models same-day spans only. Day entries are
// carried as given: the normalizer canonicalizes known day names and passes
// unknown tokens through lowercased, mirroring the free-text stance of
// Rule.Activity.
func NewTimeSpan(days []string, start, end string) (*TimeSpan, error) {
	if !ValidTimeFormat(start) {
		return nil, curberr.New(curberr.KindValidation, "invalid time_of_day_start %q", start)
	}
	if !ValidTimeFormat(end) {
		return nil, curberr.New(curberr.KindValidation, "invalid time_of_day_end %q", end)
	}
	if start > end {
		return nil, curberr.New(curberr.KindValidation, "time span start %q after end %q", start, end)
	}
	return &TimeSpan{DaysOfWeek: days, TimeOfDayStart: start, TimeOfDayEnd: end}, nil
}

// Rule is one regulation clause inside a policy.
type Rule struct {
	Activity    string   `json:"activity" yaml:"activity"`
	MaxStay     *int     `json:"max_stay,omitempty" yaml:"max_stay,omitempty"`
	UserClasses []string `json:"user_classes,omitempty" yaml:"user_classes,omitempty"`
	Rate        *Rate    `json:"rate,omitempty" yaml:"rate,omitempty"`
}

// NewRule builds a Rule. Activity is free text (see KnownActivity). MaxStay,
// when present, is a positive duration in minutes.
func NewRule(activity string, maxStay *int, userClasses []string, rate *Rate) (*Rule, error) {
	if activity == "" {
		return nil, curberr.New(curberr.KindValidation, "rule activity is required")
	}
	if maxStay != nil && *maxStay <= 0 {
		return nil, curberr.New(curberr.KindValidation, "max_stay must be positive, got %d", *maxStay)
	}
	return &Rule{Activity: activity, MaxStay: maxStay, UserClasses: userClasses, Rate: rate}, nil
}

// CurbPolicy bundles rules that share applicability.
type CurbPolicy struct {
	CurbPolicyID         string      `json:"curb_policy_id" yaml:"curb_policy_id"`
	PublishedDate        int64       `json:"published_date" yaml:"published_date"`
	Priority             *int        `json:"priority,omitempty" yaml:"priority,omitempty"`
	TimeSpans            []*TimeSpan `json:"time_spans,omitempty" yaml:"time_spans,omitempty"`
	Rules                []*Rule     `json:"rules" yaml:"rules"`
	DataSourceOperatorID []string    `json:"data_source_operator_id,omitempty" yaml:"data_source_operator_id,omitempty"`
}

// NewCurbPolicy builds a CurbPolicy. Rules are required and non-empty. An
// empty id gets a fresh UUID; a zero publishedDate gets the current time.
// Absent or empty time spans mean the policy always applies.
func NewCurbPolicy(id string, publishedDate int64, spans []*TimeSpan, rules []*Rule) (*CurbPolicy, error) {
	if len(rules) == 0 {
		return nil, curberr.New(curberr.KindValidation, "policy requires at least one rule")
	}
	if id == "" {
		id = uuid.New().String()
	}
	if publishedDate == 0 {
		publishedDate = time.Now().UnixMilli()
	}
	return &CurbPolicy{
		CurbPolicyID:  id,
		PublishedDate: publishedDate,
		TimeSpans:     spans,
		Rules:         rules,
	}, nil
}

// Location is a GeoJSON point, coordinates ordered [longitude, latitude].
type Location struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"`
}

// NewLocation builds a Location from a longitude/latitude pair, checking
// coordinate bounds.
func NewLocation(lon, lat float64) (*Location, error) {
	loc := &Location{Type: "Point", Coordinates: []float64{lon, lat}}
	if !ValidLocation(loc) {
		return nil, curberr.New(curberr.KindValidation, "coordinates out of bounds: [%v, %v]", lon, lat)
	}
	return loc, nil
}

// SignData is the root record returned for one parsed sign.
type SignData struct {
	Version     string        `json:"version" yaml:"version"`
	TimeZone    string        `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
	LastUpdated int64         `json:"last_updated" yaml:"last_updated"`
	Currency    string        `json:"currency" yaml:"currency"`
	Location    *Location     `json:"location,omitempty" yaml:"location,omitempty"`
	Policies    []*CurbPolicy `json:"policies" yaml:"policies"`
	Author      string        `json:"author,omitempty" yaml:"author,omitempty"`
	LicenseURL  string        `json:"license_url,omitempty" yaml:"license_url,omitempty"`
}

// NewSignData builds the root record. Policies may be empty: a sign whose
// model response could not be parsed still yields a valid envelope. Version
// is fixed and the currency defaults to USD.
func NewSignData(policies []*CurbPolicy, loc *Location) *SignData {
	if policies == nil {
		policies = []*CurbPolicy{}
	}
	return &SignData{
		Version:     Version,
		LastUpdated: time.Now().UnixMilli(),
		Currency:    DefaultCurrency,
		Location:    loc,
		Policies:    policies,
	}
}
