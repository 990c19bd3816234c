package exercise

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/viamrobotics/rovercli/rover"
)

func TestDistance(t *testing.T) {
	for _, tc := range []struct {
		name     string
		raw      string
		expected float64
		errPath  string
		errField string
	}{
		{"valid", `{"fixed_distance": {"value": 10}}`, 10, "", ""},
		{"fractional", `{"fixed_distance": {"value": 0.25}}`, 0.25, "", ""},
		{"empty body", `{}`, 0, "exercise", "fixed_distance"},
		{"null fixed distance", `{"fixed_distance": null}`, 0, "exercise", "fixed_distance"},
		{"missing value", `{"fixed_distance": {}}`, 0, "exercise.fixed_distance", "value"},
		{"zero value", `{"fixed_distance": {"value": 0}}`, 0, "exercise.fixed_distance", "value"},
		{"negative value", `{"fixed_distance": {"value": -3}}`, 0, "exercise.fixed_distance", "value"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var spec Spec
			test.That(t, json.Unmarshal([]byte(tc.raw), &spec), test.ShouldBeNil)

			distance, err := spec.Distance("exercise")
			if tc.errField == "" {
				test.That(t, err, test.ShouldBeNil)
				test.That(t, distance, test.ShouldEqual, tc.expected)
				return
			}
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, rover.IsValidationError(err), test.ShouldBeTrue)
			test.That(t, err.Error(), test.ShouldContainSubstring, tc.errField)
			var verr *rover.ValidationError
			test.That(t, errors.As(err, &verr), test.ShouldBeTrue)
			test.That(t, verr.Path, test.ShouldEqual, tc.errPath)
			test.That(t, verr.Field, test.ShouldEqual, tc.errField)
		})
	}
}

func TestNilSpec(t *testing.T) {
	var spec *Spec
	_, err := spec.Distance("exercise")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "fixed_distance")
}

func TestNewFixedDistance(t *testing.T) {
	spec := NewFixedDistance(4.5)
	distance, err := spec.Distance("exercise")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, distance, test.ShouldEqual, 4.5)

	out, err := json.Marshal(spec)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `{"fixed_distance":{"value":4.5}}`)
}
