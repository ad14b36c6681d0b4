package propertypicker_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func props(pairs ...string) []models.Property {
	out := make([]models.Property, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Property{PropertyID: pairs[i], Name: pairs[i+1]})
	}
	return out
}

func TestInitial_IsLoadingAndDisabled(t *testing.T) {
	s := propertypicker.Initial()
	assert.Equal(t, propertypicker.PhaseLoading, s.Phase)
	assert.Empty(t, s.Properties)
	assert.Empty(t, s.Selected)

	v := s.View()
	assert.True(t, v.Disabled)
	assert.Equal(t, propertypicker.LoadingLabel, v.Placeholder)
	assert.Empty(t, v.Options)
	assert.False(t, v.ShowSummary())
}

func TestApply_NonEmptySelectsFirst(t *testing.T) {
	// Scenario A
	s := propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(props("p1", "A", "p2", "B")))

	require.Equal(t, propertypicker.PhaseReady, s.Phase)
	assert.Equal(t, "p1", s.Selected)

	v := s.View()
	assert.False(t, v.Disabled)
	assert.Empty(t, v.Placeholder)
	require.Len(t, v.Options, 2)
	assert.Equal(t, propertypicker.Option{ID: "p1", Name: "A", Selected: true}, v.Options[0])
	assert.Equal(t, propertypicker.Option{ID: "p2", Name: "B", Selected: false}, v.Options[1])
	assert.True(t, v.ShowSummary())
	assert.Equal(t, "p1", v.SummaryPropertyID)
}

func TestApply_UnusableResultsFailClosed(t *testing.T) {
	cases := map[string]propertypicker.Result{
		"empty array":  propertypicker.Succeeded([]models.Property{}), // Scenario B
		"non-array":    propertypicker.Succeeded(nil),
		"rejected":     propertypicker.Failed(errors.New("boom")), // Scenario C
		"partial+fail": {Properties: props("p1", "A"), Err: errors.New("late error")},
	}
	for name, res := range cases {
		t.Run(name, func(t *testing.T) {
			s := propertypicker.Apply(propertypicker.Initial(), res)
			assert.Equal(t, propertypicker.PhaseUnavailable, s.Phase)
			assert.Empty(t, s.Properties)
			assert.Empty(t, s.Selected)

			v := s.View()
			assert.True(t, v.Disabled)
			assert.Equal(t, propertypicker.LoadingLabel, v.Placeholder)
			assert.False(t, v.ShowSummary())
		})
	}
}

func TestApply_IgnoresSecondResult(t *testing.T) {
	s := propertypicker.Apply(propertypicker.Initial(), propertypicker.Failed(errors.New("down")))
	s = propertypicker.Apply(s, propertypicker.Succeeded(props("p1", "A")))
	assert.Equal(t, propertypicker.PhaseUnavailable, s.Phase)

	s = propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(props("p1", "A")))
	s = propertypicker.Apply(s, propertypicker.Failed(errors.New("down")))
	assert.Equal(t, propertypicker.PhaseReady, s.Phase)
	assert.Equal(t, "p1", s.Selected)
}

func TestApply_CopiesList(t *testing.T) {
	list := props("p1", "A", "p2", "B")
	s := propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(list))
	list[0].PropertyID = "mutated"
	assert.Equal(t, "p1", s.Properties[0].PropertyID)
}

func TestSelect(t *testing.T) {
	s := propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(props("p1", "A", "p2", "B")))

	s = s.Select("p2")
	assert.Equal(t, "p2", s.Selected)
	assert.Equal(t, "p2", s.View().SummaryPropertyID)

	// not offered: unchanged
	s = s.Select("other-tenant-prop")
	assert.Equal(t, "p2", s.Selected)

	s = s.Select("")
	assert.Equal(t, "p2", s.Selected)
}

func TestSelect_NoopOutsideReady(t *testing.T) {
	s := propertypicker.Initial().Select("p1")
	assert.Empty(t, s.Selected)

	s = propertypicker.Apply(propertypicker.Initial(), propertypicker.Failed(errors.New("x"))).Select("p1")
	assert.Empty(t, s.Selected)
}

func TestStatic_DefaultSelection(t *testing.T) {
	catalogue := props(
		"prop-001", "Beach House Alpha",
		"prop-002", "City Apartment Downtown",
		"prop-003", "Country Villa Estate",
	)

	// Scenario D
	s := propertypicker.Static(catalogue, "prop-001")
	require.Equal(t, propertypicker.PhaseReady, s.Phase)
	assert.Equal(t, "prop-001", s.Selected)

	s = s.Select("prop-003")
	assert.Equal(t, "prop-003", s.View().SummaryPropertyID)
}

func TestStatic_UnknownDefaultFallsBackToFirst(t *testing.T) {
	s := propertypicker.Static(props("a", "A", "b", "B"), "zzz")
	assert.Equal(t, "a", s.Selected)
}

func TestStatic_EmptyCatalogue(t *testing.T) {
	s := propertypicker.Static(nil, "prop-001")
	assert.Equal(t, propertypicker.PhaseUnavailable, s.Phase)
	assert.True(t, s.View().Disabled)
}

func TestView_DisabledIffEmpty(t *testing.T) {
	states := []propertypicker.State{
		propertypicker.Initial(),
		propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(nil)),
		propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded(props("p1", "A"))),
	}
	for _, s := range states {
		v := s.View()
		assert.Equal(t, len(s.Properties) == 0, v.Disabled, "phase %s", s.Phase)
		assert.Equal(t, len(s.Properties) == 0, v.Placeholder != "", "phase %s", s.Phase)
	}
}

func TestView_NameFallsBackToID(t *testing.T) {
	s := propertypicker.Apply(propertypicker.Initial(), propertypicker.Succeeded([]models.Property{{PropertyID: "p9"}}))
	assert.Equal(t, "p9", s.View().Options[0].Name)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "loading", propertypicker.PhaseLoading.String())
	assert.Equal(t, "ready", propertypicker.PhaseReady.String())
	assert.Equal(t, "unavailable", propertypicker.PhaseUnavailable.String())
	assert.Equal(t, "unknown", propertypicker.Phase(42).String())
}
