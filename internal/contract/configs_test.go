package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentops/ninebox/schema"
)

// validInput returns a raw input that passes validation, for tests to tweak.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		RosterPathStr: "roster.csv",
		RedP:          DefaultRedPValue,
		YellowP:       DefaultYellowPValue,
		ZThreshold:    DefaultZThreshold,
		MinSample:     DefaultMinSampleSize,
		MinExpected:   DefaultMinExpectedCount,
		PriorityFloor: DefaultPriorityFloor,
		Workers:       4,
		Limit:         DefaultResultLimit,
		Precision:     DefaultPrecision,
		Output:        "text",
		Color:         "yes",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, "roster.csv", cfg.RosterPath)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.SessionBackend)
	assert.True(t, cfg.UseColors)
	assert.Nil(t, cfg.Dimensions)
}

func TestProcessAndValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"limit zero", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"limit too large", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"bad output mode", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"red-p out of range", func(in *ConfigRawInput) { in.RedP = 0 }},
		{"yellow-p out of range", func(in *ConfigRawInput) { in.YellowP = 1.5 }},
		{"red above yellow", func(in *ConfigRawInput) { in.RedP = 0.1; in.YellowP = 0.05 }},
		{"negative z", func(in *ConfigRawInput) { in.ZThreshold = -1 }},
		{"zero min sample", func(in *ConfigRawInput) { in.MinSample = 0 }},
		{"unknown dimension", func(in *ConfigRawInput) { in.Dimensions = "location,astrology" }},
		{"unknown backend", func(in *ConfigRawInput) { in.SessionBackend = "oracle" }},
		{"mysql without conn", func(in *ConfigRawInput) { in.SessionBackend = "mysql" }},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestProcessDimensionsSubset(t *testing.T) {
	in := validInput()
	in.Dimensions = "location, manager"
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []string{"location", "manager"}, cfg.Dimensions)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Dimensions: []string{"location"}, ResultLimit: 10}
	clone := cfg.Clone()
	clone.Dimensions[0] = "manager"
	clone.ResultLimit = 99

	assert.Equal(t, "location", cfg.Dimensions[0])
	assert.Equal(t, 10, cfg.ResultLimit)
}
