package spec

import (
	"errors"
	"testing"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobValidate(t *testing.T) {
	base := Job{Ref: "gold.tsv", Pred: "pred.tsv"}

	tests := []struct {
		name       string
		modify     func(j *Job)
		wantConfig bool
		wantErr    bool
	}{
		{name: "nerc plain", modify: func(j *Job) { j.Task = "nerc_coarse" }},
		{name: "nel with n-best", modify: func(j *Job) { j.Task = "nel"; j.NBest = "1,3,5" }},
		{name: "nel with union", modify: func(j *Job) { j.Task = "nel"; j.Union = true }},
		{name: "nerc with union", modify: func(j *Job) { j.Task = "nerc_coarse"; j.Union = true }, wantConfig: true},
		{name: "nerc with n-best", modify: func(j *Job) { j.Task = "nerc_fine"; j.NBest = "3" }, wantConfig: true},
		{name: "nel with union and n-best", modify: func(j *Job) { j.Task = "nel"; j.Union = true; j.NBest = "3" }, wantConfig: true},
		{name: "bad cutoff", modify: func(j *Job) { j.Task = "nel"; j.NBest = "x" }, wantErr: true},
		{name: "repeated cutoff", modify: func(j *Job) { j.Task = "nel"; j.NBest = "1,1" }, wantErr: true},
		{name: "repeated noise level", modify: func(j *Job) { j.Task = "nerc_coarse"; j.NoiseLevel = "0.0-0.1,0.0-0.1" }, wantErr: true},
		{name: "missing ref", modify: func(j *Job) { j.Task = "nel"; j.Ref = "" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := base
			tt.modify(&j)
			err := j.Validate()

			var cfgErr *apperr.ConfigError
			switch {
			case tt.wantConfig:
				require.True(t, errors.As(err, &cfgErr), "got %v", err)
				assert.Contains(t, err.Error(), "The provided arguments are not valid.")
			case tt.wantErr:
				require.Error(t, err)
				assert.False(t, errors.As(err, &cfgErr))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobPlan(t *testing.T) {
	j := Job{Ref: "gold.tsv", Pred: "pred.tsv", Task: "nel", NBest: "1,3", TimePeriod: "1900-1950"}
	p, err := j.Plan()
	require.NoError(t, err)
	assert.Len(t, p.Strata(), 4)
	assert.Equal(t, "TIME-1900-1950-@1-@3", p.FileSuffix(""))
}

func TestParseSubmission(t *testing.T) {
	s, err := ParseSubmission("runs/TeamX_bundle3_FR_2.tsv")
	require.NoError(t, err)
	assert.Equal(t, Submission{Name: "teamx_bundle3_fr_2", Team: "teamx", Bundle: 3, Lang: "fr", Run: "2"}, s)

	for _, bad := range []string{
		"teamx_bundle3_fr_2.txt",
		"teamx_bundle6_fr_2.tsv",
		"teamx_bundle0_fr_2.tsv",
		"teamx_bundle1_it_2.tsv",
		"teamx_bundle1_fr.tsv",
		"teamx_bundleX_fr_2.tsv",
	} {
		t.Run(bad, func(t *testing.T) {
			_, err := ParseSubmission(bad)
			var vErr *apperr.ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestSystemName(t *testing.T) {
	name, err := Job{Pred: "out/teamx_bundle1_de_1.tsv"}.SystemName()
	require.NoError(t, err)
	assert.Equal(t, "teamx_bundle1_de_1", name)

	name, err = Job{Pred: "out/anything.tsv", SkipCheck: true}.SystemName()
	require.NoError(t, err)
	assert.Equal(t, "out/anything.tsv", name)

	_, err = Job{Pred: "out/anything.tsv"}.SystemName()
	assert.Error(t, err)
}
