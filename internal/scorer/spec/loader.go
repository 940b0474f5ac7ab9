package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
)

func LoadFromFile(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run spec: %w", err)
	}
	return Parse(data)
}

// Parse decodes a run spec, merges the defaults into each job and validates
// every job up front.
func Parse(data []byte) (*RunSpec, error) {
	var s RunSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, apperr.NewValidationWrap("parse run spec YAML", err)
	}
	if len(s.Jobs) == 0 {
		return nil, apperr.NewValidation("run spec has no jobs")
	}

	seen := make(map[string]bool, len(s.Jobs))
	for i := range s.Jobs {
		j := s.Jobs[i].withDefaults(s.Defaults)
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if seen[j.Name] {
			return nil, apperr.NewValidation(fmt.Sprintf("duplicate job name %q", j.Name))
		}
		seen[j.Name] = true

		if err := j.Validate(); err != nil {
			return nil, fmt.Errorf("job %q: %w", j.Name, err)
		}
		s.Jobs[i] = j
	}
	return &s, nil
}

func (j Job) withDefaults(d Job) Job {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	j.Ref = pick(j.Ref, d.Ref)
	j.Pred = pick(j.Pred, d.Pred)
	j.Task = pick(j.Task, d.Task)
	j.Outdir = pick(j.Outdir, d.Outdir)
	j.Suffix = pick(j.Suffix, d.Suffix)
	j.Tagset = pick(j.Tagset, d.Tagset)
	j.GlueingCols = pick(j.GlueingCols, d.GlueingCols)
	j.NBest = pick(j.NBest, d.NBest)
	j.NoiseLevel = pick(j.NoiseLevel, d.NoiseLevel)
	j.TimePeriod = pick(j.TimePeriod, d.TimePeriod)
	if !j.unionSet {
		j.Union = d.Union
	}
	if !j.skipCheckSet {
		j.SkipCheck = d.SkipCheck
	}
	return j
}
