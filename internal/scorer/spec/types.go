// Package spec describes evaluation jobs, given on the command line or as a
// YAML run file with several jobs.
package spec

import "gopkg.in/yaml.v3"

// RunSpec is a YAML run file. Defaults fill the unset fields of every job.
type RunSpec struct {
	Defaults Job   `yaml:"defaults"`
	Jobs     []Job `yaml:"jobs"`
}

// Job is one scorer invocation: one prediction file against one gold file
// for one task.
type Job struct {
	Name        string `yaml:"name"`
	Ref         string `yaml:"ref"`
	Pred        string `yaml:"pred"`
	Task        string `yaml:"task"`
	Outdir      string `yaml:"outdir"`
	Suffix      string `yaml:"suffix"`
	Tagset      string `yaml:"tagset"`
	GlueingCols string `yaml:"glueing_cols"`
	NBest       string `yaml:"n_best"`
	NoiseLevel  string `yaml:"noise_level"`
	TimePeriod  string `yaml:"time_period"`
	Union       bool   `yaml:"union"`
	SkipCheck   bool   `yaml:"skip_check"`

	// set when the YAML job names the flag, so an explicit false overrides
	// a true default
	unionSet     bool
	skipCheckSet bool
}

func (j *Job) UnmarshalYAML(value *yaml.Node) error {
	type plain Job
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*j = Job(p)

	for i := 0; i+1 < len(value.Content); i += 2 {
		switch value.Content[i].Value {
		case "union":
			j.unionSet = true
		case "skip_check":
			j.skipCheckSet = true
		}
	}
	return nil
}
