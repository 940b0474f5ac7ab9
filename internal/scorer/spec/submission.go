package spec

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
)

var submissionLangs = []string{"de", "fr", "en"}

// Submission is the parsed name of a shared-task prediction file,
// TEAMNAME_bundleN_LANG_RUN.tsv.
type Submission struct {
	Name   string
	Team   string
	Bundle int
	Lang   string
	Run    string
}

// ParseSubmission checks a prediction file name. The name is compared
// lower-cased and its stem becomes the system name.
func ParseSubmission(path string) (Submission, error) {
	base := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	parts := strings.Split(stem, "_")
	if ext != ".tsv" || len(parts) != 4 {
		return Submission{}, submissionError(path)
	}

	bundle, err := strconv.Atoi(strings.TrimPrefix(parts[1], "bundle"))
	if err != nil || bundle < 1 || bundle > 5 {
		return Submission{}, submissionError(path)
	}
	if !slices.Contains(submissionLangs, parts[2]) {
		return Submission{}, submissionError(path)
	}

	return Submission{Name: stem, Team: parts[0], Bundle: bundle, Lang: parts[2], Run: parts[3]}, nil
}

// SystemName is the value of the System column for a job.
func (j Job) SystemName() (string, error) {
	if j.SkipCheck {
		return j.Pred, nil
	}
	s, err := ParseSubmission(j.Pred)
	if err != nil {
		return "", err
	}
	return s.Name, nil
}

func submissionError(path string) error {
	return apperr.NewValidation(fmt.Sprintf(
		"The filename of the system response '%s' needs to comply with the shared task requirements. "+
			"Rename according to the following scheme: TEAMNAME_TASKBUNDLEID_LANG_RUNNUMBER.tsv", path))
}
