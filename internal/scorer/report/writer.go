package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
)

// Paths are the two report files written for one run.
type Paths struct {
	TSV  string
	JSON string
}

// OutputPaths derives "<stem>_<task>[_<suffix>].{tsv,json}" inside outdir
// from the prediction file name.
func OutputPaths(predPath, outdir, taskName, suffix string) Paths {
	name := filepath.Base(predPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	base := stem + "_" + taskName
	if suffix != "" {
		base += "_" + suffix
	}

	return Paths{
		TSV:  filepath.Join(outdir, base+".tsv"),
		JSON: filepath.Join(outdir, base+".json"),
	}
}

// Write persists the accumulated rows as TSV and the last stratum's bundle
// as JSON. Both files are staged first and only renamed into place once
// both were fully written.
func Write(rows []Row, last metrics.Bundle, paths Paths) error {
	tsvTmp, err := stage(paths.TSV, func(f *os.File) error { return EncodeTSV(f, rows) })
	if err != nil {
		return fmt.Errorf("write tsv report: %w", err)
	}

	jsonTmp, err := stage(paths.JSON, func(f *os.File) error { return EncodeJSON(f, last) })
	if err != nil {
		_ = os.Remove(tsvTmp)
		return fmt.Errorf("write json report: %w", err)
	}

	if err := os.Rename(tsvTmp, paths.TSV); err != nil {
		_ = os.Remove(tsvTmp)
		_ = os.Remove(jsonTmp)
		return fmt.Errorf("write tsv report: %w", err)
	}
	if err := os.Rename(jsonTmp, paths.JSON); err != nil {
		_ = os.Remove(jsonTmp)
		_ = os.Remove(paths.TSV)
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

func EncodeTSV(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	w.Comma = '\t'

	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func EncodeJSON(out io.Writer, b metrics.Bundle) error {
	data, err := json.MarshalIndent(b, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func stage(target string, encode func(*os.File) error) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if err := encode(f); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	return tmp, nil
}
