package bench

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// WriteCSV writes the records to path, creating parent directories as
// needed.
func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"run_id", "instance", "algo", "runs",
		"fitness_best", "fitness_mean", "fitness_std",
		"makespan_best", "feasible_runs", "evaluations",
		"time_mean_ms", "time_std_ms",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.RunID,
			r.Instance,
			r.Algo,
			strconv.Itoa(r.Runs),

			ftoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),

			strconv.Itoa(r.MakespanBest),
			strconv.Itoa(r.FeasibleRuns),
			strconv.Itoa(r.Evaluations),

			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
