package engine

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// getResultFolder lays results out as
// <results>/<strategy>/[<start>_<end>/]<data file>/<code>.
func getResultFolder(b *BacktestEngineV1, strategyName string, dataPath string, code string) string {
	strategyFolder := filepath.Join(b.resultsFolder, sanitizePathSegment(strategyName))

	// Create data folder with time range if specified
	dataFolder := strategyFolder

	if b.config.StartTime.IsSome() || b.config.EndTime.IsSome() {
		startTimeStr := "all"
		endTimeStr := "all"

		if b.config.StartTime.IsSome() {
			startTimeStr = b.config.StartTime.Unwrap().Format("20060102")
		}

		if b.config.EndTime.IsSome() {
			endTimeStr = b.config.EndTime.Unwrap().Format("20060102")
		}

		dataFolder = filepath.Join(strategyFolder, fmt.Sprintf("%s_%s", startTimeStr, endTimeStr))
	}

	dataFileName := strings.TrimSuffix(filepath.Base(dataPath), filepath.Ext(dataPath))

	return filepath.Join(dataFolder, sanitizePathSegment(dataFileName), sanitizePathSegment(code))
}

func sanitizePathSegment(name string) string {
	cleaned := strings.Trim(unsafePathChars.ReplaceAllString(name, "_"), "_")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "unnamed"
	}

	return cleaned
}
