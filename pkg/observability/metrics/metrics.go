package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

var (
	sessionsStarted      atomic.Int64
	sessionsCompleted    atomic.Int64
	sessionsFailed       atomic.Int64
	patternsDetected     atomic.Int64
	correlationsDetected atomic.Int64
	anomaliesDetected    atomic.Int64
)

func Init() {}

func IncSessionStarted()   { sessionsStarted.Add(1) }
func IncSessionCompleted() { sessionsCompleted.Add(1) }
func IncSessionFailed()    { sessionsFailed.Add(1) }

func ObserveDetections(patterns, correlations, anomalies int) {
	patternsDetected.Add(int64(patterns))
	correlationsDetected.Add(int64(correlations))
	anomaliesDetected.Add(int64(anomalies))
}

func WritePrometheus(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# HELP lumina_analysis_sessions_started_total Number of analysis sessions accepted for processing.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_sessions_started_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_sessions_started_total %d\n", sessionsStarted.Load())

	fmt.Fprintf(w, "# HELP lumina_analysis_sessions_completed_total Number of analysis sessions that reached completed.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_sessions_completed_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_sessions_completed_total %d\n", sessionsCompleted.Load())

	fmt.Fprintf(w, "# HELP lumina_analysis_sessions_failed_total Number of analysis sessions that reached failed.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_sessions_failed_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_sessions_failed_total %d\n", sessionsFailed.Load())

	fmt.Fprintf(w, "# HELP lumina_analysis_patterns_detected_total Health patterns persisted across all sessions.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_patterns_detected_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_patterns_detected_total %d\n", patternsDetected.Load())

	fmt.Fprintf(w, "# HELP lumina_analysis_correlations_detected_total Health correlations persisted across all sessions.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_correlations_detected_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_correlations_detected_total %d\n", correlationsDetected.Load())

	fmt.Fprintf(w, "# HELP lumina_analysis_anomalies_detected_total Health anomalies persisted across all sessions.\n")
	fmt.Fprintf(w, "# TYPE lumina_analysis_anomalies_detected_total counter\n")
	fmt.Fprintf(w, "lumina_analysis_anomalies_detected_total %d\n", anomaliesDetected.Load())
}
