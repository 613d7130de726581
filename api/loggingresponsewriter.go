package api

import "net/http"

// loggingResponseWriter records the status code and body size for the access
// log middleware.
type loggingResponseWriter struct {
	http.ResponseWriter

	status    int
	bodyBytes int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.bodyBytes += n
	return n, err
}
