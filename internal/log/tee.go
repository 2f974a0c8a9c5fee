package log

import "errors"

type tee []Sink

// Tee returns a sink that writes each entry to all of the given sinks.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

func (t tee) Log(entry Entry) error {
	var errs []error
	for _, sink := range t {
		errs = append(errs, sink.Log(entry))
	}
	return errors.Join(errs...)
}
