// Package queue serializes image generation so concurrent cover requests
// never hammer the backend in parallel.
package queue

type Queue interface {
	Start()
	Stop()
	// Add enqueues a prompt. Exactly one of the returned channels delivers:
	// image bytes on success, the failure on error; the other is closed.
	Add(prompt string) (chan []byte, chan error, error)
}
