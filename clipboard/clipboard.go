// Package clipboard wraps the system clipboard. All functions are safe to
// call from any goroutine.
package clipboard

import cb "github.com/atotto/clipboard"

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}
