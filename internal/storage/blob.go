// Package storage archives the raw files handed to the import API so an
// import can be audited or replayed after the source file is gone.
package storage

import "io"

type Archive interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	URL(key string) (string, error) // fs returns "file://..." for dev
}
