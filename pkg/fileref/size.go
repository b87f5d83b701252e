package fileref

import "github.com/dustin/go-humanize"

// ReadableSize formats the byte length as a human-scaled IEC string,
// e.g. "2.0 KiB" for 2048 bytes.
func (r *Ref) ReadableSize() string {
	return humanize.IBytes(uint64(r.size))
}

// SizeInMB returns the byte length scaled to mebibytes, unrounded.
func (r *Ref) SizeInMB() float64 {
	return float64(r.size) / (1024 * 1024)
}
