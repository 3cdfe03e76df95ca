package domain

import "fmt"

const (
	// TrailerSize is the size of one T10-PI protection interval.
	TrailerSize = 8

	// DefaultDataSize is the logical block size assumed when none is configured.
	DefaultDataSize = 4096

	// Sentinel is written into every trailer byte. An application tag of
	// 0xffff disables integrity checking for the sector.
	Sentinel byte = 0xff
)

// Field offsets inside the trailer, relative to its first byte.
// Only documented; the whole trailer is overwritten regardless of PI type.
const (
	GuardTagOffset = 0 // CRC16 of the data block, 2 bytes
	AppTagOffset   = 2 // application tag, 2 bytes
	RefTagOffset   = 4 // reference tag, 4 bytes
)

// Geometry describes how records are framed in the stream.
type Geometry struct {
	DataSize int
}

// DefaultGeometry returns the 4096+8 byte layout.
func DefaultGeometry() Geometry {
	return Geometry{DataSize: DefaultDataSize}
}

// RecordSize returns the size of one framed record.
func (g Geometry) RecordSize() int {
	return g.DataSize + TrailerSize
}

// TrailerStart returns the offset of the trailer inside a record.
func (g Geometry) TrailerStart() int {
	return g.DataSize
}

// Validate rejects data sizes that do not match a supported sector size.
func (g Geometry) Validate() error {
	switch g.DataSize {
	case 512, 4096:
		return nil
	default:
		return fmt.Errorf("%w: unsupported data size %d (want 512 or 4096)", ErrInvalidConfig, g.DataSize)
	}
}

// String returns e.g. "4096+8".
func (g Geometry) String() string {
	return fmt.Sprintf("%d+%d", g.DataSize, TrailerSize)
}

// Neutralize overwrites the trailer of record with Sentinel.
// record must be exactly RecordSize bytes long.
func (g Geometry) Neutralize(record []byte) {
	trailer := record[g.TrailerStart():g.RecordSize()]
	for i := range trailer {
		trailer[i] = Sentinel
	}
}
