package domain

// Counters tracks how much of the source stream has been processed.
// Values only grow and are never used for control flow.
type Counters struct {
	Sectors          uint64 `json:"sectors"`
	BytesWithTrailer uint64 `json:"bytes_with_trailer"`
	BytesDataOnly    uint64 `json:"bytes_data_only"`
}

// Add accounts for one fully processed record.
func (c *Counters) Add(g Geometry) {
	c.Sectors++
	c.BytesWithTrailer += uint64(g.RecordSize())
	c.BytesDataOnly += uint64(g.DataSize)
}

// GB returns the data-only byte count in whole gigabytes (1e9 bytes).
func (c Counters) GB() uint64 {
	return c.BytesDataOnly / 1_000_000_000
}
