package cache

// KeyTypeResult prefixes stability result keys. It is also the key type
// reported to cache hooks and the file cache subdirectory for results.
const KeyTypeResult = "result"

// ResultKeyOpts are the solver settings that change a stability result.
type ResultKeyOpts struct {
	HeelAngles     []float64 `json:"heel_angles"`
	TrimIterations int       `json:"trim_iterations"`
	TrimLimit      float64   `json:"trim_limit"`
	Tolerance      float64   `json:"tolerance"`
	Site           string    `json:"site,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey identifies a stability assessment of items against tables.
	ResultKey(tablesHash, itemsHash string, opts ResultKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements [Keyer].
func (DefaultKeyer) ResultKey(tablesHash, itemsHash string, opts ResultKeyOpts) string {
	return hashKey(KeyTypeResult, tablesHash, itemsHash, opts)
}
