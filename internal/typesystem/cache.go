package typesystem

// ComparisonCache memoizes Hash and Compare keyed by the serialized form of
// their operands. It is disabled when created. While enabled it only grows;
// entries are dropped by Clear. The cache does no locking: callers sharing
// one across goroutines must serialize access. A nil *ComparisonCache behaves
// as a disabled cache.
type ComparisonCache struct {
	enabled     bool
	hashes      map[string]uint64
	comparisons map[[2]string]int
}

func NewComparisonCache() *ComparisonCache {
	return &ComparisonCache{
		hashes:      map[string]uint64{},
		comparisons: map[[2]string]int{},
	}
}

func (c *ComparisonCache) Enable() {
	if c != nil {
		c.enabled = true
	}
}

// Disable stops memoizing. Existing entries are kept until Clear.
func (c *ComparisonCache) Disable() {
	if c != nil {
		c.enabled = false
	}
}

func (c *ComparisonCache) Enabled() bool { return c != nil && c.enabled }

func (c *ComparisonCache) Clear() {
	if c == nil {
		return
	}
	c.hashes = map[string]uint64{}
	c.comparisons = map[[2]string]int{}
}

// Len is the number of memoized entries.
func (c *ComparisonCache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.hashes) + len(c.comparisons)
}

func (c *ComparisonCache) Hash(t Type) uint64 {
	if !c.Enabled() {
		return Hash(t)
	}
	key := Serialize(t)
	if hash, ok := c.hashes[key]; ok {
		return hash
	}
	hash := Hash(t)
	c.hashes[key] = hash
	return hash
}

func (c *ComparisonCache) Compare(left, right Type) int {
	if !c.Enabled() {
		return Compare(left, right)
	}
	key := [2]string{Serialize(left), Serialize(right)}
	if result, ok := c.comparisons[key]; ok {
		return result
	}
	result := Compare(left, right)
	c.comparisons[key] = result
	return result
}

func (c *ComparisonCache) Equal(left, right Type) bool { return c.Compare(left, right) == 0 }
