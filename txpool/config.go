package txpool

const (
	DefaultCapacity  = 4096
	DefaultPriceBump = 10
)

type Config struct {
	// Capacity bounds pending + queued together, insertion beyond it
	// evicts the lowest priority pending entry or rejects the newcomer.
	Capacity int
	// PriceBump is the minimum percent a replacement at an occupied nonce
	// must improve on the resident priority.
	PriceBump uint64
}

func DefaultConfig() Config {
	return Config{
		Capacity:  DefaultCapacity,
		PriceBump: DefaultPriceBump,
	}
}

func (c Config) withDefaults() Config {
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	return c
}
