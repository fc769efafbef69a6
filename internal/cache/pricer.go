package cache

import (
	"options-analytics/internal/pricing"
)

// Greeks computes option Greeks through the cache, keyed by the normalized
// pricing inputs. Pricing errors are never cached.
func Greeks(c *TTLCache, in pricing.Inputs) (pricing.Greeks, error) {
	key := in.Key()
	if v, ok := c.Get(key); ok {
		if g, ok := v.(pricing.Greeks); ok {
			return g, nil
		}
	}

	g, err := pricing.Compute(in)
	if err != nil {
		return pricing.Greeks{}, err
	}
	c.Set(key, g)
	return g, nil
}
