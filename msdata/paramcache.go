package msdata

import "fmt"

// ParameterCache amortizes name lookups in live parameter lists across
// the spectra of one acquisition level. Scanning a live list is the
// expensive operation (it is backed by a vendor call), and spectra
// sharing an acquisition level typically expose an identical layout,
// so the learned name to slot binding is reused until the layout stops
// matching.
//
// The cache is not safe for concurrent use, the owning spectrum list
// serializes access per bucket.
type ParameterCache struct {
	slotByName     map[string]int
	altToCanonical map[string]string
}

// NewParameterCache returns an empty cache.
func NewParameterCache() *ParameterCache {
	return &ParameterCache{
		slotByName:     make(map[string]int),
		altToCanonical: make(map[string]string),
	}
}

// RegisterAlternative binds an alternative spelling to a canonical
// parameter name. Bindings are append-only for the cache lifetime and
// survive bucket rebuilds.
func (c *ParameterCache) RegisterAlternative(alt, canonical string) {
	if _, ok := c.altToCanonical[alt]; !ok {
		c.altToCanonical[alt] = canonical
	}
}

// Get returns the value of the named parameter in the live list. The
// first request for a name scans the list once and records the slot it
// was found at; later requests read the slot directly and fall back to
// a single rescan when the list layout no longer matches. A name
// matches a list entry either literally or through a registered
// alternative spelling.
func (c *ParameterCache) Get(name string, params []Parameter) (string, error) {
	if slot, ok := c.slotByName[name]; ok && slot < len(params) {
		p := params[slot]
		if p.Name == name || c.altToCanonical[p.Name] == name {
			return p.Value, nil
		}
	}
	c.Update(params)
	if slot, ok := c.slotByName[name]; ok && slot < len(params) {
		return params[slot].Value, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrParameterNotFound)
}

// Update rescans a live list and rebuilds the slot bindings from it.
// Every entry is bound under its literal name and, when an alternative
// spelling is registered for it, under the canonical name as well. The
// first occurrence of a name wins, matching a front to back scan.
func (c *ParameterCache) Update(params []Parameter) {
	c.slotByName = make(map[string]int, len(params))
	for i, p := range params {
		if _, ok := c.slotByName[p.Name]; !ok {
			c.slotByName[p.Name] = i
		}
		if canonical, ok := c.altToCanonical[p.Name]; ok {
			if _, ok := c.slotByName[canonical]; !ok {
				c.slotByName[canonical] = i
			}
		}
	}
}
