package config

type MemcachedConfig struct {
	NodeHosts []string `yaml:"hosts"`
}

func (s *MemcachedConfig) Hosts() []string {
	return s.NodeHosts
}

// Enabled reports whether a cache node is configured at all.
// An empty list means the facade falls back to the no-op cache.
func (s *MemcachedConfig) Enabled() bool {
	return len(s.NodeHosts) > 0
}
