package config

type AppConfig struct {
	Name string `yaml:"service-name"`
}

func (s *AppConfig) ServiceName() string {
	if s.Name == "" {
		return "accounting"
	}
	return s.Name
}
