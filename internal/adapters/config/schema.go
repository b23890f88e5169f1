package config

// talonFile represents the structure of the talon.yaml configuration file.
type talonFile struct {
	GameDir    string `yaml:"game_dir"`
	ModsDir    string `yaml:"mods_dir"`
	CacheDir   string `yaml:"cache_dir"`
	RuntimeDir string `yaml:"runtime_dir"`
	IndexURL   string `yaml:"index_url"`
}
