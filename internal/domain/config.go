package domain

// Config mirrors ~/.leafllm/config.yaml.
type Config struct {
	ConfigFormatVersion string             `yaml:"config_format_version"`
	Storage             StorageSettings    `yaml:"storage"`
	Shortcuts           ShortcutSettings   `yaml:"shortcuts"`
	Credential          CredentialSettings `yaml:"credential"`
	HTTP                HTTPSettings       `yaml:"http"`
	History             HistorySettings    `yaml:"history"`
}

// StorageSettings locates the settings database.
type StorageSettings struct {
	Path string `yaml:"path"`
}

// ShortcutSettings locates the host shortcut bindings file.
type ShortcutSettings struct {
	File string `yaml:"file"`
}

// CredentialSettings controls where and how the API key is kept.
type CredentialSettings struct {
	Backend      string `yaml:"backend"`
	Pattern      string `yaml:"pattern"`
	EnvVar       string `yaml:"env_var"`
	VerifyOnSave bool   `yaml:"verify_on_save"`
}

// HTTPSettings tunes the API client. A zero timeout means none.
type HTTPSettings struct {
	Timeout string `yaml:"timeout"`
}

// HistorySettings toggles invocation history.
type HistorySettings struct {
	Enabled bool `yaml:"enabled"`
}

// Credential backends.
const (
	CredentialBackendStore   = "store"
	CredentialBackendKeyring = "keyring"
)
