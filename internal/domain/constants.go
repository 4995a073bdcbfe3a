package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Settings store keys
const (
	// RequestConfigurationKey holds the RequestConfiguration record
	RequestConfigurationKey = "RequestConfiguration"
	// CredentialKey holds the API key when the store backend is used
	CredentialKey = "openAIAPIKey"
)

// Credential constants
const (
	// DefaultCredentialPattern matches "sk-" followed by 48 alphanumerics
	DefaultCredentialPattern = `^sk-[A-Za-z0-9]{48}$`
	// DefaultCredentialEnvVar is consulted when no key is stored
	DefaultCredentialEnvVar = "LEAFLLM_API_KEY"
	// CredentialProbePrompt is sent with the Ask template to verify a new key
	CredentialProbePrompt = "write a random latex command. do not explain it."
)

// History constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = 20
)
