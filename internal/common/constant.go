package common

const (
	// AppName is shown in window titles and log records.
	AppName = "Mundo Fitness"

	// AuthHeaderName carries the bearer token on outbound REST requests.
	AuthHeaderName = "Authorization"

	// DefaultStateKey is the storage key of the persisted document.
	DefaultStateKey = "mf_state_v5"

	// TokenMetadataKey stores the remote bearer token.
	TokenMetadataKey = "mf_token"
)
