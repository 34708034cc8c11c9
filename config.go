package confluence

import "github.com/goliatone/go-confluence/internal/runtimeconfig"

var (
	ErrClientBaseURLRequired        = runtimeconfig.ErrClientBaseURLRequired
	ErrClientBaseURLInvalid         = runtimeconfig.ErrClientBaseURLInvalid
	ErrClientTimeoutInvalid         = runtimeconfig.ErrClientTimeoutInvalid
	ErrClientRetriesInvalid         = runtimeconfig.ErrClientRetriesInvalid
	ErrMacroNameRequired            = runtimeconfig.ErrMacroNameRequired
	ErrRepositoryCacheRequiresCache = runtimeconfig.ErrRepositoryCacheRequiresCache
	ErrResolveCacheSizeInvalid      = runtimeconfig.ErrResolveCacheSizeInvalid
	ErrSyncFeatureRequired          = runtimeconfig.ErrSyncFeatureRequired
	ErrSyncContentDirRequired       = runtimeconfig.ErrSyncContentDirRequired
	ErrSyncDatabaseRequired         = runtimeconfig.ErrSyncDatabaseRequired
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ClientConfig   = runtimeconfig.ClientConfig
	MacroConfig    = runtimeconfig.MacroConfig
	CacheConfig    = runtimeconfig.CacheConfig
	SyncConfig     = runtimeconfig.SyncConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
