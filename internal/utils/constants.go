package utils

const (
	// ApplicationName is the command name and the product name.
	ApplicationName = "qrclip"
	// ConfigFileName is the configuration file looked up in the working and global directories.
	ConfigFileName = "config.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".qrclip"
	// LoggerInitializationFailedMessageFormat reports a failure to construct the logger.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal errors returned by the command.
	ApplicationExecutionFailedMessage = "qrclip failed"
)
