// Package utils contains helpers shared by the changetree packages.
package utils

const (
	// GlobalConfigDirectoryName is the directory under the user's home holding global configuration.
	GlobalConfigDirectoryName = ".changetree"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file looked up in the working directory.
	LocalConfigFileName = ".changetree.yaml"
	// ConfigFileType is the encoding of every configuration file.
	ConfigFileType = "yaml"

	// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes the final error logged by main.
	ApplicationExecutionFailedMessage = "changetree failed"
)
