package config

// Environment variables overriding profile fields.
const (
	delimiter = "_"

	EnvPrefix = "SAMPLED"

	EnvLogLevel   = EnvPrefix + delimiter + "LOG_LEVEL"
	EnvMaxSamples = EnvPrefix + delimiter + "MAX_SAMPLES"
	EnvSubsamples = EnvPrefix + delimiter + "SUBSAMPLES"
)
