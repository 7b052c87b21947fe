// Package utils exposes reusable helpers consumed by the command-line entry points.
//
// ConfigurationLoader layers embedded defaults, configuration files, dotenv files
// and prefixed environment variables through Viper; LoggerFactory builds zap
// loggers in structured or console encoding.
package utils
