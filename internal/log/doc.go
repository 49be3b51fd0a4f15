// Package log builds slog loggers whose output is sanitized.
//
// SecureHandler masks credentials (Authorization and X-Api-Key headers,
// tokens, long API keys) and shortens article bodies and request payloads
// logged under html, body, payload or content to a preview:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("sending backend request", "payload", string(data)) // previewed
//	logger.Info("config", "x-api-key", key)                          // masked
package log
