package logger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. JSON output is used in production or
// when logging.format is "json"; otherwise a coloured console encoder.
// Every entry carries the app name, environment and work-order timezone.
func New(cfg *config.LoggingConfig, appCfg *config.AppConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" || appCfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	zapCfg.InitialFields = map[string]interface{}{
		"app":         appCfg.Name,
		"environment": appCfg.Environment,
		"timezone":    appCfg.Location().String(),
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}

// WithRequest adds request context to logger
func WithRequest(log *zap.Logger, method, path, requestID string) *zap.Logger {
	return log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
	)
}

// WithActor tags entries with the identity activity is attributed to
func WithActor(log *zap.Logger, actor auth.Actor) *zap.Logger {
	fields := []zap.Field{zap.String("user_name", actor.Name)}
	if actor.Email != "" {
		fields = append(fields, zap.String("user_email", actor.Email))
	}
	return log.With(fields...)
}

// WithWorkOrder tags entries with a work order's id and number
func WithWorkOrder(log *zap.Logger, id uuid.UUID, woNumber string) *zap.Logger {
	return log.With(
		zap.String("work_order_id", id.String()),
		zap.String("wo_number", woNumber),
	)
}
