package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Novo cria o logger estruturado padrão da aplicação.
func Novo() *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	config := zap.NewProductionConfig()
	config.EncoderConfig = encoderConfig

	log, err := config.Build()
	if err != nil {
		// Fallback: nunca subir sem logger.
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}
