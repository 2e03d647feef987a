package logging

import (
	"go.uber.org/zap"
)

// MustNewLogger はenvに応じたzapロガーを作る。失敗したらpanic。
func MustNewLogger(service string, env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if env == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	return logger.With(zap.String("service", service))
}
