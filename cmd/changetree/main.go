package main

import (
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/temirov/changetree/internal/cli"
	"github.com/temirov/changetree/internal/utils"
)

func main() {
	logger, loggerError := utils.NewApplicationLogger(zapcore.InfoLevel)
	if loggerError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError))
	}
	defer func() {
		_ = logger.Sync()
	}()

	if executionError := cli.Execute(logger); executionError != nil {
		logger.Fatal(utils.ApplicationExecutionFailedMessage + ": " + executionError.Error())
	}
}
