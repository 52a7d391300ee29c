package main

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/hairizuan-noorazman/user-admin/apiclient"
	"github.com/hairizuan-noorazman/user-admin/logger"
	"github.com/hairizuan-noorazman/user-admin/operations"
	"github.com/hairizuan-noorazman/user-admin/userstate"
)

func newLogger() logger.Logger {
	return logger.New(logger.Config{
		Level:  cfg.GetString("log_level"),
		Format: cfg.GetString("log_format"),
		Output: os.Stderr,
	})
}

// newService wires the client, a fresh store and the operations layer.
func newService(log logger.Logger) *operations.Service {
	client := apiclient.New(getConfigURL(), log, apiclient.WithTimeout(cfg.GetDuration("timeout")))
	return operations.New(client, userstate.NewStore(), log)
}

// outcomeError turns a failed outcome into the error cobra reports, printing
// any field errors first.
func outcomeError(w io.Writer, out operations.Outcome) error {
	if out.Success {
		return nil
	}
	if !out.Errors.Valid() {
		printFieldErrors(w, out.Errors)
	}
	return errors.New(out.Message)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
