package main

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// serverError logs err with a stack trace. The error text reaches the client
// only in development.
func (app *application) serverError(w http.ResponseWriter, err error) {
	app.logger.Error("server error", zap.Error(err), zap.ByteString("stack", debug.Stack()))

	msg := http.StatusText(http.StatusInternalServerError)
	if app.cfg.IsDevelopment() {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}
