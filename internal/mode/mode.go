// Package mode defines the services shared by interactive modes.
package mode

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/spanedit/internal/config"
	"github.com/zjrosen/spanedit/internal/mode/shared"
)

// Services contains dependencies injected into mode controllers.
type Services struct {
	Config       *config.Config
	ConfigPath   string
	DocumentPath string
	Clipboard    shared.Clipboard
	Clock        shared.Clock
	Tracer       trace.Tracer
}
