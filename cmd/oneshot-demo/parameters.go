package main

import (
	"time"

	"github.com/iotaledger/oneshot/effect"
	"github.com/iotaledger/oneshot/kvstore/database"
	"github.com/iotaledger/oneshot/log"
	"github.com/iotaledger/oneshot/runtime/syncutils"
)

// Parameters contains the configuration of the demo screen.
type Parameters struct {
	// Toasts is the number of toasts that the producer emits.
	Toasts int `default:"3" usage:"the number of toasts that are emitted"`

	// Interval is the time between two toasts.
	Interval time.Duration `default:"1s" usage:"the time between two toasts"`

	// DisplayDuration is the time it takes to show a toast.
	DisplayDuration time.Duration `default:"500ms" usage:"the time it takes to show a toast"`
}

// ParamsDemo contains the configuration of the demo screen.
var ParamsDemo = &Parameters{}

// parameters contains the parameter structs of all components by their namespace.
var parameters = map[string]any{
	"demo":     ParamsDemo,
	"effect":   effect.ParamsEffect,
	"logger":   log.ParamsLogger,
	"database": database.ParamsDatabase,
	"debug":    syncutils.ParamsSyncUtils,
}
