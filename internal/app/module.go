package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/bazaar/internal/identity"
	"github.com/shandysiswandi/bazaar/internal/notification"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.identity.enabled") {
		m, err := identity.New(identity.Dependency{
			DBConn:      a.dbConn,
			Router:      a.router,
			Messaging:   a.messaging,
			Mail:        a.mail,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			HMAC:        a.hmac,
			Password:    a.password,
			Sealer:      a.sealer,
			Clock:       a.clock,
			Validator:   a.validator,
			JWT:         a.jwt,
			Limiter:     a.limiter,
			Idempotency: a.idemp,
		})
		if err != nil {
			slog.Error("failed to init module identity", "error", err)
			os.Exit(1)
		}
		a.identity = m
	}

	if a.config.GetBool("modules.notification.enabled") {
		if err := notification.New(notification.Dependency{
			Ctx:        a.ctx,
			Messaging:  a.messaging,
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			Mail:       a.mail,
		}); err != nil {
			slog.Error("failed to init module notification", "error", err)
			os.Exit(1)
		}
	}
}

// initWorkers schedules background jobs. The OTP sweep only tidies storage;
// lookups already treat expired entries as gone.
func (a *App) initWorkers() {
	if a.identity == nil {
		return
	}

	interval := a.config.GetMinute("modules.identity.otp.sweep_interval_minutes")
	if interval <= 0 {
		return
	}

	slog.Info("scheduling otp sweep", "interval", interval.String())
	a.goroutine.Every(a.ctx, "identity.otp.sweep", interval, a.identity.Sweep)
}
