package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/bazaar/internal/identity"
	"github.com/shandysiswandi/bazaar/internal/pkg/clock"
	"github.com/shandysiswandi/bazaar/internal/pkg/config"
	"github.com/shandysiswandi/bazaar/internal/pkg/goroutine"
	"github.com/shandysiswandi/bazaar/internal/pkg/hash"
	"github.com/shandysiswandi/bazaar/internal/pkg/idempotency"
	"github.com/shandysiswandi/bazaar/internal/pkg/instrument"
	"github.com/shandysiswandi/bazaar/internal/pkg/jwt"
	"github.com/shandysiswandi/bazaar/internal/pkg/mail"
	"github.com/shandysiswandi/bazaar/internal/pkg/messaging"
	"github.com/shandysiswandi/bazaar/internal/pkg/ratelimit"
	"github.com/shandysiswandi/bazaar/internal/pkg/router"
	"github.com/shandysiswandi/bazaar/internal/pkg/sealer"
	"github.com/shandysiswandi/bazaar/internal/pkg/uid"
	"github.com/shandysiswandi/bazaar/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	password  hash.Hash
	sealer    sealer.Sealer
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	limiter   ratelimit.Limiter
	mail      mail.Mail
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	// modules
	identity *identity.Module

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initWorkers()
	app.initClosers()

	return app
}
