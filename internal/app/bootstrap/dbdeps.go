// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/revenuedash/internal/app/system/auditlog"
	"github.com/dalemusser/revenuedash/internal/app/system/catalogue"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/ratelimit"
	"github.com/dalemusser/revenuedash/internal/app/system/revenue"
	"github.com/dalemusser/revenuedash/internal/app/system/tenantproperties"
	"github.com/dalemusser/revenuedash/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Runtime is allocated in ConnectDB and filled in by Startup, so the
	// later hooks see the same services.
	Runtime *Runtime
}

// Runtime is the process-wide state shared by the handlers.
type Runtime struct {
	Catalogue  *catalogue.Catalogue
	Mounts     *propertypicker.Registry
	Properties *tenantproperties.Service
	Revenue    *revenue.Service
	Logins     *ratelimit.LoginLimiter
	Audit      *auditlog.Logger
	Sweeper    *workers.MountSweeper
}
