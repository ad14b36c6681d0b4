// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/revenuedash/internal/app/resources"
	"github.com/dalemusser/revenuedash/internal/app/store/audit"
	propertystore "github.com/dalemusser/revenuedash/internal/app/store/properties"
	reservationstore "github.com/dalemusser/revenuedash/internal/app/store/reservations"
	userstore "github.com/dalemusser/revenuedash/internal/app/store/users"
	"github.com/dalemusser/revenuedash/internal/app/system/auditlog"
	"github.com/dalemusser/revenuedash/internal/app/system/catalogue"
	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/ratelimit"
	"github.com/dalemusser/revenuedash/internal/app/system/revenue"
	"github.com/dalemusser/revenuedash/internal/app/system/tenantproperties"
	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"github.com/dalemusser/revenuedash/internal/app/system/workers"
	"github.com/dalemusser/revenuedash/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It loads
// shared templates and the catalogue, builds the services, seeds demo data
// when asked, and starts the mount sweeper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Runtime == nil {
		return errors.New("startup: runtime not allocated")
	}
	resources.LoadSharedTemplates()

	cat, err := catalogue.Load(appCfg.CataloguePath)
	if err != nil {
		logger.Error("catalogue load failed", zap.String("path", appCfg.CataloguePath), zap.Error(err))
		return err
	}

	rt := deps.Runtime
	rt.Catalogue = cat
	rt.Mounts = propertypicker.NewRegistry(logger)
	rt.Properties = tenantproperties.New(propertystore.New(deps.MongoDatabase), cat, logger)
	rt.Revenue = revenue.New(reservationstore.New(deps.MongoDatabase), cat, logger)

	if appCfg.SeedDemo {
		if err := seedDemoProperties(ctx, deps, cat, logger); err != nil {
			return err
		}
	}
	if appCfg.DemoPassword != "" {
		if err := ensureDemoUsers(ctx, deps, cat, appCfg.DemoPassword, logger); err != nil {
			return err
		}
	}

	rt.Logins = ratelimit.NewLoginLimiter()
	rt.Audit = auditlog.New(audit.New(deps.MongoDatabase), logger, appCfg.AuditLogAuth)

	rt.Sweeper = workers.NewMountSweeper(rt.Mounts, logger, appCfg.MountSweepInterval, appCfg.MountMaxAge)
	rt.Sweeper.AlsoPrune("login_limiter", rt.Logins.Prune)
	rt.Sweeper.Start()

	logger.Info("revenue dashboard ready",
		zap.String("property_source", appCfg.PropertySource),
		zap.Int("catalogue_properties", len(cat.StaticProperties())))
	return nil
}

// seedDemoProperties upserts every catalogue tenant list into the property
// store. Existing names are overwritten; creation times are kept.
func seedDemoProperties(ctx context.Context, deps DBDeps, cat *catalogue.Catalogue, logger *zap.Logger) error {
	store := propertystore.New(deps.MongoDatabase)

	n := 0
	for tenantID := range cat.Tenants {
		for _, p := range cat.TenantProperties(tenantID) {
			opCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
			err := store.Upsert(opCtx, tenantID, p.PropertyID, p.Name)
			cancel()
			if err != nil {
				logger.Error("seed property failed",
					zap.String("tenant_id", tenantID),
					zap.String("property_id", p.PropertyID),
					zap.Error(err))
				return fmt.Errorf("seed %s/%s: %w", tenantID, p.PropertyID, err)
			}
			n++
		}
	}
	logger.Info("seeded demo properties", zap.Int("count", n))
	return nil
}

// ensureDemoUsers creates ops@<tenant>.test for every catalogue tenant that
// does not have one yet.
func ensureDemoUsers(ctx context.Context, deps DBDeps, cat *catalogue.Catalogue, password string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	for tenantID := range cat.Tenants {
		loginID := "ops@" + tenantID + ".test"
		opCtx, cancel := context.WithTimeout(ctx, timeouts.Short())
		_, err := users.Create(opCtx, models.User{
			TenantID: tenantID,
			LoginID:  loginID,
			FullName: "Operations (" + tenantID + ")",
		}, password)
		cancel()

		switch {
		case errors.Is(err, userstore.ErrDuplicateLoginID):
			logger.Debug("demo user exists", zap.String("login_id", loginID))
		case err != nil:
			logger.Error("create demo user failed", zap.String("login_id", loginID), zap.Error(err))
			return fmt.Errorf("demo user %s: %w", loginID, err)
		default:
			logger.Info("created demo user", zap.String("login_id", loginID), zap.String("tenant_id", tenantID))
		}
	}
	return nil
}
