// Package server assembles repositories, services and handlers into the
// HTTP application.
package server

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/auth"
	"github.com/ZakariaBatty/fleetdesk/httpx"
	"github.com/ZakariaBatty/fleetdesk/internal/handlers"
	"github.com/ZakariaBatty/fleetdesk/internal/models"
	"github.com/ZakariaBatty/fleetdesk/internal/repo"
	"github.com/ZakariaBatty/fleetdesk/internal/services"
)

// App is the main application handler that wires all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
}

// NewApp builds the full dependency graph and registers every route.
func NewApp(db *gorm.DB) *App {
	app := &App{mux: http.NewServeMux(), db: db}

	users := repo.NewUserRepo(db)
	drivers := repo.NewDriverRepo(db)
	vehicles := repo.NewVehicleRepo(db)
	locations := repo.NewLocationRepo(db)
	trips := repo.NewTripRepo(db)
	records := repo.NewMaintenanceRepo(db)

	identity := handlers.NewIdentity(users)

	// Sessions carry only the user id; reject ones whose user has been
	// deleted or deactivated since the cookie was issued.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		db.Model(&models.User{}).
			Where("id = ? AND status = ?", uid, models.UserActive).
			Count(&count)
		return count > 0
	})

	ah := handlers.NewAuthHandler(services.NewAuthService(users), identity)
	th := handlers.NewTripHandler(services.NewTripService(trips, drivers, vehicles, locations), identity)
	dh := handlers.NewDriverHandler(services.NewDriverService(drivers, users), identity)
	vh := handlers.NewVehicleHandler(services.NewVehicleService(vehicles, drivers), identity)
	lh := handlers.NewLocationHandler(services.NewLocationService(locations), identity)
	mh := handlers.NewMaintenanceHandler(services.NewMaintenanceService(records, vehicles), identity)
	uh := handlers.NewUserHandler(services.NewUserService(users), identity)

	app.setupRoutes(ah, th, dh, vh, lh, mh, uh)
	return app
}

// ServeHTTP implements http.Handler. The auth middleware attaches the
// session user id to the context for every request.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	auth.Middleware(a.mux).ServeHTTP(w, r)
}

func (a *App) setupRoutes(
	ah *handlers.AuthHandler,
	th *handlers.TripHandler,
	dh *handlers.DriverHandler,
	vh *handlers.VehicleHandler,
	lh *handlers.LocationHandler,
	mh *handlers.MaintenanceHandler,
	uh *handlers.UserHandler,
) {
	// Public routes
	a.mux.HandleFunc("GET /healthz", a.health)
	a.mux.HandleFunc("POST /api/auth/register", ah.Register)
	a.mux.HandleFunc("POST /api/auth/login", ah.Login)
	a.mux.HandleFunc("POST /api/auth/logout", ah.Logout)

	// Authenticated routes. Role and ownership checks live in the
	// services; RequireAuth only guarantees a live session.
	a.handle("GET /api/auth/me", ah.Me)
	a.handle("POST /api/auth/change-password", ah.ChangePassword)
	a.handle("POST /api/auth/reset-password", ah.ResetPassword)

	a.handle("GET /api/trips", th.List)
	a.handle("POST /api/trips", th.Create)
	a.handle("GET /api/trips/stats", th.Stats)
	a.handle("GET /api/trips/passengers", th.TotalPassengers)
	a.handle("GET /api/trips/reference-data", th.ReferenceData)
	a.handle("GET /api/trips/upcoming", th.Upcoming)
	a.handle("GET /api/trips/{id}", th.Get)
	a.handle("PUT /api/trips/{id}", th.Update)
	a.handle("DELETE /api/trips/{id}", th.Delete)

	a.handle("GET /api/drivers", dh.List)
	a.handle("POST /api/drivers", dh.Create)
	a.handle("GET /api/drivers/expiring-licenses", dh.ExpiringLicenses)
	a.handle("GET /api/drivers/top-rated", dh.TopRated)
	a.handle("GET /api/drivers/{id}", dh.Get)
	a.handle("PUT /api/drivers/{id}", dh.Update)
	a.handle("DELETE /api/drivers/{id}", dh.Delete)

	a.handle("GET /api/vehicles", vh.List)
	a.handle("POST /api/vehicles", vh.Create)
	a.handle("GET /api/vehicles/{id}", vh.Get)
	a.handle("PUT /api/vehicles/{id}", vh.Update)
	a.handle("DELETE /api/vehicles/{id}", vh.Delete)
	a.handle("POST /api/vehicles/{id}/assign", vh.Assign)
	a.handle("POST /api/vehicles/{id}/unassign", vh.Unassign)
	a.handle("GET /api/vehicles/{id}/assignments", vh.Assignments)

	a.handle("GET /api/agencies", lh.ListAgencies)
	a.handle("POST /api/agencies", lh.CreateAgency)
	a.handle("GET /api/agencies/{id}", lh.GetAgency)
	a.handle("PUT /api/agencies/{id}", lh.UpdateAgency)
	a.handle("DELETE /api/agencies/{id}", lh.DeleteAgency)

	a.handle("GET /api/hotels", lh.ListHotels)
	a.handle("POST /api/hotels", lh.CreateHotel)
	a.handle("GET /api/hotels/{id}", lh.GetHotel)
	a.handle("PUT /api/hotels/{id}", lh.UpdateHotel)
	a.handle("DELETE /api/hotels/{id}", lh.DeleteHotel)

	a.handle("GET /api/maintenance", mh.List)
	a.handle("POST /api/maintenance", mh.Create)
	a.handle("GET /api/maintenance/{id}", mh.Get)
	a.handle("PUT /api/maintenance/{id}", mh.Update)
	a.handle("DELETE /api/maintenance/{id}", mh.Delete)

	a.handle("GET /api/users", uh.List)
	a.handle("POST /api/users", uh.Create)
	a.handle("GET /api/users/assignable-roles", uh.AssignableRoles)
	a.handle("GET /api/users/{id}", uh.Get)
	a.handle("PUT /api/users/{id}", uh.Update)
	a.handle("DELETE /api/users/{id}", uh.Delete)
}

func (a *App) handle(pattern string, h http.HandlerFunc) {
	a.mux.Handle(pattern, auth.RequireAuth(h))
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, map[string]string{"status": "ok"})
}
