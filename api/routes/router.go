// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"skyport/docs"
	"skyport/internal/airlines"
	"skyport/internal/airplanes"
	"skyport/internal/airports"
	"skyport/internal/auth"
	"skyport/internal/crew"
	"skyport/internal/flights"
	"skyport/internal/notifications"
	"skyport/internal/orders"
	airroutes "skyport/internal/routes"
	"skyport/internal/seatledger"
	"skyport/internal/shared/config"
	"skyport/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config        *config.Config
	db            *database.DB
	notifications notifications.NotificationService
	authRepo      auth.Repository // For dependency injection
}

// NewRouter creates a new router instance. The notification service may
// be nil, in which case slices that send emails skip them.
func NewRouter(cfg *config.Config, db *database.DB, notificationService notifications.NotificationService) *Router {
	return &Router{
		config:        cfg,
		db:            db,
		notifications: notificationService,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	registerValidators()

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	docs.SwaggerInfo.BasePath = r.config.GetAPIBasePath()
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Setup auth routes (must be before order routes for dependency injection)
		r.setupAuthRoutes(api)

		// Setup fleet and schedule routes
		r.setupAirportRoutes(api)
		r.setupAirlineRoutes(api)
		r.setupCrewRoutes(api)
		r.setupAirplaneRoutes(api)
		r.setupRouteRoutes(api)
		r.setupFlightRoutes(api)

		// Setup order routes
		r.setupOrderRoutes(api)
	}
}

// registerValidators adds custom binding validators to gin's validator
// engine.
func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("iata", iataCode)
	}
}

// iataCode accepts IATA codes: two or three uppercase ASCII letters or
// digits, covering carriers (DL, U2) and airports (JFK).
func iataCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 2 && len(code) != 3 {
		return false
	}
	for _, c := range code {
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "skyport-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "skyport-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	// Initialize auth dependencies
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())

	var welcomeService auth.NotificationService
	if r.notifications != nil {
		welcomeService = notifications.NewAuthServiceAdapter(r.notifications)
	}

	authService := auth.NewService(authRepo, welcomeService, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController)

	// Setup auth routes
	authRouter.SetupRoutes(rg)

	// Store auth repository for dependency injection
	r.authRepo = authRepo
}

// setupAirportRoutes configures airport management routes
func (r *Router) setupAirportRoutes(rg *gin.RouterGroup) {
	airportRepo := airports.NewRepository(r.db.GetPostgreSQL())
	airportService := airports.NewService(airportRepo)
	airportController := airports.NewController(airportService)

	airports.SetupAirportRoutes(rg, airportController)
}

// setupAirlineRoutes configures airline management routes
func (r *Router) setupAirlineRoutes(rg *gin.RouterGroup) {
	airlineRepo := airlines.NewRepository(r.db.GetPostgreSQL())
	airlineService := airlines.NewService(airlineRepo)
	airlineController := airlines.NewController(airlineService)

	airlines.SetupAirlineRoutes(rg, airlineController)
}

// setupCrewRoutes configures crew management routes
func (r *Router) setupCrewRoutes(rg *gin.RouterGroup) {
	crewRepo := crew.NewRepository(r.db.GetPostgreSQL())
	crewService := crew.NewService(crewRepo)
	crewController := crew.NewController(crewService)

	crew.SetupCrewRoutes(rg, crewController)
}

// setupAirplaneRoutes configures airplane type and airplane routes
func (r *Router) setupAirplaneRoutes(rg *gin.RouterGroup) {
	airplaneRepo := airplanes.NewRepository(r.db.GetPostgreSQL())
	airplaneService := airplanes.NewService(airplaneRepo)
	airplaneController := airplanes.NewController(airplaneService, r.config)

	airplanes.SetupAirplaneRoutes(rg, airplaneController)
}

// setupRouteRoutes configures route management routes
func (r *Router) setupRouteRoutes(rg *gin.RouterGroup) {
	routeRepo := airroutes.NewRepository(r.db.GetPostgreSQL())
	routeService := airroutes.NewService(routeRepo)
	routeController := airroutes.NewController(routeService)

	airroutes.SetupRouteRoutes(rg, routeController)
}

// setupFlightRoutes configures flight management routes
func (r *Router) setupFlightRoutes(rg *gin.RouterGroup) {
	// The flight service consults the seat ledger for availability
	ledger := seatledger.New(seatledger.NewStore(r.db.GetPostgreSQL()))

	flightRepo := flights.NewRepository(r.db.GetPostgreSQL())
	flightService := flights.NewService(flightRepo, ledger)
	flightController := flights.NewController(flightService)

	flights.SetupFlightRoutes(rg, flightController)
}

// setupOrderRoutes configures order and ticket routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	orderRepo := orders.NewRepository(r.db.GetPostgreSQL())

	var notificationService orders.NotificationService
	if r.notifications != nil {
		notificationService = notifications.NewOrderServiceAdapter(r.notifications)
	}
	var userService orders.UserService
	if r.authRepo != nil {
		userService = auth.NewUserServiceAdapter(r.authRepo)
	}

	orderService := orders.NewService(orderRepo, notificationService, userService, r.config)
	orderController := orders.NewController(orderService)

	orders.SetupOrderRoutes(rg, orderController)
}
