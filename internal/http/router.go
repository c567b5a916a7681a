package http

import (
	"github.com/ftmlabs/directory-api/internal/auth"
	"github.com/ftmlabs/directory-api/internal/cache"
	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/role"
	"github.com/ftmlabs/directory-api/internal/http/handlers"
	"github.com/ftmlabs/directory-api/internal/http/middlewares"
	"github.com/ftmlabs/directory-api/internal/media"
	"github.com/ftmlabs/directory-api/internal/observability"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	maxBodySize   = 1 << 20  // JSON bodies
	maxUploadSize = 10 << 20 // multipart image uploads
)

func NewRouter(
	cfg config.Config,
	pool *pgxpool.Pool,
	denylist *auth.Denylist,
	jwtManager *auth.Manager,
	mediaStore *media.Store,
	prom *observability.Prom,
) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers.SetEnv(cfg.Env)

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("directory-api"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Route not found")
	})

	// health + ops surface
	healthHandler := handlers.NewHealthHandler(pool, denylist)
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// docs
	r.GET("/swagger", handlers.SwaggerUI)
	r.StaticFile("/docs/openapi.yaml", "./docs/openapi.yaml")

	// uploaded images
	if mediaStore != nil {
		r.Static("/media", mediaStore.Dir())
	}

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	rolesRepo := postgres.NewRolesRepo(pool, prom)
	companiesRepo := postgres.NewCompaniesRepo(pool, prom)
	productsRepo := postgres.NewProductsRepo(pool, prom)
	notificationsRepo := postgres.NewNotificationsRepo(pool, prom)
	familiesRepo := postgres.NewFamiliesRepo(pool, prom)
	propertiesRepo := postgres.NewPropertiesRepo(pool, prom)
	picturesRepo := postgres.NewPicturesRepo(pool, prom)
	reservationsRepo := postgres.NewReservationsRepo(pool, prom)

	// wire up handlers
	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, denylist, prom)
	usersHandler := handlers.NewUsersHandler(usersRepo)
	rolesHandler := handlers.NewRolesHandler(rolesRepo, cache.New(cfg.CacheTTL))
	companiesHandler := handlers.NewCompaniesHandler(companiesRepo)
	productsHandler := handlers.NewProductsHandler(productsRepo)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsRepo)
	familiesHandler := handlers.NewFamiliesHandler(familiesRepo)
	propertiesHandler := handlers.NewPropertiesHandler(propertiesRepo)
	picturesHandler := handlers.NewPicturesHandler(picturesRepo, mediaStore)
	reservationsHandler := handlers.NewReservationsHandler(reservationsRepo)

	authmw := middlewares.NewAuthMiddleware(jwtManager, denylist)

	// role gates, narrowest last
	anyRole := authmw.RequireRole(role.Superadmin, role.Admin, role.User, role.Prospect)
	members := authmw.RequireRole(role.Superadmin, role.Admin, role.User)
	admins := authmw.RequireRole(role.Superadmin, role.Admin)
	superOnly := authmw.RequireRole(role.Superadmin)

	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	// the upload takes multipart bodies and a bigger size cap, so it sits
	// outside the JSON group
	r.POST("/api/v0/pictures/upload", middlewares.MaxBodyBytes(maxUploadSize), picturesHandler.Upload)

	r.GET("/api/v0", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"message": "Welcome to the directory API"})
	})

	api := r.Group("/api/v0")
	api.Use(middlewares.RequireJSON())
	api.Use(middlewares.MaxBodyBytes(maxBodySize))

	// public surface: login, signup and the family directory intake
	api.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	api.POST("/users", usersHandler.SignUp)
	api.POST("/families", familiesHandler.CreateFamily)

	authed := api.Group("", authmw.RequireAuth())

	authed.POST("/auth/logout", anyRole, authHandler.Logout)

	// users
	authed.GET("/users", anyRole, usersHandler.ListUsers)
	authed.GET("/users/:id", admins, usersHandler.GetUserByID)
	authed.PUT("/users/:id", admins, usersHandler.UpdateUser)
	authed.DELETE("/users/:id", admins, usersHandler.DeleteUser)

	// roles
	authed.GET("/roles", members, rolesHandler.ListRoles)
	authed.GET("/roles/:id", members, rolesHandler.GetRoleByID)
	authed.POST("/roles", superOnly, rolesHandler.CreateRole)
	authed.PUT("/roles/:id", superOnly, rolesHandler.UpdateRole)
	authed.DELETE("/roles/:id", superOnly, rolesHandler.DeleteRole)

	// companies
	authed.GET("/companies", members, companiesHandler.ListCompanies)
	authed.GET("/companies/:id", members, companiesHandler.GetCompanyByID)
	authed.POST("/companies", admins, companiesHandler.CreateCompany)
	authed.PUT("/companies/:id", admins, companiesHandler.UpdateCompany)
	authed.DELETE("/companies/:id", admins, companiesHandler.DeleteCompany)

	// products
	authed.GET("/products", members, productsHandler.ListProducts)
	authed.GET("/products/:id", members, productsHandler.GetProductByID)
	authed.POST("/products", superOnly, productsHandler.CreateProduct)
	authed.PUT("/products/:id", superOnly, productsHandler.UpdateProduct)
	authed.DELETE("/products/:id", superOnly, productsHandler.DeleteProduct)

	// notifications
	authed.GET("/notifications", members, notificationsHandler.ListNotifications)
	authed.GET("/notifications/:id", members, notificationsHandler.GetNotificationByID)
	authed.POST("/notifications", admins, notificationsHandler.CreateNotification)
	authed.PUT("/notifications/:id", admins, notificationsHandler.UpdateNotification)
	authed.DELETE("/notifications/:id", admins, notificationsHandler.DeleteNotification)

	// families (creation is public, see above)
	authed.GET("/families", anyRole, familiesHandler.ListFamilies)
	authed.GET("/families/:id", anyRole, familiesHandler.GetFamilyByID)
	authed.PUT("/families/:id", admins, familiesHandler.UpdateFamily)
	authed.DELETE("/families/:id", admins, familiesHandler.DeleteFamily)

	// properties
	authed.GET("/properties", anyRole, propertiesHandler.ListProperties)
	authed.GET("/properties/:id", anyRole, propertiesHandler.GetPropertyByID)
	authed.POST("/properties", admins, propertiesHandler.CreateProperty)
	authed.PUT("/properties/:id", admins, propertiesHandler.UpdateProperty)
	authed.DELETE("/properties/:id", admins, propertiesHandler.DeleteProperty)

	// pictures (upload is public, see above)
	authed.GET("/pictures", anyRole, picturesHandler.ListPictures)
	authed.GET("/pictures/:id", anyRole, picturesHandler.GetPictureByID)
	authed.POST("/pictures", admins, picturesHandler.CreatePicture)
	authed.PUT("/pictures/:id", admins, picturesHandler.UpdatePicture)
	authed.DELETE("/pictures/:id", admins, picturesHandler.DeletePicture)

	// reservations
	authed.GET("/reservations", anyRole, reservationsHandler.ListReservations)
	authed.GET("/reservations/:id", anyRole, reservationsHandler.GetReservationByID)
	authed.POST("/reservations", anyRole, reservationsHandler.CreateReservation)
	authed.PUT("/reservations/:id", admins, reservationsHandler.UpdateReservation)
	authed.DELETE("/reservations/:id", admins, reservationsHandler.DeleteReservation)

	return r
}
