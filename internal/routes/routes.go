package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/web"
)

// Deps son las dependencias de las rutas
type Deps struct {
	Catalog        *catalog.Catalog
	Auth           *auth.Service
	Sessions       *auth.Sessions
	RequestTimeout time.Duration
}

// NewRouter construye el motor de gin con middlewares, plantillas y rutas
func NewRouter(deps Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Timeout(deps.RequestTimeout),
	)
	RegisterRoutes(router, deps)
	return router, nil
}

func RegisterRoutes(router *gin.Engine, deps Deps) {
	gate := auth.NewGate(deps.Auth, deps.Sessions)
	admin := gate.RequireAPI(auth.ResourceCatalogWrite)

	categories := handlers.NewCategoryHandler(deps.Catalog)
	products := handlers.NewProductHandler(deps.Catalog)
	programs := handlers.NewProgramHandler(deps.Catalog)
	services := handlers.NewServiceHandler(deps.Catalog)
	inquiries := handlers.NewInquiryHandler(deps.Catalog)
	dashboard := handlers.NewDashboardHandler(deps.Catalog)
	authH := handlers.NewAuthHandler(deps.Auth, deps.Sessions)

	router.Use(gate.Identify())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/categories", categories.ListCategories)
		api.POST("/categories", admin, categories.CreateCategories)
		api.GET("/categories/:id", categories.GetCategory)
		api.PUT("/categories/:id", admin, categories.UpdateCategory)
		api.DELETE("/categories/:id", admin, categories.DeleteCategory)

		api.GET("/products", products.ListProducts)
		api.POST("/products", admin, products.CreateProducts)
		api.GET("/products/:id", products.GetProduct)
		api.PUT("/products/:id", admin, products.UpdateProduct)
		api.DELETE("/products/:id", admin, products.DeleteProduct)

		api.GET("/programs", programs.ListPrograms)
		api.POST("/programs", admin, programs.CreatePrograms)
		api.GET("/programs/:id", programs.GetProgram)
		api.PUT("/programs/:id", admin, programs.UpdateProgram)
		api.DELETE("/programs/:id", admin, programs.DeleteProgram)

		api.GET("/services", services.ListServices)
		api.POST("/services", admin, services.CreateServices)
		api.GET("/services/:id", services.GetService)
		api.PUT("/services/:id", admin, services.UpdateService)
		api.DELETE("/services/:id", admin, services.DeleteService)

		api.POST("/inquiries", gate.RequireAPI(auth.ResourceInquiryCreate), inquiries.CreateInquiry)
		api.GET("/inquiries", gate.RequireAPI(auth.ResourceInquiryRead), inquiries.ListInquiries)

		api.GET("/dashboard/stats", gate.RequireAPI(auth.ResourceDashboard), dashboard.Stats)

		api.POST("/auth/signup", authH.Signup)
		api.POST("/auth/login", authH.Login)
		api.GET("/auth/me", gate.RequireAPI(auth.ResourceProfile), authH.Me)
	}

	router.GET("/auth/signin", authH.SignInPage)
	router.POST("/auth/signin", authH.SignIn)
	router.POST("/auth/signout", authH.SignOut)

	pages := router.Group("/dashboard", gate.RequirePage(auth.ResourceDashboard))
	{
		pages.GET("", dashboard.Overview)
	}
}
