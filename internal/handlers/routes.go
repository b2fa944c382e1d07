package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the listing API on router.
func RegisterRoutes(router gin.IRouter, health *HealthHandler, listings *ListingHandler, admin *AdminHandler) {
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", health.Info)

		public := v1.Group("/listings")
		{
			public.GET("/:type", listings.Browse)
			public.GET("/:type/facets", listings.Facets)
			public.GET("/:type/:id", listings.Get)
		}

		manage := v1.Group("/admin/listings")
		{
			manage.POST("/:type", admin.Create)
			manage.PATCH("/:type/:id", admin.Edit)
			manage.DELETE("/:type/:id", admin.Delete)
		}
	}
}
