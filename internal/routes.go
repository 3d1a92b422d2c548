package internal

import (
	"net/http"

	"brickdeals/internal/controllers"
	"brickdeals/internal/providers"
)

func InitRoutes(pushController *controllers.PushController, adminController *controllers.AdminController, dealController *controllers.DealController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/registerPushToken", http.HandlerFunc(pushController.RegisterPushToken))
	routers.Post("/updateNotificationPreferences", http.HandlerFunc(pushController.UpdateNotificationPreferences))
	routers.Post("/unregisterPushToken", http.HandlerFunc(pushController.UnregisterPushToken))
	routers.Post("/sendTestNotification", http.HandlerFunc(pushController.SendTestNotification))
	routers.Post("/manualCatalogUpdate", http.HandlerFunc(adminController.ManualCatalogUpdate))
	routers.Post("/manualPriceUpdate", http.HandlerFunc(adminController.ManualPriceUpdate))
	routers.Get("/deals", http.HandlerFunc(dealController.GetDeals))
	return routers
}
