// @title           cars2customer API
// @version         1.0
// @description     Car marketplace backend: catalog, favorites, bookings and admin management.
// @contact.name    cars2customer
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3001
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

package main

import (
	_ "cars2customer_backend/docs"
	"cars2customer_backend/internal/app"
)

func main() {
	app.Run()
}
