package services

// ServiceContainer holds the application services.
type ServiceContainer struct {
	AuthService     AuthService
	AdminService    AdminService
	CarService      CarService
	FavoriteService FavoriteService
	BookingService  BookingService
}
