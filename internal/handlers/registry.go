package handlers

// AppHandlers holds the HTTP handlers.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	AdminHandler    *AdminHandler
	CarHandler      *CarHandler
	FavoriteHandler *FavoriteHandler
	BookingHandler  *BookingHandler
	FileHandler     *FileHandler
	HealthHandler   *HealthHandler
}
