package handlers

// HandlerBundle groups the handlers the router needs.
type HandlerBundle struct {
	Chat       *ChatHandler
	Restaurant *RestaurantHandler
	Booking    *BookingHandler
}
