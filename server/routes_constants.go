package server

const (
	RouteAuthTelegram  = "/auth/telegram"
	RouteAuthMe        = "/auth/me"
	RouteRegistrations = "/registrations"
	RouteFiles         = "/files/{file}"
	RouteHealth        = "/healthz"
)
