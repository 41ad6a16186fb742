package api

import (
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// Route names registered under the admin group. The backend surface is
// fixed; hosts only supply the base URL.
const (
	routeLogin      = "login"
	routeVerify     = "verify"
	routeContent    = "content"
	routeItem       = "item"
	routeVisibility = "visibility"
	routeReorder    = "reorder"
	routeBulk       = "bulk"
	routeAnalytics  = "analytics"
	routeAudit      = "audit"
	routeUsers      = "users"
)

const adminGroup = "admin"

// newRouteManager builds the urlkit route table for the admin REST surface.
func newRouteManager(baseURL string) *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    adminGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					routeLogin:      "/api/admin/auth/login",
					routeVerify:     "/api/admin/auth/verify",
					routeContent:    "/api/admin/content/:type",
					routeItem:       "/api/admin/content/:id",
					routeVisibility: "/api/admin/content/:id/visibility",
					routeReorder:    "/api/admin/content/:type/reorder",
					routeBulk:       "/api/admin/content/bulk",
					routeAnalytics:  "/api/admin/analytics",
					routeAudit:      "/api/admin/audit",
					routeUsers:      "/api/admin/users",
				},
			},
		},
	})
}

type routes struct {
	manager *urlkit.RouteManager
}

func newRoutes(baseURL string) routes {
	return routes{manager: newRouteManager(baseURL)}
}

func (r routes) build(route string, params map[string]any) (string, error) {
	builder := r.manager.Group(adminGroup).Builder(route)
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}
