package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/access"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

// PageHandler serves the server-rendered shell pages.
type PageHandler struct {
	Templates *TemplateCache
}

type pageData struct {
	Role   models.Role
	UserID int64
	Links  []string
}

var dashboardLinks = map[models.Role][]string{
	models.RoleAdmin:  {"/api/admin/users", "/api/admin/products", "/api/admin/orders", "/api/admin/statistics"},
	models.RoleSeller: {"/api/seller/products", "/api/seller/orders", "/api/seller/product-stats"},
	models.RoleBuyer:  {"/api/products", "/api/buyer/orders"},
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "index.html", h.data(r))
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", h.data(r))
}

func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", h.data(r))
}

// Dashboard renders /{role}/dashboard. The access gate has already checked the
// role unless unverified dashboards are allowed.
func (h *PageHandler) Dashboard(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := h.data(r)
		data.Role = role
		data.Links = dashboardLinks[role]
		h.render(w, r, "dashboard.html", data)
	}
}

func (h *PageHandler) data(r *http.Request) pageData {
	var d pageData
	if id, ok := access.FromContext(r.Context()); ok {
		d.Role = id.Role
		d.UserID = id.UserID
	}
	return d
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if err := h.Templates.Render(w, http.StatusOK, name, data); err != nil {
		slog.Error("Failed to render page", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
