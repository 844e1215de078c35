package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CRUDHandler serves the five standard routes of a resource
type CRUDHandler interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type routeDefinition struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

// DomainGroup collects the routes of one resource under a prefix
type DomainGroup struct {
	prefix string
	routes []routeDefinition
}

// NewDomainGroup creates a group mounted at prefix
func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

// CRUD registers POST and GET on the collection and GET, PUT and DELETE on /:id
func (dg *DomainGroup) CRUD(h CRUDHandler) *DomainGroup {
	return dg.
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		PUT("/:id", h.Update).
		DELETE("/:id", h.Delete)
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, h gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, h)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, h gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, h)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, h gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, h)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, h gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, path, h)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, h gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, h)
}

func (dg *DomainGroup) handle(method, path string, h gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handler: h})
	return dg
}

// RegisterRoutes mounts the group on rg
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, r := range dg.routes {
		group.Handle(r.method, r.path, r.handler)
	}
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
