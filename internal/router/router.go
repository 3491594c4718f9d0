package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/handler"
	"github.com/iliyamo/azulu-crm/internal/middleware"
)

// Handlers bundles everything the routes dispatch to.
type Handlers struct {
	Events      *handler.EventHandler
	Content     *handler.ContentHandler
	Djs         *handler.DjHandler
	MailingList *handler.MailingListHandler
	Media       *handler.MediaHandler
}

// Options carries the cross-cutting pieces applied around the handlers.
type Options struct {
	AdminSecret string
	CORSOrigins []string
	Validator   echo.Validator
	Logger      *zap.Logger
	// RateLimit guards the public mailing-list routes; nil disables it.
	RateLimit echo.MiddlewareFunc
}

// New builds an Echo instance with the global middleware chain and every
// route registered.
func New(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = opts.Validator

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	// "/events/" and "/events" resolve to the same route
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			middleware.AdminHeader,
		},
	}))

	RegisterRoutes(e)
	RegisterPublic(e, h, opts.RateLimit)
	RegisterAdmin(e, h, middleware.AdminAuth(opts.AdminSecret))
	return e
}

// RegisterRoutes registers the unauthenticated service endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Root)
	e.GET("/health", handler.Health)
}

// RegisterPublic registers the read endpoints and the mailing-list signup
// flow.  Subscribe and unsubscribe go through limit when it is set.
func RegisterPublic(e *echo.Echo, h Handlers, limit echo.MiddlewareFunc) {
	e.GET("/events", h.Events.List)
	e.GET("/events/:id", h.Events.Get)

	e.GET("/content", h.Content.List)
	e.GET("/content/:key", h.Content.Get)

	e.GET("/djs", h.Djs.List)
	e.GET("/djs/:id", h.Djs.Get)

	var mw []echo.MiddlewareFunc
	if limit != nil {
		mw = append(mw, limit)
	}
	e.POST("/mailing-list/subscribe", h.MailingList.Subscribe, mw...)
	e.GET("/mailing-list/unsubscribe/:email", h.MailingList.Unsubscribe, mw...)
}

// RegisterAdmin registers every mutating route plus the mailing-list and
// media admin views.  admin runs before the handler, so a rejected request
// never reaches storage.
func RegisterAdmin(e *echo.Echo, h Handlers, admin echo.MiddlewareFunc) {
	e.POST("/events", h.Events.Create, admin)
	e.PUT("/events/:id", h.Events.Update, admin)
	e.DELETE("/events/:id", h.Events.Delete, admin)

	e.POST("/content", h.Content.Create, admin)
	e.PUT("/content/:key", h.Content.Update, admin)
	e.DELETE("/content/:key", h.Content.Delete, admin)

	e.POST("/djs", h.Djs.Create, admin)
	e.PUT("/djs/:id", h.Djs.Update, admin)
	e.DELETE("/djs/:id", h.Djs.Delete, admin)

	e.GET("/mailing-list", h.MailingList.List, admin)
	e.GET("/mailing-list/:id", h.MailingList.Get, admin)
	e.DELETE("/mailing-list/:id", h.MailingList.Delete, admin)

	e.GET("/cloudinary/signature", h.Media.Signature, admin)
	e.POST("/upload/image", h.Media.Upload, admin)
}
