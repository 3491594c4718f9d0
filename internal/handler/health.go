package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Root answers GET / with a greeting so a bare request to the API host shows
// something useful.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the Azulu CRM API"})
}

// Health is a simple health-check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It does not
// touch the database.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"}) // 200 with a fixed body
}
