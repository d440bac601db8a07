package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	// DeviceCookie holds the signed device token.
	DeviceCookie = "device_token"

	claimsContextKey = "device_claims"
	deviceContextKey = "device_id"
)

// DeviceMiddleware returns the middleware chain that attaches a device id to
// every request, minting a fresh cookie when none or an invalid one is sent.
func DeviceMiddleware(tokens *DeviceTokenService) []echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + DeviceCookie,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Validate(auth)
		},
		// A missing or bad cookie is not an error; ensure issues a new one.
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})

	ensure := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := c.Get(claimsContextKey).(*DeviceClaims); ok {
				c.Set(deviceContextKey, claims.DeviceID)
				return next(c)
			}

			deviceID, token, err := tokens.Issue()
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "issue device token")
			}
			c.SetCookie(&http.Cookie{
				Name:     DeviceCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   int(tokens.Expiry().Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(deviceContextKey, deviceID)
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{parse, ensure}
}

// DeviceID returns the device id attached by DeviceMiddleware.
func DeviceID(c echo.Context) string {
	id, _ := c.Get(deviceContextKey).(string)
	return id
}
