package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>PartnerTrack</title>
<style>
body { font-family: 'Segoe UI', Arial, sans-serif; margin: 0; background: linear-gradient(135deg,#0f2027,#2c5364); color: #fff; min-height: 100vh; display: flex; flex-direction: column; }
header { flex: 1; padding: 60px 20px; text-align: center; }
h1 { font-size: 42px; margin-bottom: 8px; }
.tagline { font-size: 18px; opacity: 0.85; margin-bottom: 32px; }
.links a { display: inline-block; margin: 8px; padding: 12px 24px; font-size: 16px; border-radius: 4px; background: rgba(255,255,255,0.15); color: #fff; text-decoration: none; transition: background 0.3s; }
.links a:hover { background: rgba(255,255,255,0.35); }
footer { text-align: center; padding: 20px; font-size: 14px; opacity: 0.7; }
</style>
</head>
<body>
<header>
  <h1>PartnerTrack</h1>
  <p class="tagline">Track your referral partners, intros, and commissions in one place.</p>
  <div class="links">
    <a href="/swagger/index.html">API Reference</a>
    <a href="/health">Service Health</a>
  </div>
</header>
<footer>PartnerTrack CRM API</footer>
</body>
</html>`

// RegisterPages serves the landing page. When a frontend URL is configured,
// /app redirects browsers there.
func RegisterPages(e *echo.Echo, frontendURL string) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})

	e.GET("/app", func(c echo.Context) error {
		if frontendURL != "" {
			return c.Redirect(http.StatusTemporaryRedirect, frontendURL)
		}
		return c.HTML(http.StatusOK, "<h1>PartnerTrack</h1><p>No frontend is configured for this deployment.</p>")
	})
}
