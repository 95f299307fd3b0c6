package routes

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/aleyva-c/SkillSwapBack/internal/config"
)

// Development-only endpoint catalog. Rendered once at startup and
// served as static bytes; never enabled outside APP_ENV=development.

type docsEndpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	Auth        string `json:"auth"`
}

var docsEndpoints = []docsEndpoint{
	{"POST", "/api/auth/register", "Create an account", "none"},
	{"POST", "/api/auth/login", "Log in, returns a bearer token", "none"},
	{"GET", "/api/auth/me", "Current account", "bearer"},
	{"PUT", "/api/auth/me", "Update display name and bio", "bearer"},
	{"GET", "/api/user/ratings/:id", "Rating summary for a user", "none"},
	{"POST", "/api/sessions/request", "Request a tutoring session", "bearer"},
	{"POST", "/api/sessions/confirm", "Provider confirms a requested session", "bearer"},
	{"POST", "/api/sessions/deny", "Deny or cancel a session", "bearer"},
	{"POST", "/api/sessions/complete", "Mark a confirmed session completed", "bearer"},
	{"POST", "/api/sessions/rate", "Rate a completed session", "bearer"},
	{"GET", "/api/sessions", "List my sessions", "bearer"},
	{"GET", "/api/sessions/:id", "Session detail", "bearer"},
	{"GET", "/api/skills", "Skill catalog", "bearer"},
	{"GET", "/api/users/skills", "My offered and sought skills", "bearer"},
	{"PUT", "/api/users/skills", "Replace my skill lists", "bearer"},
	{"GET", "/api/tutors/search", "Search providers by skill name", "bearer"},
	{"GET", "/api/tutors/matches", "Providers offering what I seek", "bearer"},
	{"GET", "/api/tutors/top", "Most-liked tutors", "bearer"},
	{"GET", "/api/conversations", "My conversations", "bearer"},
	{"POST", "/api/conversations", "Open a conversation", "bearer"},
	{"GET", "/api/conversations/:id/messages", "Messages in a conversation", "bearer"},
	{"GET", "/api/ws", "Live chat websocket (token query param)", "token"},
	{"POST", "/api/reports", "Report a user", "bearer"},
	{"GET", "/api/admin/reports", "List reports for review", "admin"},
	{"PUT", "/api/admin/reports/:id", "Resolve or dismiss a report", "admin"},
}

const docsIndexHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    body { margin: 0 auto; max-width: 960px; padding: 32px 16px; font-family: Georgia, serif; color: #132019; }
    h1 { margin-bottom: 4px; }
    p.sub { color: #536258; margin-top: 0; }
    table { border-collapse: collapse; width: 100%; }
    th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #d8ddd6; }
    code { font-family: ui-monospace, monospace; font-size: 0.9em; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <p class="sub">Development endpoint catalog. Also available as JSON at <code>/docs/endpoints</code>.</p>
  <table>
    <tr><th>Method</th><th>Path</th><th>Auth</th><th>Description</th></tr>
    {{ range .Endpoints }}
    <tr><td><code>{{ .Method }}</code></td><td><code>{{ .Path }}</code></td><td>{{ .Auth }}</td><td>{{ .Description }}</td></tr>
    {{ end }}
  </table>
</body>
</html>`

func registerDocsRoutes(app *fiber.App, cfg *config.Config) error {
	if !cfg.DocsEnabled() {
		return nil
	}

	tmpl, err := template.New("docs").Parse(docsIndexHTML)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := tmpl.Execute(&page, fiber.Map{
		"Title":     "SkillSwap API",
		"Endpoints": docsEndpoints,
	}); err != nil {
		return err
	}
	rendered := page.Bytes()

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
		c.Set("Content-Type", fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(rendered)
	})

	app.Get("/docs/endpoints", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"endpoints": docsEndpoints})
	})

	return nil
}
