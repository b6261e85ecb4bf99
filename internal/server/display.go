package server

import (
	"html/template"
	"log/slog"
	"net/http"

	"bankist/internal/service"
)

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="{{if .Locale}}{{.Locale}}{{else}}en{{end}}">
<head>
  <meta charset="UTF-8" />
  <title>Bankist</title>
</head>
<body>
  <p class="welcome">{{.Welcome}}</p>
  {{- if .LoggedIn}}
  <main class="app">
    <div class="balance">
      <p class="date">{{.AsOf}}</p>
      <p class="balance__value">{{.Balance}}</p>
    </div>
    <div class="movements">
      {{- range .Rows}}
      <div class="movements__row">
        <div class="movements__type movements__type--{{.Type}}">{{.Position}} {{.Type}}</div>
        <div class="movements__date">{{.Date}}</div>
        <div class="movements__value">{{.Amount}}</div>
      </div>
      {{- end}}
    </div>
    <div class="summary">
      <p class="summary__value summary__value--in">{{.Income}}</p>
      <p class="summary__value summary__value--out">{{.Expense}}</p>
      <p class="summary__value summary__value--interest">{{.Interest}}</p>
    </div>
    <p class="logout-timer">You will be logged out in <span class="timer">{{.Timer}}</span></p>
  </main>
  {{- end}}
</body>
</html>
`))

// display renders the current dashboard as HTML for the browser.
type display struct {
	controller *service.Controller
	logger     *slog.Logger
}

func newDisplay(controller *service.Controller, logger *slog.Logger) *display {
	return &display{controller: controller, logger: logger}
}

func (d *display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dashboard, err := d.controller.Dashboard(nil)
	if err != nil {
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, dashboard); err != nil {
		d.logger.Error("Failed to render dashboard", "error", err)
	}
}
