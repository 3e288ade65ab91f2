package service

import (
	"bytes"
	"embed"
	"fmt"
	htmlTemplate "html/template"
	textTemplate "text/template"
)

const (
	templateBookingGuest = "booking_guest"
	templateBookingHost  = "booking_host"
	templateSubscription = "subscription"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplates = htmlTemplate.Must(htmlTemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = textTemplate.Must(textTemplate.ParseFS(templateFS, "templates/*.txt"))
)

// render executes the html and plain text variants of the named template.
func render(name string, data any) (html, text string, err error) {
	var htmlBuf, textBuf bytes.Buffer

	if err = htmlTemplates.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return html, text, fmt.Errorf("failed to render %s.html: %w", name, err)
	}

	if err = textTemplates.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return html, text, fmt.Errorf("failed to render %s.txt: %w", name, err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}
