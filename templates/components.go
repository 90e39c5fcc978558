// Package templates holds the dashboard's view models and the templ components
// that render them. The *_templ.go files are generated from the .templ sources
// with `templ generate`.
package templates

const defaultTitle = "Player Report"

func pageTitle(data ReportPageData) string {
	if data.Title == "" {
		return defaultTitle
	}
	return data.Title
}
