package upstream

import (
	"net/url"
	"strings"
)

// Upstream resource paths, relative to the client's base URL.
const (
	JobEndpoint        = "/job.json"
	JobContactEndpoint = "/jobcontact.json"
)

// Quote renders s as an OData string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Eq builds an OData equality expression against a string literal.
func Eq(field, value string) string {
	return field + " eq " + Quote(value)
}

// WithFilter appends a $filter query parameter to path.
func WithFilter(path, filter string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "$filter=" + escapeQuery(filter)
}

// ActiveJobs is the endpoint listing every active job.
func ActiveJobs() string {
	return WithFilter(JobEndpoint, "active eq 1")
}

// JobByUUID is the endpoint selecting a single job by its uuid.
func JobByUUID(id string) string {
	return WithFilter(JobEndpoint, Eq("uuid", id))
}

// ContactsByEmail is the endpoint listing job contacts for an email address.
func ContactsByEmail(email string) string {
	return WithFilter(JobContactEndpoint, Eq("email", email))
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
