// Package httpapi serves search, ask and status over JSON HTTP.
package httpapi
