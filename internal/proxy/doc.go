// Package proxy implements the local development reverse proxy. Every
// request is forwarded to the backend with its path and query untouched,
// and CORS headers are added so browser clients on other origins can
// reach the API.
package proxy
