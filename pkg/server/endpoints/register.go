package endpoints

import (
	"github.com/velumpress/cms/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterPendingEndpoints(srv)
	RegisterCountriesEndpoints(srv)
	RegisterSectionEndpoints(srv)
	RegisterChildEndpoints(srv)

	// Static files
	RegisterStaticFiles(srv)
}
