package endpoints

import (
	"net/http"

	"github.com/velumpress/cms/pkg/config"
	"github.com/velumpress/cms/pkg/content"
	"github.com/velumpress/cms/pkg/moderation"
	"github.com/velumpress/cms/pkg/permission"
	"github.com/velumpress/cms/pkg/server"
	"github.com/velumpress/cms/pkg/server/middleware"
	"github.com/velumpress/cms/pkg/server/store"
)

const (
	msgCountryRequired = "Código y nombre son requeridos"
	msgCountryExists   = "El país ya existe"
)

// RegisterCountriesEndpoints registers country listing and creation plus
// the per-country description and section header documents
func RegisterCountriesEndpoints(s *server.Server) {
	cms := s.Router.PathPrefix("/api/cms").Subrouter()
	cms.Use(s.Auth.Middleware)
	countryGuard := middleware.RequireCountry("code")

	cms.HandleFunc("/countries", handleListCountries(s.Config, s.ContentStore)).Methods("GET")
	cms.HandleFunc("/countries", handleCreateCountry(s.Config, s.ContentStore, s.Queue)).Methods("POST")

	cms.HandleFunc("/countries/{code}/description", handleGetDescription(s.Config, s.ContentStore)).Methods("GET")
	cms.Handle("/countries/{code}/description", countryGuard(handlePutDescription(s.Config, s.ContentStore, s.Queue))).Methods("PUT")

	cms.HandleFunc("/countries/{code}/section-headers/{section}", handleGetHeader(s.Config, s.ContentStore)).Methods("GET")
	cms.Handle("/countries/{code}/section-headers/{section}", countryGuard(handlePutHeader(s.Config, s.ContentStore, s.Queue))).Methods("PUT")
}

func handleListCountries(cfg *config.CMSConfig, cs store.ContentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := requestLang(cfg, w, r)
		if !ok {
			return
		}
		countries, err := cs.ListCountries(lang)
		if err != nil {
			respondWithStoreError(w, err, "Error al listar países")
			return
		}
		if countries == nil {
			countries = []content.Country{}
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"countries": countries})
	}
}

type createCountryRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

func handleCreateCountry(cfg *config.CMSConfig, cs store.ContentStore, queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCountryRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.Lang == "" {
			req.Lang = r.URL.Query().Get("lang")
		}
		lang, ok := resolveLang(cfg, w, req.Lang)
		if !ok {
			return
		}

		t := target{section: content.SectionCountries, lang: lang, code: req.Code}
		decision, ok := authorize(w, r, permission.ActionCreate, t)
		if !ok {
			return
		}

		if req.Code == "" || req.Name == "" {
			respondWithError(w, http.StatusBadRequest, msgCountryRequired)
			return
		}
		if !content.ValidID(req.Code) {
			respondWithError(w, http.StatusBadRequest, msgInvalidPath)
			return
		}
		if cs.CountryExists(lang, req.Code) {
			respondWithError(w, http.StatusBadRequest, msgCountryExists)
			return
		}

		if decision.RequiresApproval {
			// Queued countries carry no country code; the code lives in the payload
			t.code = ""
			submit(w, r, queue, permission.ActionCreate, t, map[string]any{"code": req.Code, "name": req.Name})
			return
		}

		country, err := cs.CreateCountry(lang, req.Code, req.Name)
		applied(r, permission.ActionCreate, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al crear el país")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"country": map[string]string{"code": country.Code, "name": country.Name},
		})
	}
}

func handleGetDescription(cfg *config.CMSConfig, cs store.ContentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := requestLang(cfg, w, r)
		if !ok {
			return
		}
		vars, ok := pathVars(w, r, "code")
		if !ok {
			return
		}
		doc, err := cs.GetDescription(lang, vars["code"])
		if err != nil {
			respondWithStoreError(w, err, "Error al leer la descripción")
			return
		}
		respondWithJSON(w, http.StatusOK, doc)
	}
}

func handlePutDescription(cfg *config.CMSConfig, cs store.ContentStore, queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := requestLang(cfg, w, r)
		if !ok {
			return
		}
		vars, ok := pathVars(w, r, "code")
		if !ok {
			return
		}
		t := target{section: content.SectionDescription, lang: lang, code: vars["code"]}
		decision, ok := authorize(w, r, permission.ActionEdit, t)
		if !ok {
			return
		}
		body, ok := decodeRecord(w, r)
		if !ok {
			return
		}
		doc := content.NewDescription(body)
		if !countryExists(w, cs, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, queue, permission.ActionEdit, t, doc)
			return
		}

		saved, err := cs.PutDescription(lang, t.code, doc)
		applied(r, permission.ActionEdit, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al guardar la descripción")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": saved})
	}
}

func handleGetHeader(cfg *config.CMSConfig, cs store.ContentStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := requestLang(cfg, w, r)
		if !ok {
			return
		}
		vars, ok := pathVars(w, r, "code", "section")
		if !ok {
			return
		}
		header, err := cs.GetHeader(lang, vars["code"], vars["section"])
		if err != nil {
			respondWithStoreError(w, err, "Error al leer el encabezado")
			return
		}
		respondWithJSON(w, http.StatusOK, header)
	}
}

func handlePutHeader(cfg *config.CMSConfig, cs store.ContentStore, queue *moderation.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang, ok := requestLang(cfg, w, r)
		if !ok {
			return
		}
		vars, ok := pathVars(w, r, "code", "section")
		if !ok {
			return
		}
		t := target{section: content.SectionHeaders, lang: lang, code: vars["code"], itemID: vars["section"]}
		decision, ok := authorize(w, r, permission.ActionEdit, t)
		if !ok {
			return
		}
		var header content.Header
		if !decodeJSON(w, r, &header) {
			return
		}
		if !countryExists(w, cs, t) {
			return
		}

		if decision.RequiresApproval {
			submit(w, r, queue, permission.ActionEdit, t, map[string]any{
				"title":       header.Title,
				"description": header.Description,
			})
			return
		}

		saved, err := cs.PutHeader(lang, t.code, t.itemID, header)
		applied(r, permission.ActionEdit, t, err)
		if err != nil {
			respondWithStoreError(w, err, "Error al guardar el encabezado")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": saved})
	}
}
