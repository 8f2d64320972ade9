// Package server is the HTTP transport boundary: routing, payload schemas
// and the mapping from typed outcomes to status codes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tarefas/internal/auth"
	"tarefas/internal/result"
	"tarefas/internal/service"
	"tarefas/internal/store"
	"tarefas/internal/task"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type Server struct {
	svc  *service.Service
	gate *auth.Gate
}

func New(svc *service.Service, gate *auth.Gate) *Server {
	return &Server{svc: svc, gate: gate}
}

// Handler builds the route tree. Only the liveness probe escapes the gate.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Logger)

	r.Get("/", s.handleRoot)

	r.Group(func(r chi.Router) {
		r.Use(s.gate.Middleware)
		r.Get("/tarefas", s.handleList)
		r.Post("/adiciona", s.handleCreate)
		r.Put("/atualiza/{name}", s.handleUpdate)
		r.Delete("/deletar/{name}", s.handleDelete)
		r.Get("/exporta", s.handleExport)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{Addr: addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()
	return server.ListenAndServe()
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Servidor de tarefas no ar."})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := intQuery(r, "page", defaultPage)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Parâmetro page deve ser um inteiro maior ou igual a 1.")
		return
	}
	limit, err := intQuery(r, "limit", defaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Parâmetro limit deve ser um inteiro maior ou igual a 1.")
		return
	}
	field, err := task.ParseSortField(stringQuery(r, "ordenar_por", string(task.SortName)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Campo de ordenação inválido.")
		return
	}
	dir, err := task.ParseDirection(stringQuery(r, "direcao", string(task.Asc)))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Direção de ordenação inválida.")
		return
	}

	env, err := s.svc.List(r.Context(), page, limit, field, dir)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if env.Total == 0 {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Nenhuma tarefa cadastrada."})
		return
	}
	writeJSON(w, http.StatusOK, env)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if _, err := s.svc.Create(r.Context(), req.Name, req.Description, req.Completed); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tarefa adicionada com sucesso."})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	locator := pathName(r)
	var patch task.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if _, err := s.svc.Update(r.Context(), locator, patch); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tarefa atualizada com sucesso."})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), pathName(r)); err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Tarefa deletada com sucesso."})
}

var exportContentTypes = map[string]string{
	"json": "application/json",
	"csv":  "text/csv",
	"pdf":  "application/pdf",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(stringQuery(r, "formato", "json"))
	b, err := s.svc.Export(r.Context(), format)
	if err != nil {
		if errors.Is(err, result.ErrUnknownFormat) {
			writeError(w, http.StatusBadRequest, "Formato de exportação inválido.")
			return
		}
		s.writeServiceError(w, err)
		return
	}
	if ct, ok := exportContentTypes[format]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// writeServiceError classifies a service outcome into a status code.
// Storage faults log the cause and answer with a fixed message; driver
// detail never reaches a response body.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Tarefa não encontrada.")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Tarefa já cadastrada.")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("tarefas: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor.")
	}
}

func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}

func stringQuery(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
