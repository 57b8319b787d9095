// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server provides a development server for the patient and
// attachment API, backed by an in-memory [Store] and a directory of
// attachment payloads.
package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"cogentcore.org/core/base/iox/jsonx"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/h2non/filetype"
	"github.com/laralab/heartanalyzer/api"
)

// Server serves the API. It implements [http.Handler].
type Server struct {

	// Store holds the patients and attachments.
	Store *Store

	// DataDir is the directory served under /static/data/.
	DataDir string

	router   *mux.Router
	cache    dataCache
	watching atomic.Bool
}

// New returns a new server for the given store and data directory.
func New(st *Store, dataDir string) *Server {
	s := &Server{Store: st, DataDir: dataDir}
	r := mux.NewRouter()
	get := []string{http.MethodGet, http.MethodOptions}
	r.Handle("/", http.RedirectHandler("/patients/", http.StatusMovedPermanently)).Methods(get...)
	r.HandleFunc("/patients/", s.listPatients).Methods(get...)
	r.HandleFunc("/patients/{id}", s.getPatient).Methods(get...)
	r.HandleFunc("/attachments/", s.listAttachments).Methods(get...)
	r.HandleFunc("/attachments/{id}", s.getAttachment).Methods(get...)
	r.HandleFunc("/static/data/{file}", s.getData).Methods(get...)
	// middleware only runs for matched routes
	r.NotFoundHandler = logRequests(cors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})))
	r.Use(logRequests, cors, mux.CORSMethodMiddleware(r))
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on the given address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	slog.Info("serving API", "addr", addr, "data", s.DataDir)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(sctx)
	}
}

func (s *Server) listPatients(w http.ResponseWriter, r *http.Request) {
	ps, err := s.Store.Patients()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (s *Server) getPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	p, err := s.Store.Patient(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listAttachments(w http.ResponseWriter, r *http.Request) {
	var owner *uuid.UUID
	if v := r.URL.Query().Get("owner_id"); v != "" {
		id, ok := parseID(w, v)
		if !ok {
			return
		}
		owner = &id
	}
	writeJSON(w, http.StatusOK, s.Store.Attachments(owner))
}

func (s *Server) getAttachment(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	a, err := s.Store.Attachment(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) getData(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["file"]
	if !fs.ValidPath(name) || strings.Contains(name, "/") {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	var b []byte
	var err error
	if s.watching.Load() {
		b, err = s.cache.read(s.DataDir, name)
	} else {
		b, err = os.ReadFile(filepath.Join(s.DataDir, name))
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", MediaType(name, b))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MediaType returns the media type of a data file from its extension,
// falling back on the content for unknown extensions.
func MediaType(name string, data []byte) string {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	mt := api.MediaTypeForExtension(ext)
	if mt != "application/octet-stream" {
		return mt
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return mt
}

// parseID parses a UUID path or query value, writing a 422 response
// if it is invalid.
func parseID(w http.ResponseWriter, v string) (uuid.UUID, bool) {
	id, err := uuid.Parse(v)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid id "+v+": "+err.Error())
		return uuid.Nil, false
	}
	return id, true
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := jsonx.Write(v, w); err != nil {
		slog.Error("writing response", "err", err)
	}
}
