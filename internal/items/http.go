package items

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ItemStore/pkg/kit"
)

const (
	MsgNotFound = "produit non trouvé"
	MsgDeleted  = "produit supprimé"

	maxBodyBytes = 1 << 20
	readyTimeout = 1 * time.Second
)

var errTrailingData = errors.New("extra data after json object")

type Server struct {
	Store Store
	Log   *zap.Logger

	// WriteLimiter throttles POST, PUT and DELETE. Nil means unlimited.
	WriteLimiter *kit.IPRateLimiter
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Route("/items", func(ir chi.Router) {
		ir.Get("/", s.list)
		ir.Get("/{id}", s.get)

		ir.Group(func(wr chi.Router) {
			wr.Use(s.WriteLimiter.Middleware)
			wr.Post("/", s.create)
			wr.Put("/{id}", s.update)
			wr.Delete("/{id}", s.delete)
		})
	})

	return r
}

func (s *Server) log() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.log().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, http.StatusServiceUnavailable, kit.MsgNotReady)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.List(r.Context())
	if err != nil {
		s.storeFailed(w, "list items failed", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, items)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	it, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, "get item failed", id, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, it)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	p, err := decodePatch(w, r)
	if err != nil {
		s.log().Debug("bad create body", zap.Error(err))
		kit.WriteError(w, http.StatusBadRequest, kit.MsgBadRequest)
		return
	}

	it, err := s.Store.Create(r.Context(), p)
	if err != nil {
		s.storeFailed(w, "create item failed", err)
		return
	}

	s.log().Info("item created", zap.Int("id", it.ID))
	kit.WriteJSON(w, http.StatusCreated, it)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	// A missing item answers 404 whatever the body holds.
	if _, err := s.Store.Get(r.Context(), id); err != nil {
		s.writeStoreError(w, "update item failed", id, err)
		return
	}

	p, err := decodePatch(w, r)
	if err != nil {
		s.log().Debug("bad update body", zap.Error(err), zap.Int("id", id))
		kit.WriteError(w, http.StatusBadRequest, kit.MsgBadRequest)
		return
	}

	it, err := s.Store.Update(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, "update item failed", id, err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, it)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, "delete item failed", id, err)
		return
	}

	s.log().Info("item deleted", zap.Int("id", id))
	kit.WriteMessage(w, http.StatusOK, MsgDeleted)
}

func (s *Server) writeStoreError(w http.ResponseWriter, msg string, id int, err error) {
	if errors.Is(err, ErrNotFound) {
		s.log().Debug("item not found", zap.Int("id", id))
		kit.WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	s.log().Error(msg, zap.Error(err), zap.Int("id", id))
	kit.WriteError(w, http.StatusInternalServerError, kit.MsgServerError)
}

func (s *Server) storeFailed(w http.ResponseWriter, msg string, err error) {
	s.log().Error(msg, zap.Error(err))
	kit.WriteError(w, http.StatusInternalServerError, kit.MsgServerError)
}

// itemID reads the {id} path segment. Anything that is not a plain
// non-negative integer cannot name an item.
func itemID(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" || raw[0] == '+' || raw[0] == '-' {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodePatch(w http.ResponseWriter, r *http.Request) (Patch, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)

	var p Patch
	if err := dec.Decode(&p); err != nil {
		return Patch{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Patch{}, errTrailingData
	}
	return p, nil
}
